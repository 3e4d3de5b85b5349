// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateOwner inserts the organization (with users usage already at 1) and
// its owner in a single transaction.
//
// Error handling:
//   - unique_violation on users.email → [ErrEmailAlreadyExists].
//   - unique_violation on organizations.slug → [ErrOrganizationSlugExists].
func (r *userRepository) CreateOwner(ctx context.Context, org models.Organization, owner models.User) (models.Organization, models.User, error) {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "userRepository.CreateOwner", func(tx *sql.Tx) error {
		createdOrg, err := scanOrganization(tx.QueryRowContext(ctx, createOrganization,
			org.Name,
			org.Slug,
			org.Plan,
			org.Limits.MaxUsers,
			org.Limits.MaxCards,
			org.Limits.MaxProfiles,
			org.Limits.MaxStorage,
		))
		if err != nil {
			return classifyUserError(err)
		}

		createdOwner, err := scanUser(tx.QueryRowContext(ctx, createUser,
			createdOrg.ID,
			owner.Email,
			owner.Name,
			owner.PasswordHash,
			owner.Role,
		))
		if err != nil {
			return classifyUserError(err)
		}

		org, owner = createdOrg, createdOwner
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.CreateOwner").
			Str("organization_slug", org.Slug).
			Msg("failed to create organization owner")
		return models.Organization{}, models.User{}, err
	}

	return org, owner, nil
}

// CreateMember inserts a user into an existing organization after reserving
// a seat against maxUsers in the same transaction.
func (r *userRepository) CreateMember(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "userRepository.CreateMember", func(tx *sql.Tx) error {
		if err := adjustUsage(ctx, tx, user.OrganizationID, models.ResourceUsers, 1); err != nil {
			return err
		}

		created, err := scanUser(tx.QueryRowContext(ctx, createUser,
			user.OrganizationID,
			user.Email,
			user.Name,
			user.PasswordHash,
			user.Role,
		))
		if err != nil {
			return classifyUserError(err)
		}

		user = created
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.CreateMember").
			Int64("organization_id", user.OrganizationID).
			Msg("failed to create member")
		return models.User{}, err
	}

	return user, nil
}

// FindUserByEmail retrieves the user registered with email.
//
// Error handling:
//   - no rows → [ErrNoUserWasFound].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().Str("func", "*userRepository.FindUserByEmail").Msg("user not found")
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("unexpected DB error")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) ListUsers(ctx context.Context, organizationID int64) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUsers, organizationID)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.ListUsers").
			Int64("organization_id", organizationID).
			Msg("failed to query users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*userRepository.ListUsers").
				Int64("organization_id", organizationID).
				Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

func classifyUserError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		if constraintName(err) == "organizations_slug_key" {
			return ErrOrganizationSlugExists
		}
		return ErrEmailAlreadyExists
	case "":
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.OrganizationID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	return user, err
}
