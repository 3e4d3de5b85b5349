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
)

// organizationRepository is the PostgreSQL-backed implementation of
// [OrganizationRepository].
type organizationRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewOrganizationRepository constructs an [OrganizationRepository] backed by
// the provided database connection and logger.
func NewOrganizationRepository(db *DB, logger *logger.Logger) OrganizationRepository {
	logger.Debug().Msg("creating organization repository")
	return &organizationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *organizationRepository) GetOrganization(ctx context.Context, organizationID int64) (models.Organization, error) {
	log := logger.FromContext(ctx)

	org, err := scanOrganization(r.db.QueryRowContext(ctx, getOrganization, organizationID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "organizationRepository.GetOrganization").
			Int64("organization_id", organizationID).
			Msg("organization not found")
		return models.Organization{}, ErrOrganizationNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "organizationRepository.GetOrganization").
			Int64("organization_id", organizationID).
			Msg("failed to query organization")
		return models.Organization{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return org, nil
}

// GetUsageSnapshot returns the limits and usage counters of an organization
// as read in one statement.
func (r *organizationRepository) GetUsageSnapshot(ctx context.Context, organizationID int64) (models.UsageSnapshot, error) {
	org, err := r.GetOrganization(ctx, organizationID)
	if err != nil {
		return models.UsageSnapshot{}, err
	}

	return models.UsageSnapshot{
		OrganizationID: org.ID,
		Limits:         org.Limits,
		Usage:          org.Usage,
	}, nil
}

// UpdatePlan replaces the plan and its limits. Usage counters are left as
// they are, so a downgrade can leave an organization above its new limits;
// creation is then denied until usage drops.
func (r *organizationRepository) UpdatePlan(ctx context.Context, organizationID int64, plan models.Plan, limits models.PlanLimits) (models.Organization, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateOrganizationPlan,
		organizationID,
		plan,
		limits.MaxUsers,
		limits.MaxCards,
		limits.MaxProfiles,
		limits.MaxStorage,
	)

	org, err := scanOrganization(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Organization{}, ErrOrganizationNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "organizationRepository.UpdatePlan").
			Int64("organization_id", organizationID).
			Str("plan", string(plan)).
			Msg("failed to update organization plan")
		return models.Organization{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().
		Str("func", "organizationRepository.UpdatePlan").
		Int64("organization_id", organizationID).
		Str("plan", string(plan)).
		Msg("organization plan changed")

	return org, nil
}

func (r *organizationRepository) RecountUsage(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, recountOrganizationUsage)
	if err != nil {
		log.Err(err).
			Str("func", "organizationRepository.RecountUsage").
			Msg("failed to recount organization usage")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	corrected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "organizationRepository.RecountUsage").
			Msg("failed to get rows affected after recount")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return corrected, nil
}

// adjustUsage moves the kind counter of an organization by delta inside tx.
// It returns [ErrUsageLimitReached] when a positive delta would exceed a
// bounded limit.
func adjustUsage(ctx context.Context, tx *sql.Tx, organizationID int64, kind models.ResourceKind, delta int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildAdjustUsageQuery(ctx, organizationID, kind, delta)
	if err != nil {
		return err
	}

	var used int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&used)
	if errors.Is(err, sql.ErrNoRows) {
		if delta > 0 {
			log.Warn().
				Str("func", "adjustUsage").
				Int64("organization_id", organizationID).
				Str("kind", string(kind)).
				Msg("usage increment rejected by plan limit")
			return ErrUsageLimitReached
		}
		return ErrOrganizationNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "adjustUsage").
			Int64("organization_id", organizationID).
			Str("kind", string(kind)).
			Int64("delta", delta).
			Msg("failed to adjust usage counter")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Debug().
		Str("func", "adjustUsage").
		Int64("organization_id", organizationID).
		Str("kind", string(kind)).
		Int64("used", used).
		Msg("usage counter adjusted")

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrganization(row rowScanner) (models.Organization, error) {
	var org models.Organization
	err := row.Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.Plan,
		&org.Limits.MaxUsers,
		&org.Limits.MaxCards,
		&org.Limits.MaxProfiles,
		&org.Limits.MaxStorage,
		&org.Usage.Users,
		&org.Usage.Cards,
		&org.Usage.Profiles,
		&org.Usage.Storage,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	return org, err
}
