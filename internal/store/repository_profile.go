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

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository]. Structured profile content lives in JSONB columns;
// analytics counters are plain BIGINT columns updated in place.
type profileRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewProfileRepository constructs a [ProfileRepository] backed by the
// provided database connection and logger.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateProfile reserves a profile slot against maxProfiles, bumps the
// template usage count and inserts the profile, all in one transaction.
//
// Error handling:
//   - quota exhausted → [ErrUsageLimitReached].
//   - template missing or inactive → [ErrInvalidProfileTemplate].
//   - unique_violation on slug → [ErrSlugAlreadyExists].
func (r *profileRepository) CreateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	columns, err := encodeProfileContent(profile)
	if err != nil {
		return models.Profile{}, err
	}

	var created models.Profile
	err = r.db.inTx(ctx, "profileRepository.CreateProfile", func(tx *sql.Tx) error {
		if err := adjustUsage(ctx, tx, profile.OrganizationID, models.ResourceProfiles, 1); err != nil {
			return err
		}

		var templateID int64
		if err := tx.QueryRowContext(ctx, useTemplate, profile.TemplateID).Scan(&templateID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInvalidProfileTemplate
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		args := append([]any{profile.UserID, profile.OrganizationID, profile.Slug}, columns.content()...)
		args = append(args, profile.TemplateID, columns.customization, columns.sections, profile.IsActive)

		p, err := scanProfile(tx.QueryRowContext(ctx, createProfile, args...))
		if err != nil {
			return classifyProfileError(err)
		}

		created = p
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "profileRepository.CreateProfile").
			Int64("organization_id", profile.OrganizationID).
			Str("slug", profile.Slug).
			Msg("failed to create profile")
		return models.Profile{}, err
	}

	return created, nil
}

func (r *profileRepository) GetProfile(ctx context.Context, organizationID, profileID int64) (models.Profile, error) {
	log := logger.FromContext(ctx)

	profile, err := scanProfile(r.db.QueryRowContext(ctx, getProfile, organizationID, profileID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "profileRepository.GetProfile").
			Int64("organization_id", organizationID).
			Int64("profile_id", profileID).
			Msg("failed to query profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return profile, nil
}

func (r *profileRepository) GetProfileBySlug(ctx context.Context, slug string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	profile, err := scanProfile(r.db.QueryRowContext(ctx, getProfileBySlug, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "profileRepository.GetProfileBySlug").
			Str("slug", slug).
			Msg("failed to query profile by slug")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return profile, nil
}

func (r *profileRepository) ListProfiles(ctx context.Context, organizationID int64) ([]models.Profile, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listProfiles, organizationID)
	if err != nil {
		log.Err(err).
			Str("func", "profileRepository.ListProfiles").
			Int64("organization_id", organizationID).
			Msg("failed to query profiles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		profile, scanErr := scanProfile(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "profileRepository.ListProfiles").
				Int64("organization_id", organizationID).
				Msg("failed to scan profile row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		profiles = append(profiles, profile)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "profileRepository.ListProfiles").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return profiles, nil
}

// UpdateProfile overwrites the editable content of a profile. Slug, owner
// and analytics counters are never touched.
func (r *profileRepository) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	columns, err := encodeProfileContent(profile)
	if err != nil {
		return models.Profile{}, err
	}

	args := append([]any{profile.OrganizationID, profile.ID}, columns.content()...)
	args = append(args, profile.TemplateID, columns.customization, columns.sections, profile.IsActive)

	updated, err := scanProfile(r.db.QueryRowContext(ctx, updateProfile, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "profileRepository.UpdateProfile").
			Int64("profile_id", profile.ID).
			Msg("failed to update profile")
		return models.Profile{}, classifyProfileError(err)
	}

	return updated, nil
}

// DeleteProfile hard-deletes a profile and releases its usage slot.
func (r *profileRepository) DeleteProfile(ctx context.Context, organizationID, profileID int64) error {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "profileRepository.DeleteProfile", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, deleteProfile, organizationID, profileID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if affected == 0 {
			return ErrProfileNotFound
		}

		return adjustUsage(ctx, tx, organizationID, models.ResourceProfiles, -1)
	})
	if err != nil {
		log.Err(err).
			Str("func", "profileRepository.DeleteProfile").
			Int64("organization_id", organizationID).
			Int64("profile_id", profileID).
			Msg("failed to delete profile")
		return err
	}

	return nil
}

// RecordEvent inserts the event and bumps the matching profile counter in
// the same transaction.
func (r *profileRepository) RecordEvent(ctx context.Context, event models.Event) error {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "profileRepository.RecordEvent", func(tx *sql.Tx) error {
		if err := countEvent(ctx, tx, event); err != nil {
			return err
		}
		return insertEvent(ctx, tx, event)
	})
	if err != nil {
		log.Err(err).
			Str("func", "profileRepository.RecordEvent").
			Int64("profile_id", event.ProfileID).
			Str("type", string(event.Type)).
			Msg("failed to record event")
		return err
	}

	return nil
}

func countEvent(ctx context.Context, tx *sql.Tx, event models.Event) error {
	var (
		result sql.Result
		err    error
	)

	switch event.Type {
	case models.EventView:
		var unique int64
		if event.Unique {
			unique = 1
		}
		result, err = tx.ExecContext(ctx, countProfileView, event.ProfileID, unique)
	case models.EventDownload:
		result, err = tx.ExecContext(ctx, countProfileDownload, event.ProfileID)
	case models.EventLinkClick, models.EventSocialClick:
		if event.LinkID == "" {
			return nil
		}
		result, err = tx.ExecContext(ctx, countProfileLinkClick, event.ProfileID, event.LinkID)
	default:
		// shares and other events only leave an event row
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func insertEvent(ctx context.Context, tx *sql.Tx, event models.Event) error {
	var id int64
	err := tx.QueryRowContext(ctx, createEvent,
		event.ProfileID,
		event.Type,
		event.Timestamp,
		event.UserAgent,
		event.DeviceClass,
		event.Source,
		event.LinkID,
		event.Unique,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// profileContent is the JSONB encoding of a profile's structured fields.
type profileContent struct {
	personalInfo  []byte
	contactInfo   []byte
	socialLinks   []byte
	businessHours []byte
	gallery       []byte
	services      []byte
	testimonials  []byte
	customization []byte
	sections      []byte
}

// content returns the seven content columns in insert/update order.
func (c profileContent) content() []any {
	return []any{
		c.personalInfo,
		c.contactInfo,
		c.socialLinks,
		c.businessHours,
		c.gallery,
		c.services,
		c.testimonials,
	}
}

func encodeProfileContent(p models.Profile) (profileContent, error) {
	var (
		c   profileContent
		err error
	)

	if c.personalInfo, err = jsonbValue(p.PersonalInfo); err != nil {
		return c, err
	}
	if c.contactInfo, err = jsonbValue(p.ContactInfo); err != nil {
		return c, err
	}
	if c.socialLinks, err = jsonbList(p.SocialLinks); err != nil {
		return c, err
	}
	if c.businessHours, err = jsonbList(p.BusinessHours); err != nil {
		return c, err
	}
	if c.gallery, err = jsonbList(p.Gallery); err != nil {
		return c, err
	}
	if c.services, err = jsonbList(p.Services); err != nil {
		return c, err
	}
	if c.testimonials, err = jsonbList(p.Testimonials); err != nil {
		return c, err
	}
	if c.customization, err = jsonbValue(p.Customization); err != nil {
		return c, err
	}
	if c.sections, err = jsonbValue(p.Sections); err != nil {
		return c, err
	}

	return c, nil
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.OrganizationID,
		&p.Slug,
		jsonb{&p.PersonalInfo},
		jsonb{&p.ContactInfo},
		jsonb{&p.SocialLinks},
		jsonb{&p.BusinessHours},
		jsonb{&p.Gallery},
		jsonb{&p.Services},
		jsonb{&p.Testimonials},
		&p.TemplateID,
		jsonb{&p.Customization},
		jsonb{&p.Sections},
		&p.Analytics.Views,
		&p.Analytics.UniqueViews,
		&p.Analytics.CardTaps,
		&p.Analytics.ContactDownloads,
		jsonb{&p.Analytics.LinkClicks},
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func classifyProfileError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrSlugAlreadyExists
	case pgerrcode.ForeignKeyViolation:
		return ErrInvalidProfileTemplate
	case "":
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}
