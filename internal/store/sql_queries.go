// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	organizationColumns = `organization_id, name, slug, plan,
		max_users, max_cards, max_profiles, max_storage,
		used_users, used_cards, used_profiles, used_storage,
		created_at, updated_at`

	createOrganization = `INSERT INTO organizations (name, slug, plan, max_users, max_cards, max_profiles, max_storage, used_users)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
		RETURNING ` + organizationColumns + `;`

	getOrganization = `SELECT ` + organizationColumns + `
		FROM organizations
		WHERE organization_id = $1;`

	updateOrganizationPlan = `UPDATE organizations
		SET plan = $2, max_users = $3, max_cards = $4, max_profiles = $5, max_storage = $6, updated_at = NOW()
		WHERE organization_id = $1
		RETURNING ` + organizationColumns + `;`

	recountOrganizationUsage = `WITH actual AS (
			SELECT o.organization_id,
				(SELECT COUNT(*) FROM users u WHERE u.organization_id = o.organization_id)    AS users,
				(SELECT COUNT(*) FROM cards c WHERE c.organization_id = o.organization_id)    AS cards,
				(SELECT COUNT(*) FROM profiles p WHERE p.organization_id = o.organization_id) AS profiles
			FROM organizations o
		)
		UPDATE organizations o
		SET used_users = a.users, used_cards = a.cards, used_profiles = a.profiles, updated_at = NOW()
		FROM actual a
		WHERE o.organization_id = a.organization_id
			AND (o.used_users, o.used_cards, o.used_profiles) IS DISTINCT FROM (a.users, a.cards, a.profiles);`

	userColumns = `user_id, organization_id, email, name, password_hash, role, created_at`

	createUser = `INSERT INTO users (organization_id, email, name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1;`

	listUsers = `SELECT ` + userColumns + `
		FROM users
		WHERE organization_id = $1
		ORDER BY created_at, user_id;`

	profileColumns = `profile_id, user_id, organization_id, slug,
		personal_info, contact_info, social_links, business_hours,
		gallery, services, testimonials,
		COALESCE(template_id, 0), customization, sections,
		views, unique_views, card_taps, contact_downloads, link_clicks,
		is_active, created_at, updated_at`

	createProfile = `INSERT INTO profiles (user_id, organization_id, slug,
			personal_info, contact_info, social_links, business_hours,
			gallery, services, testimonials,
			template_id, customization, sections, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + profileColumns + `;`

	useTemplate = `UPDATE templates
		SET usage_count = usage_count + 1
		WHERE template_id = $1 AND is_active
		RETURNING template_id;`

	getProfile = `SELECT ` + profileColumns + `
		FROM profiles
		WHERE organization_id = $1 AND profile_id = $2;`

	getProfileBySlug = `SELECT ` + profileColumns + `
		FROM profiles
		WHERE slug = $1;`

	listProfiles = `SELECT ` + profileColumns + `
		FROM profiles
		WHERE organization_id = $1
		ORDER BY created_at, profile_id;`

	updateProfile = `UPDATE profiles
		SET personal_info = $3, contact_info = $4, social_links = $5, business_hours = $6,
			gallery = $7, services = $8, testimonials = $9,
			template_id = $10, customization = $11, sections = $12, is_active = $13,
			updated_at = NOW()
		WHERE organization_id = $1 AND profile_id = $2
		RETURNING ` + profileColumns + `;`

	deleteProfile = `DELETE FROM profiles
		WHERE organization_id = $1 AND profile_id = $2;`

	countProfileView = `UPDATE profiles
		SET views = views + 1, unique_views = unique_views + $2
		WHERE profile_id = $1;`

	countProfileDownload = `UPDATE profiles
		SET contact_downloads = contact_downloads + 1
		WHERE profile_id = $1;`

	countProfileLinkClick = `UPDATE profiles
		SET link_clicks = jsonb_set(link_clicks, ARRAY[$2::text], to_jsonb(COALESCE((link_clicks ->> $2::text)::bigint, 0) + 1))
		WHERE profile_id = $1;`

	countProfileTap = `UPDATE profiles
		SET card_taps = card_taps + 1
		WHERE profile_id = $1 AND is_active
		RETURNING slug;`

	createEvent = `INSERT INTO events (profile_id, type, occurred_at, user_agent, device_class, source, link_id, is_unique)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING event_id;`

	templateColumns = `template_id, name, slug, category, structure, default_colors, default_fonts,
		is_premium, is_active, usage_count, created_at`

	getTemplate = `SELECT ` + templateColumns + `
		FROM templates
		WHERE template_id = $1;`

	getTemplateBySlug = `SELECT ` + templateColumns + `
		FROM templates
		WHERE slug = $1;`

	cardColumns = `id, user_id, organization_id, COALESCE(profile_id, 0), card_id, serial_number, chip_type,
		tap_count, last_tapped, is_active, is_write_protected, created_at`

	createCard = `INSERT INTO cards (user_id, organization_id, profile_id, card_id, serial_number, chip_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + cardColumns + `;`

	listCards = `SELECT ` + cardColumns + `
		FROM cards
		WHERE organization_id = $1
		ORDER BY created_at, id;`

	getCard = `SELECT ` + cardColumns + `
		FROM cards
		WHERE organization_id = $1 AND id = $2;`

	lockCard = `SELECT is_write_protected
		FROM cards
		WHERE organization_id = $1 AND id = $2
		FOR UPDATE;`

	assignCard = `UPDATE cards
		SET profile_id = $3
		WHERE organization_id = $1 AND id = $2
		RETURNING ` + cardColumns + `;`

	deleteCard = `DELETE FROM cards
		WHERE organization_id = $1 AND id = $2;`

	tapCard = `UPDATE cards
		SET tap_count = tap_count + 1, last_tapped = $2
		WHERE card_id = $1 AND is_active
		RETURNING ` + cardColumns + `;`
)

// usageColumns maps a resource kind to its (used, max) organization columns.
var usageColumns = map[models.ResourceKind][2]string{
	models.ResourceUsers:    {"used_users", "max_users"},
	models.ResourceCards:    {"used_cards", "max_cards"},
	models.ResourceProfiles: {"used_profiles", "max_profiles"},
	models.ResourceStorage:  {"used_storage", "max_storage"},
}

// buildAdjustUsageQuery builds the UPDATE that moves a usage counter by
// delta. Positive deltas only apply while the result stays within a bounded
// limit, so an exhausted quota matches no row. Negative deltas never push the
// counter below zero.
func buildAdjustUsageQuery(ctx context.Context, organizationID int64, kind models.ResourceKind, delta int64) (string, []any, error) {
	log := logger.FromContext(ctx)

	cols, ok := usageColumns[kind]
	if !ok {
		log.Error().
			Str("func", "buildAdjustUsageQuery").
			Str("kind", string(kind)).
			Msg("unknown resource kind")
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}
	used, maxCol := cols[0], cols[1]

	builder := psql.Update("organizations").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"organization_id": organizationID}).
		Suffix("RETURNING " + used)

	if delta > 0 {
		builder = builder.
			Set(used, sq.Expr(used+" + ?", delta)).
			Where(sq.Or{
				sq.Eq{maxCol: models.UnlimitedSentinel},
				sq.Expr(used+" + ? <= "+maxCol, delta),
			})
	} else {
		builder = builder.Set(used, sq.Expr("GREATEST("+used+" + ?, 0)", delta))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "buildAdjustUsageQuery").
			Int64("organization_id", organizationID).
			Msg("failed to build usage query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListTemplatesQuery selects active templates, optionally narrowed to
// premium or free ones.
func buildListTemplatesQuery(ctx context.Context, filter models.TemplateFilter) (string, []any, error) {
	builder := psql.Select(templateColumns).
		From("templates").
		Where(sq.Eq{"is_active": true}).
		OrderBy("template_id")

	if filter.Premium != nil {
		builder = builder.Where(sq.Eq{"is_premium": *filter.Premium})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "buildListTemplatesQuery").
			Msg("failed to build templates query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListEventsQuery selects the events of the given profiles inside the
// half-open [From, To) range. Zero bounds are not applied.
func buildListEventsQuery(ctx context.Context, query models.EventQuery) (string, []any, error) {
	builder := psql.Select("event_id", "profile_id", "type", "occurred_at", "user_agent",
		"device_class", "source", "link_id", "is_unique").
		From("events").
		Where(sq.Eq{"profile_id": query.ProfileIDs}).
		OrderBy("occurred_at", "event_id")

	if !query.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"occurred_at": query.From})
	}
	if !query.To.IsZero() {
		builder = builder.Where(sq.Lt{"occurred_at": query.To})
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "buildListEventsQuery").
			Int("profiles", len(query.ProfileIDs)).
			Msg("failed to build events query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}
