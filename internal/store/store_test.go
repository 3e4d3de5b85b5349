// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &DB{
		DB:                 db,
		logger:             logger.Nop(),
		errorClassificator: NewPostgresErrorClassifier(),
	}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func pgConstraintError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

var organizationRowColumns = []string{
	"organization_id", "name", "slug", "plan",
	"max_users", "max_cards", "max_profiles", "max_storage",
	"used_users", "used_cards", "used_profiles", "used_storage",
	"created_at", "updated_at",
}

var userRowColumns = []string{"user_id", "organization_id", "email", "name", "password_hash", "role", "created_at"}

var profileRowColumns = []string{
	"profile_id", "user_id", "organization_id", "slug",
	"personal_info", "contact_info", "social_links", "business_hours",
	"gallery", "services", "testimonials",
	"template_id", "customization", "sections",
	"views", "unique_views", "card_taps", "contact_downloads", "link_clicks",
	"is_active", "created_at", "updated_at",
}

var cardRowColumns = []string{
	"id", "user_id", "organization_id", "profile_id", "card_id", "serial_number", "chip_type",
	"tap_count", "last_tapped", "is_active", "is_write_protected", "created_at",
}

func profileRow(id int64, slug string) *sqlmock.Rows {
	return sqlmock.NewRows(profileRowColumns).AddRow(
		id, int64(1), int64(10), slug,
		[]byte(`{"firstName":"Jane","lastName":"Doe","title":"CTO"}`),
		[]byte(`{"email":"jane@example.com"}`),
		[]byte(`[{"id":"gh","platform":"github","url":"https://github.com/jane","order":1}]`),
		[]byte(`[]`),
		[]byte(`[]`),
		[]byte(`[]`),
		[]byte(`[]`),
		int64(3),
		[]byte(`{"primaryColor":"#ff0000"}`),
		[]byte(`{"contact":true,"gallery":false}`),
		int64(12), int64(4), int64(2), int64(1),
		[]byte(`{"gh":5}`),
		true, testNow, testNow,
	)
}

func cardRow(id, profileID int64, writeProtected bool) *sqlmock.Rows {
	return sqlmock.NewRows(cardRowColumns).AddRow(
		id, int64(1), int64(10), profileID, "04A1B2C3", "SN-0001", "NTAG215",
		int64(7), nil, true, writeProtected, testNow,
	)
}
