// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileRepo(t *testing.T) (*profileRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &profileRepository{db: db, logger: logger.Nop()}, mock
}

func newProfile() models.Profile {
	return models.Profile{
		UserID:         1,
		OrganizationID: 10,
		Slug:           "jane-doe",
		PersonalInfo:   models.PersonalInfo{FirstName: "Jane", LastName: "Doe"},
		TemplateID:     3,
		Sections:       models.DefaultSectionVisibility(),
		IsActive:       true,
	}
}

func TestCreateProfile_Success(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE organizations").
		WillReturnRows(sqlmock.NewRows([]string{"used_profiles"}).AddRow(int64(1)))
	mock.ExpectQuery("UPDATE templates").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"template_id"}).AddRow(int64(3)))
	mock.ExpectQuery("INSERT INTO profiles").
		WillReturnRows(profileRow(5, "jane-doe"))
	mock.ExpectCommit()

	created, err := repo.CreateProfile(context.Background(), newProfile())

	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, "jane-doe", created.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProfile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "quota exhausted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("UPDATE organizations").
					WillReturnRows(sqlmock.NewRows([]string{"used_profiles"}))
				mock.ExpectRollback()
			},
			wantErr: ErrUsageLimitReached,
		},
		{
			name: "inactive template",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("UPDATE organizations").
					WillReturnRows(sqlmock.NewRows([]string{"used_profiles"}).AddRow(int64(1)))
				mock.ExpectQuery("UPDATE templates").
					WillReturnRows(sqlmock.NewRows([]string{"template_id"}))
				mock.ExpectRollback()
			},
			wantErr: ErrInvalidProfileTemplate,
		},
		{
			name: "slug taken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("UPDATE organizations").
					WillReturnRows(sqlmock.NewRows([]string{"used_profiles"}).AddRow(int64(1)))
				mock.ExpectQuery("UPDATE templates").
					WillReturnRows(sqlmock.NewRows([]string{"template_id"}).AddRow(int64(3)))
				mock.ExpectQuery("INSERT INTO profiles").
					WillReturnError(pgError(pgerrcode.UniqueViolation))
				mock.ExpectRollback()
			},
			wantErr: ErrSlugAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestProfileRepo(t)
			tt.setup(mock)

			_, err := repo.CreateProfile(context.Background(), newProfile())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetProfileBySlug_DecodesJSONB(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT profile_id").
		WithArgs("jane-doe").
		WillReturnRows(profileRow(5, "jane-doe"))

	p, err := repo.GetProfileBySlug(context.Background(), "jane-doe")

	require.NoError(t, err)
	assert.Equal(t, "Jane", p.PersonalInfo.FirstName)
	assert.Equal(t, "jane@example.com", p.ContactInfo.Email)
	require.Len(t, p.SocialLinks, 1)
	assert.Equal(t, "gh", p.SocialLinks[0].ID)
	assert.Equal(t, "#ff0000", p.Customization.PrimaryColor)
	assert.True(t, p.Sections.Enabled(models.SectionContact))
	assert.False(t, p.Sections.Enabled(models.SectionGallery))
	assert.Equal(t, int64(12), p.Analytics.Views)
	assert.Equal(t, int64(5), p.Analytics.LinkClicks["gh"])
}

func TestGetProfile_NotFound(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT profile_id").
		WithArgs(int64(10), int64(99)).
		WillReturnRows(sqlmock.NewRows(profileRowColumns))

	_, err := repo.GetProfile(context.Background(), 10, 99)

	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDeleteProfile(t *testing.T) {
	t.Run("releases usage slot", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM profiles").
			WithArgs(int64(10), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("UPDATE organizations SET updated_at = NOW\\(\\), used_profiles = GREATEST").
			WillReturnRows(sqlmock.NewRows([]string{"used_profiles"}).AddRow(int64(0)))
		mock.ExpectCommit()

		require.NoError(t, repo.DeleteProfile(context.Background(), 10, 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing profile", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM profiles").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.DeleteProfile(context.Background(), 10, 5), ErrProfileNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecordEvent(t *testing.T) {
	t.Run("unique view bumps both counters", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE profiles SET views").
			WithArgs(int64(5), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO events").
			WithArgs(int64(5), "view", testNow, "ua", "mobile", "qr", "", true).
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(int64(1)))
		mock.ExpectCommit()

		err := repo.RecordEvent(context.Background(), models.Event{
			Type: models.EventView, ProfileID: 5, Timestamp: testNow,
			UserAgent: "ua", DeviceClass: models.DeviceMobile, Source: models.SourceQR, Unique: true,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("link click counts per link id", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE profiles SET link_clicks = jsonb_set").
			WithArgs(int64(5), "gh").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO events").
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(int64(2)))
		mock.ExpectCommit()

		err := repo.RecordEvent(context.Background(), models.Event{
			Type: models.EventLinkClick, ProfileID: 5, Timestamp: testNow, LinkID: "gh",
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("share only stores the event", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO events").
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(int64(3)))
		mock.ExpectCommit()

		err := repo.RecordEvent(context.Background(), models.Event{Type: models.EventShare, ProfileID: 5, Timestamp: testNow})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries serialization failures", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE profiles SET contact_downloads").
			WillReturnError(pgError(pgerrcode.SerializationFailure))
		mock.ExpectRollback()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE profiles SET contact_downloads").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO events").
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(int64(4)))
		mock.ExpectCommit()

		err := repo.RecordEvent(context.Background(), models.Event{Type: models.EventDownload, ProfileID: 5, Timestamp: testNow})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown profile", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE profiles SET views").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.RecordEvent(context.Background(), models.Event{Type: models.EventView, ProfileID: 404, Timestamp: testNow})

		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}
