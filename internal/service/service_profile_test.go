// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/mock"
	"github.com/MKhiriev/tapcard/internal/store"
	"github.com/MKhiriev/tapcard/internal/validators"
	"github.com/MKhiriev/tapcard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type profileMocks struct {
	profiles  *mock.MockProfileRepository
	templates *mock.MockTemplateRepository
	orgs      *mock.MockOrganizationRepository
}

func newTestProfileService(t *testing.T) (*profileService, profileMocks) {
	ctrl := gomock.NewController(t)
	m := profileMocks{
		profiles:  mock.NewMockProfileRepository(ctrl),
		templates: mock.NewMockTemplateRepository(ctrl),
		orgs:      mock.NewMockOrganizationRepository(ctrl),
	}
	svc := NewProfileService(m.profiles, m.templates, m.orgs, entitlement.NewEvaluator(0.75), logger.Nop()).(*profileService)
	svc.now = func() time.Time { return fixedNow }
	return svc, m
}

func sampleProfile() models.Profile {
	return models.Profile{
		Slug:         "jane-doe",
		PersonalInfo: models.PersonalInfo{FirstName: "Jane", LastName: "Doe"},
		ContactInfo:  models.ContactInfo{Email: "jane@example.com"},
		TemplateID:   1,
	}
}

func activeTemplate() models.Template {
	return models.Template{
		ID:       1,
		Slug:     "classic",
		IsActive: true,
		Structure: models.TemplateStructure{
			Layout: "single-column",
			Sections: []models.SectionDescriptor{
				{ID: "header", Type: models.SectionHeader, Order: 1},
				{ID: "contact", Type: models.SectionContact, Order: 2},
			},
		},
	}
}

func TestProfileService_CreateProfile(t *testing.T) {
	t.Run("defaults sections and activates the profile", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		gomock.InOrder(
			m.templates.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(activeTemplate(), nil),
			m.orgs.EXPECT().GetUsageSnapshot(gomock.Any(), int64(10)).Return(proSnapshot(models.Usage{Profiles: 3}), nil),
			m.profiles.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, p models.Profile) (models.Profile, error) {
					assert.Equal(t, int64(10), p.OrganizationID)
					assert.Equal(t, int64(1), p.UserID)
					assert.True(t, p.IsActive)
					assert.Equal(t, models.DefaultSectionVisibility(), p.Sections)
					p.ID = 42
					return p, nil
				}),
		)

		created, err := svc.CreateProfile(context.Background(), ownerPrincipal, sampleProfile())
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
	})

	t.Run("inactive template", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		tmpl := activeTemplate()
		tmpl.IsActive = false
		m.templates.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(tmpl, nil)

		_, err := svc.CreateProfile(context.Background(), ownerPrincipal, sampleProfile())
		assert.ErrorIs(t, err, ErrTemplateUnavailable)
	})

	t.Run("missing template", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.templates.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(models.Template{}, store.ErrTemplateNotFound)

		_, err := svc.CreateProfile(context.Background(), ownerPrincipal, sampleProfile())
		assert.ErrorIs(t, err, store.ErrTemplateNotFound)
	})

	t.Run("plan limit", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.templates.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(activeTemplate(), nil)
		m.orgs.EXPECT().GetUsageSnapshot(gomock.Any(), int64(10)).Return(proSnapshot(models.Usage{Profiles: 10}), nil)

		_, err := svc.CreateProfile(context.Background(), ownerPrincipal, sampleProfile())
		assert.ErrorIs(t, err, entitlement.ErrLimitExceeded)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.templates.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(activeTemplate(), nil)
		m.orgs.EXPECT().GetUsageSnapshot(gomock.Any(), int64(10)).Return(proSnapshot(models.Usage{}), nil)
		m.profiles.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(models.Profile{}, store.ErrSlugAlreadyExists)

		_, err := svc.CreateProfile(context.Background(), ownerPrincipal, sampleProfile())
		assert.ErrorIs(t, err, store.ErrSlugAlreadyExists)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	stored := sampleProfile()
	stored.ID = 42
	stored.OrganizationID = 10
	stored.IsActive = true
	stored.Sections = models.DefaultSectionVisibility()

	t.Run("replaces content and keeps slug", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.profiles.EXPECT().GetProfile(gomock.Any(), int64(10), int64(42)).Return(stored, nil)
		m.profiles.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.Profile) (models.Profile, error) {
				assert.Equal(t, "jane-doe", p.Slug)
				assert.Equal(t, "Janet", p.PersonalInfo.FirstName)
				assert.True(t, p.IsActive)
				assert.Equal(t, stored.Sections, p.Sections)
				return p, nil
			})

		updated, err := svc.UpdateProfile(context.Background(), memberPrincipal, 42, models.ProfileUpdate{
			PersonalInfo: models.PersonalInfo{FirstName: "Janet"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Janet", updated.PersonalInfo.FirstName)
	})

	t.Run("slug change is rejected", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.profiles.EXPECT().GetProfile(gomock.Any(), int64(10), int64(42)).Return(stored, nil)

		_, err := svc.UpdateProfile(context.Background(), ownerPrincipal, 42, models.ProfileUpdate{
			Slug:         "someone-else",
			PersonalInfo: models.PersonalInfo{FirstName: "Jane"},
		})
		assert.ErrorIs(t, err, ErrSlugImmutable)
	})

	t.Run("switching to a retired template", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		retired := activeTemplate()
		retired.ID = 2
		retired.IsActive = false
		m.profiles.EXPECT().GetProfile(gomock.Any(), int64(10), int64(42)).Return(stored, nil)
		m.templates.EXPECT().GetTemplate(gomock.Any(), int64(2)).Return(retired, nil)

		_, err := svc.UpdateProfile(context.Background(), ownerPrincipal, 42, models.ProfileUpdate{
			TemplateID:   2,
			PersonalInfo: models.PersonalInfo{FirstName: "Jane"},
		})
		assert.ErrorIs(t, err, ErrTemplateUnavailable)
	})

	t.Run("profile of another organization", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.profiles.EXPECT().GetProfile(gomock.Any(), int64(10), int64(99)).Return(models.Profile{}, store.ErrProfileNotFound)

		_, err := svc.UpdateProfile(context.Background(), ownerPrincipal, 99, models.ProfileUpdate{})
		assert.ErrorIs(t, err, store.ErrProfileNotFound)
	})
}

func TestProfileService_DeleteProfile(t *testing.T) {
	svc, m := newTestProfileService(t)

	m.profiles.EXPECT().DeleteProfile(gomock.Any(), int64(10), int64(42)).Return(nil)
	require.NoError(t, svc.DeleteProfile(context.Background(), ownerPrincipal, 42))

	m.profiles.EXPECT().DeleteProfile(gomock.Any(), int64(10), int64(43)).Return(store.ErrProfileNotFound)
	assert.ErrorIs(t, svc.DeleteProfile(context.Background(), ownerPrincipal, 43), store.ErrProfileNotFound)
}

func TestProfileService_ViewPublicProfile(t *testing.T) {
	published := sampleProfile()
	published.ID = 42
	published.IsActive = true
	published.Sections = models.DefaultSectionVisibility()

	t.Run("renders and records a unique mobile view", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.profiles.EXPECT().GetProfileBySlug(gomock.Any(), "jane-doe").Return(published, nil)
		m.templates.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(activeTemplate(), nil)
		m.profiles.EXPECT().RecordEvent(gomock.Any(), models.Event{
			Type:        models.EventView,
			ProfileID:   42,
			Timestamp:   fixedNow,
			UserAgent:   iphoneUA,
			DeviceClass: models.DeviceMobile,
			Source:      models.SourceQR,
			Unique:      true,
		}).Return(nil)

		view, err := svc.ViewPublicProfile(context.Background(), "jane-doe", models.Visit{
			UserAgent: iphoneUA,
			Source:    "QR",
		})
		require.NoError(t, err)
		assert.Equal(t, "classic", view.TemplateSlug)
		assert.False(t, view.Fallback)
		assert.True(t, view.Has(models.SectionContact))
	})

	t.Run("missing template falls back", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.profiles.EXPECT().GetProfileBySlug(gomock.Any(), "jane-doe").Return(published, nil)
		m.templates.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(models.Template{}, store.ErrTemplateNotFound)
		m.profiles.EXPECT().RecordEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e models.Event) error {
				assert.Equal(t, "linkedin.com", e.Source)
				assert.Equal(t, models.DeviceDesktop, e.DeviceClass)
				assert.False(t, e.Unique)
				return nil
			})

		view, err := svc.ViewPublicProfile(context.Background(), "jane-doe", models.Visit{
			UserAgent: desktopUA,
			Referer:   "https://LinkedIn.com/feed/",
			Returning: true,
		})
		require.NoError(t, err)
		assert.True(t, view.Fallback)
	})

	t.Run("failed event write still serves the page", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		m.profiles.EXPECT().GetProfileBySlug(gomock.Any(), "jane-doe").Return(published, nil)
		m.templates.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(activeTemplate(), nil)
		m.profiles.EXPECT().RecordEvent(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		view, err := svc.ViewPublicProfile(context.Background(), "jane-doe", models.Visit{})
		require.NoError(t, err)
		assert.Equal(t, int64(42), view.ProfileID)
	})

	t.Run("inactive profile", func(t *testing.T) {
		svc, m := newTestProfileService(t)

		hidden := published
		hidden.IsActive = false
		m.profiles.EXPECT().GetProfileBySlug(gomock.Any(), "jane-doe").Return(hidden, nil)

		_, err := svc.ViewPublicProfile(context.Background(), "jane-doe", models.Visit{})
		assert.ErrorIs(t, err, ErrProfileInactive)
	})

	t.Run("malformed slug never hits the store", func(t *testing.T) {
		svc, _ := newTestProfileService(t)

		_, err := svc.ViewPublicProfile(context.Background(), "../etc/passwd", models.Visit{})
		assert.ErrorIs(t, err, store.ErrProfileNotFound)
	})
}

func TestProfileService_RecordPublicEvent(t *testing.T) {
	published := sampleProfile()
	published.ID = 42
	published.IsActive = true

	svc, m := newTestProfileService(t)

	m.profiles.EXPECT().GetProfileBySlug(gomock.Any(), "jane-doe").Return(published, nil)
	m.profiles.EXPECT().RecordEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.Event) error {
			assert.Equal(t, models.EventLinkClick, e.Type)
			assert.Equal(t, "website", e.LinkID)
			assert.Equal(t, models.SourceDirect, e.Source)
			assert.Equal(t, int64(42), e.ProfileID)
			return nil
		})

	err := svc.RecordPublicEvent(context.Background(), "jane-doe",
		models.EventRequest{Type: models.EventLinkClick, LinkID: "website"},
		models.Visit{UserAgent: desktopUA})
	require.NoError(t, err)
}

func TestProfileValidationService(t *testing.T) {
	t.Run("invalid profile is rejected before the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := NewProfileService(
			mock.NewMockProfileRepository(ctrl),
			mock.NewMockTemplateRepository(ctrl),
			mock.NewMockOrganizationRepository(ctrl),
			entitlement.NewEvaluator(0.75),
			logger.Nop(),
		)
		svc := NewProfileValidationService().Wrap(inner)

		profile := sampleProfile()
		profile.Slug = "Not A Slug"

		_, err := svc.CreateProfile(context.Background(), ownerPrincipal, profile)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
		assert.ErrorIs(t, err, validators.ErrInvalidSlug)
	})

	t.Run("visitors cannot post views", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := NewProfileService(
			mock.NewMockProfileRepository(ctrl),
			mock.NewMockTemplateRepository(ctrl),
			mock.NewMockOrganizationRepository(ctrl),
			entitlement.NewEvaluator(0.75),
			logger.Nop(),
		)
		svc := NewProfileValidationService().Wrap(inner)

		err := svc.RecordPublicEvent(context.Background(), "jane-doe", models.EventRequest{Type: models.EventView}, models.Visit{})
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
		assert.ErrorIs(t, err, validators.ErrInvalidEventType)
	})

	t.Run("update without a name is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := NewProfileService(
			mock.NewMockProfileRepository(ctrl),
			mock.NewMockTemplateRepository(ctrl),
			mock.NewMockOrganizationRepository(ctrl),
			entitlement.NewEvaluator(0.75),
			logger.Nop(),
		)
		svc := NewProfileValidationService().Wrap(inner)

		_, err := svc.UpdateProfile(context.Background(), ownerPrincipal, 42, models.ProfileUpdate{})
		assert.ErrorIs(t, err, validators.ErrEmptyPersonalName)
	})
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		name  string
		visit models.Visit
		want  string
	}{
		{name: "explicit marker wins", visit: models.Visit{Source: " NFC ", Referer: "https://google.com"}, want: "nfc"},
		{name: "referer host", visit: models.Visit{Referer: "https://www.google.com/search?q=x"}, want: "www.google.com"},
		{name: "unparsable referer", visit: models.Visit{Referer: "::not a url"}, want: models.SourceDirect},
		{name: "nothing", visit: models.Visit{}, want: models.SourceDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveSource(tt.visit))
		})
	}
}
