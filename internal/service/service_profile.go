// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/rendering"
	"github.com/MKhiriev/tapcard/internal/store"
	"github.com/MKhiriev/tapcard/internal/validators"
	"github.com/MKhiriev/tapcard/models"
)

const (
	maxSourceLength  = 32
	maxRefererLength = 64
)

type profileService struct {
	profileRepository  store.ProfileRepository
	templateRepository store.TemplateRepository

	quota *quotaGuard
	now   func() time.Time

	logger *logger.Logger
}

func NewProfileService(
	profileRepository store.ProfileRepository,
	templateRepository store.TemplateRepository,
	organizationRepository store.OrganizationRepository,
	evaluator *entitlement.Evaluator,
	logger *logger.Logger,
) ProfileService {
	return &profileService{
		profileRepository:  profileRepository,
		templateRepository: templateRepository,
		quota:              newQuotaGuard(organizationRepository, evaluator),
		now:                time.Now,
		logger:             logger,
	}
}

// CreateProfile creates a published profile owned by the caller.
//
// A profile without a sections map gets every optional section enabled.
// The template must exist and be active; the profiles quota is checked
// before and enforced during the insert.
func (s *profileService) CreateProfile(ctx context.Context, principal models.Principal, profile models.Profile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	profile.OrganizationID = principal.OrganizationID
	profile.UserID = principal.UserID
	profile.IsActive = true
	if profile.Sections == nil {
		profile.Sections = models.DefaultSectionVisibility()
	}
	profile.Analytics = models.ProfileAnalytics{}

	if err := s.checkTemplate(ctx, profile.TemplateID); err != nil {
		return models.Profile{}, err
	}

	if err := s.quota.check(ctx, principal.OrganizationID, models.ResourceProfiles); err != nil {
		return models.Profile{}, err
	}

	created, err := s.profileRepository.CreateProfile(ctx, profile)
	if err != nil {
		return models.Profile{}, s.quota.translate(ctx, principal.OrganizationID, models.ResourceProfiles, err)
	}

	log.Info().
		Int64("profile_id", created.ID).
		Str("slug", created.Slug).
		Int64("organization_id", created.OrganizationID).
		Msg("profile created")

	return created, nil
}

func (s *profileService) GetProfile(ctx context.Context, principal models.Principal, profileID int64) (models.Profile, error) {
	return s.profileRepository.GetProfile(ctx, principal.OrganizationID, profileID)
}

func (s *profileService) ListProfiles(ctx context.Context, principal models.Principal) ([]models.Profile, error) {
	return s.profileRepository.ListProfiles(ctx, principal.OrganizationID)
}

// UpdateProfile replaces the profile's content. The slug is printed on
// physical cards, so an update naming a different slug is rejected with
// ErrSlugImmutable.
func (s *profileService) UpdateProfile(ctx context.Context, principal models.Principal, profileID int64, update models.ProfileUpdate) (models.Profile, error) {
	existing, err := s.profileRepository.GetProfile(ctx, principal.OrganizationID, profileID)
	if err != nil {
		return models.Profile{}, err
	}

	if update.Slug != "" && update.Slug != existing.Slug {
		return models.Profile{}, ErrSlugImmutable
	}

	if update.TemplateID != 0 && update.TemplateID != existing.TemplateID {
		if err := s.checkTemplate(ctx, update.TemplateID); err != nil {
			return models.Profile{}, err
		}
	}

	return s.profileRepository.UpdateProfile(ctx, update.Apply(existing))
}

// DeleteProfile hard-deletes the profile and releases its quota slot.
// Cards pointing at it become unassigned.
func (s *profileService) DeleteProfile(ctx context.Context, principal models.Principal, profileID int64) error {
	if err := s.profileRepository.DeleteProfile(ctx, principal.OrganizationID, profileID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Int64("profile_id", profileID).
		Int64("organization_id", principal.OrganizationID).
		Msg("profile deleted")
	return nil
}

// ViewPublicProfile resolves the page of an active profile. A missing
// template falls back to the built-in layout. Failing to record the view
// does not fail the request.
func (s *profileService) ViewPublicProfile(ctx context.Context, slug string, visit models.Visit) (rendering.EffectiveView, error) {
	log := logger.FromContext(ctx)

	profile, err := s.publicProfile(ctx, slug)
	if err != nil {
		return rendering.EffectiveView{}, err
	}

	var template *models.Template
	if profile.TemplateID != 0 {
		t, err := s.templateRepository.GetTemplate(ctx, profile.TemplateID)
		switch {
		case err == nil:
			template = &t
		case errors.Is(err, store.ErrTemplateNotFound):
			log.Warn().Int64("template_id", profile.TemplateID).Str("slug", slug).Msg("profile template missing, using default layout")
		default:
			log.Err(err).Int64("template_id", profile.TemplateID).Str("slug", slug).Msg("template lookup failed, using default layout")
		}
	}

	view := rendering.Resolve(template, profile)

	event := s.newEvent(models.EventView, profile.ID, visit)
	event.Unique = !visit.Returning
	if err := s.profileRepository.RecordEvent(ctx, event); err != nil {
		log.Err(err).Int64("profile_id", profile.ID).Msg("failed to record profile view")
	}

	return view, nil
}

func (s *profileService) RecordPublicEvent(ctx context.Context, slug string, request models.EventRequest, visit models.Visit) error {
	profile, err := s.publicProfile(ctx, slug)
	if err != nil {
		return err
	}

	if request.Source != "" {
		visit.Source = request.Source
	}

	event := s.newEvent(request.Type, profile.ID, visit)
	event.LinkID = request.LinkID

	if err := s.profileRepository.RecordEvent(ctx, event); err != nil {
		return fmt.Errorf("error recording event: %w", err)
	}

	return nil
}

func (s *profileService) publicProfile(ctx context.Context, slug string) (models.Profile, error) {
	if !validators.IsValidSlug(slug) {
		return models.Profile{}, store.ErrProfileNotFound
	}

	profile, err := s.profileRepository.GetProfileBySlug(ctx, slug)
	if err != nil {
		return models.Profile{}, err
	}
	if !profile.IsActive {
		return models.Profile{}, ErrProfileInactive
	}

	return profile, nil
}

func (s *profileService) checkTemplate(ctx context.Context, templateID int64) error {
	template, err := s.templateRepository.GetTemplate(ctx, templateID)
	if err != nil {
		return fmt.Errorf("error getting template: %w", err)
	}
	if !template.IsActive {
		return ErrTemplateUnavailable
	}
	return nil
}

func (s *profileService) newEvent(eventType models.EventType, profileID int64, visit models.Visit) models.Event {
	return newEvent(eventType, profileID, visit, s.now())
}

func newEvent(eventType models.EventType, profileID int64, visit models.Visit, at time.Time) models.Event {
	return models.Event{
		Type:        eventType,
		ProfileID:   profileID,
		Timestamp:   at.UTC(),
		UserAgent:   visit.UserAgent,
		DeviceClass: analytics.ClassifyDevice(visit.UserAgent),
		Source:      resolveSource(visit),
	}
}

// resolveSource prefers the explicit marker, then the referring host.
func resolveSource(visit models.Visit) string {
	if src := strings.ToLower(strings.TrimSpace(visit.Source)); src != "" {
		return truncate(src, maxSourceLength)
	}

	if visit.Referer != "" {
		if u, err := url.Parse(visit.Referer); err == nil && u.Hostname() != "" {
			return truncate(strings.ToLower(u.Hostname()), maxRefererLength)
		}
	}

	return models.SourceDirect
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
