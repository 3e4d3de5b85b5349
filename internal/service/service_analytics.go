// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/store"
	"github.com/MKhiriev/tapcard/models"
)

type analyticsService struct {
	profileRepository store.ProfileRepository
	eventRepository   store.EventRepository

	aggregator *analytics.Aggregator

	logger *logger.Logger
}

func NewAnalyticsService(
	profileRepository store.ProfileRepository,
	eventRepository store.EventRepository,
	aggregator *analytics.Aggregator,
	logger *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		profileRepository: profileRepository,
		eventRepository:   eventRepository,
		aggregator:        aggregator,
		logger:            logger,
	}
}

// Dashboard aggregates every profile of the caller's organization.
// A non-positive days selects the configured default window.
func (s *analyticsService) Dashboard(ctx context.Context, principal models.Principal, days int) (analytics.Report, error) {
	profiles, err := s.profileRepository.ListProfiles(ctx, principal.OrganizationID)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("error listing profiles: %w", err)
	}

	refs := make([]models.ProfileRef, 0, len(profiles))
	for _, p := range profiles {
		refs = append(refs, p.Ref())
	}

	return s.aggregate(ctx, refs, days)
}

func (s *analyticsService) ProfileReport(ctx context.Context, principal models.Principal, profileID int64, days int) (analytics.Report, error) {
	profile, err := s.profileRepository.GetProfile(ctx, principal.OrganizationID, profileID)
	if err != nil {
		return analytics.Report{}, err
	}

	return s.aggregate(ctx, []models.ProfileRef{profile.Ref()}, days)
}

func (s *analyticsService) aggregate(ctx context.Context, refs []models.ProfileRef, days int) (analytics.Report, error) {
	report, err := s.aggregator.AggregateFrom(ctx, s.eventRepository, refs, days)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "analyticsService.aggregate").
			Int("profiles", len(refs)).
			Msg("failed to aggregate analytics")
		return analytics.Report{}, err
	}

	return report, nil
}
