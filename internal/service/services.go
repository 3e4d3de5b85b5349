// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/store"
)

type Services struct {
	AuthService         AuthService
	OrganizationService OrganizationService
	ProfileService      ProfileService
	TemplateService     TemplateService
	CardService         CardService
	AnalyticsService    AnalyticsService
	AppInfoService      AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	evaluator := entitlement.NewEvaluator(cfg.App.NearLimitThreshold)
	aggregator := analytics.NewAggregator(
		analytics.WithLocation(cfg.Analytics.Location()),
		analytics.WithDefaultWindow(cfg.Analytics.DefaultWindowDays),
	)

	profileService := NewProfileValidationService().Wrap(NewProfileService(
		storages.ProfileRepository,
		storages.TemplateRepository,
		storages.OrganizationRepository,
		evaluator,
		logger,
	))

	cardService := NewCardValidationService().Wrap(NewCardService(
		storages.CardRepository,
		storages.ProfileRepository,
		storages.OrganizationRepository,
		evaluator,
		cfg.App.PublicBaseURL,
		logger,
	))

	return &Services{
		AuthService:         NewAuthService(storages.UserRepository, cfg.App, logger),
		OrganizationService: NewOrganizationService(storages.OrganizationRepository, storages.UserRepository, evaluator, logger),
		ProfileService:      profileService,
		TemplateService:     NewTemplateService(storages.TemplateRepository, logger),
		CardService:         cardService,
		AnalyticsService:    NewAnalyticsService(storages.ProfileRepository, storages.EventRepository, aggregator, logger),
		AppInfoService:      appInfoService,
	}, nil
}
