// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/rendering"
	"github.com/MKhiriev/tapcard/models"
)

type AuthService interface {
	// Register provisions a new organization on the free plan and its owner.
	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type OrganizationService interface {
	GetOverview(ctx context.Context, principal models.Principal) (OrganizationOverview, error)
	ChangePlan(ctx context.Context, principal models.Principal, request models.ChangePlanRequest) (OrganizationOverview, error)
	AddMember(ctx context.Context, principal models.Principal, member models.User) (models.User, error)
	ListMembers(ctx context.Context, principal models.Principal) ([]models.User, error)
	// ReconcileUsage repairs drifted usage counters of every organization.
	ReconcileUsage(ctx context.Context) (int64, error)
}

type ProfileService interface {
	CreateProfile(ctx context.Context, principal models.Principal, profile models.Profile) (models.Profile, error)
	GetProfile(ctx context.Context, principal models.Principal, profileID int64) (models.Profile, error)
	ListProfiles(ctx context.Context, principal models.Principal) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, principal models.Principal, profileID int64, update models.ProfileUpdate) (models.Profile, error)
	DeleteProfile(ctx context.Context, principal models.Principal, profileID int64) error

	// ViewPublicProfile resolves the rendered view of an active profile and
	// records a view event for it.
	ViewPublicProfile(ctx context.Context, slug string, visit models.Visit) (rendering.EffectiveView, error)
	// RecordPublicEvent records a visitor interaction on an active profile.
	RecordPublicEvent(ctx context.Context, slug string, request models.EventRequest, visit models.Visit) error
}

type TemplateService interface {
	ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error)
	GetTemplate(ctx context.Context, slug string) (models.Template, error)
}

type CardService interface {
	RegisterCard(ctx context.Context, principal models.Principal, card models.Card) (models.Card, error)
	ListCards(ctx context.Context, principal models.Principal) ([]models.Card, error)
	AssignCard(ctx context.Context, principal models.Principal, id int64, request models.AssignCardRequest) (models.Card, error)
	DeleteCard(ctx context.Context, principal models.Principal, id int64) error

	// Tap records a physical card tap and resolves where to send the visitor.
	Tap(ctx context.Context, cardID string, visit models.Visit) (models.TapResult, error)
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, principal models.Principal, days int) (analytics.Report, error)
	ProfileReport(ctx context.Context, principal models.Principal, profileID int64, days int) (analytics.Report, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ProfileServiceWrapper defines middleware composition for ProfileService.
// Implementations wrap an existing ProfileService to add behavior such as
// validating.
type ProfileServiceWrapper interface {
	Wrap(ProfileService) ProfileService // returns a decorated ProfileService applying additional behavior
}

// CardServiceWrapper defines middleware composition for CardService.
type CardServiceWrapper interface {
	Wrap(CardService) CardService
}
