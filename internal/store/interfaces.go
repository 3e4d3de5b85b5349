// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/tapcard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts. Creating a user always adjusts the
// organization's users counter in the same transaction.
type UserRepository interface {
	// CreateOwner provisions an organization together with its first user.
	CreateOwner(ctx context.Context, org models.Organization, owner models.User) (models.Organization, models.User, error)
	// CreateMember adds a user to an existing organization, guarded by maxUsers.
	CreateMember(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context, organizationID int64) ([]models.User, error)
}

// OrganizationRepository reads and maintains tenants and their usage counters.
type OrganizationRepository interface {
	GetOrganization(ctx context.Context, organizationID int64) (models.Organization, error)
	GetUsageSnapshot(ctx context.Context, organizationID int64) (models.UsageSnapshot, error)
	UpdatePlan(ctx context.Context, organizationID int64, plan models.Plan, limits models.PlanLimits) (models.Organization, error)
	// RecountUsage recomputes usage counters from the resource tables and
	// returns how many organizations were corrected.
	RecountUsage(ctx context.Context) (int64, error)
}

// ProfileRepository persists profiles and their analytics counters.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
	GetProfile(ctx context.Context, organizationID, profileID int64) (models.Profile, error)
	GetProfileBySlug(ctx context.Context, slug string) (models.Profile, error)
	// ListProfiles returns an organization's profiles in creation order.
	ListProfiles(ctx context.Context, organizationID int64) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
	DeleteProfile(ctx context.Context, organizationID, profileID int64) error
	// RecordEvent stores event and bumps the profile counter it affects.
	RecordEvent(ctx context.Context, event models.Event) error
}

// TemplateRepository reads the template catalogue.
type TemplateRepository interface {
	ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error)
	GetTemplate(ctx context.Context, templateID int64) (models.Template, error)
	GetTemplateBySlug(ctx context.Context, slug string) (models.Template, error)
}

// CardRepository persists physical NFC cards.
type CardRepository interface {
	CreateCard(ctx context.Context, card models.Card) (models.Card, error)
	ListCards(ctx context.Context, organizationID int64) ([]models.Card, error)
	GetCard(ctx context.Context, organizationID, id int64) (models.Card, error)
	AssignCard(ctx context.Context, organizationID, id, profileID int64) (models.Card, error)
	DeleteCard(ctx context.Context, organizationID, id int64) error
	// Tap bumps the card and profile tap counters and stores the tap event.
	Tap(ctx context.Context, cardID string, event models.Event) (models.TapResult, error)
}

// EventRepository reads stored analytics events.
type EventRepository interface {
	ListEvents(ctx context.Context, query models.EventQuery) ([]models.Event, error)
}
