// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ResourceKind names a quota-controlled resource of an organization.
type ResourceKind string

const (
	ResourceUsers    ResourceKind = "users"
	ResourceCards    ResourceKind = "cards"
	ResourceProfiles ResourceKind = "profiles"
	ResourceStorage  ResourceKind = "storage"
)

// ResourceKinds lists every quota-controlled kind in display order.
var ResourceKinds = []ResourceKind{
	ResourceUsers,
	ResourceCards,
	ResourceProfiles,
	ResourceStorage,
}

// PlanLimits holds the quotas granted by an organization's plan.
type PlanLimits struct {
	MaxUsers    Limit `json:"maxUsers"`
	MaxCards    Limit `json:"maxCards"`
	MaxProfiles Limit `json:"maxProfiles"`
	// MaxStorage is expressed in megabytes.
	MaxStorage Limit `json:"maxStorage"`
}

// For returns the quota for kind. Unknown kinds yield Bounded(0).
func (l PlanLimits) For(kind ResourceKind) Limit {
	switch kind {
	case ResourceUsers:
		return l.MaxUsers
	case ResourceCards:
		return l.MaxCards
	case ResourceProfiles:
		return l.MaxProfiles
	case ResourceStorage:
		return l.MaxStorage
	default:
		return Limit{}
	}
}

// Usage holds the running counters consumed against [PlanLimits].
type Usage struct {
	Users    int64 `json:"users"`
	Cards    int64 `json:"cards"`
	Profiles int64 `json:"profiles"`
	Storage  int64 `json:"storage"`
}

// For returns the counter for kind. Unknown kinds yield 0.
func (u Usage) For(kind ResourceKind) int64 {
	switch kind {
	case ResourceUsers:
		return u.Users
	case ResourceCards:
		return u.Cards
	case ResourceProfiles:
		return u.Profiles
	case ResourceStorage:
		return u.Storage
	default:
		return 0
	}
}

// Plan is a subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanBusiness   Plan = "business"
	PlanEnterprise Plan = "enterprise"
)

var planLimits = map[Plan]PlanLimits{
	PlanFree: {
		MaxUsers:    Bounded(1),
		MaxCards:    Bounded(1),
		MaxProfiles: Bounded(1),
		MaxStorage:  Bounded(50),
	},
	PlanPro: {
		MaxUsers:    Bounded(5),
		MaxCards:    Bounded(10),
		MaxProfiles: Bounded(10),
		MaxStorage:  Bounded(1024),
	},
	PlanBusiness: {
		MaxUsers:    Bounded(25),
		MaxCards:    Bounded(100),
		MaxProfiles: Bounded(100),
		MaxStorage:  Bounded(10240),
	},
	PlanEnterprise: {
		MaxUsers:    Unlimited(),
		MaxCards:    Unlimited(),
		MaxProfiles: Unlimited(),
		MaxStorage:  Unlimited(),
	},
}

// Limits returns the preset quotas of the plan and whether the plan is known.
func (p Plan) Limits() (PlanLimits, bool) {
	limits, ok := planLimits[p]
	return limits, ok
}

// Organization is a tenant owning users, profiles and cards.
type Organization struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Plan      Plan       `json:"plan"`
	Limits    PlanLimits `json:"limits"`
	Usage     Usage      `json:"usage"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UsageSnapshot is a consistent read of an organization's quotas and
// counters, taken by the caller before an entitlement decision.
type UsageSnapshot struct {
	OrganizationID int64      `json:"organizationId"`
	Limits         PlanLimits `json:"limits"`
	Usage          Usage      `json:"usage"`
}

// ChangePlanRequest is the body of a plan change.
type ChangePlanRequest struct {
	Plan Plan `json:"plan"`
}
