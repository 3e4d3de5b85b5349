// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is a user's role inside an organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// User represents an account belonging to exactly one organization.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// OrganizationID is the tenant the user belongs to.
	OrganizationID int64 `json:"organizationId"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Password carries the plain-text password on register/login requests
	// only. It is never persisted nor returned.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	Role Role `json:"role"`

	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest provisions a new organization together with its owner.
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	OrganizationName string `json:"organizationName"`
}

// Principal is the authenticated caller as established by the auth
// middleware. It is trusted without re-validation by the service layer.
type Principal struct {
	UserID         int64
	OrganizationID int64
	Role           Role
}

// CanManageOrganization reports whether the principal may change the plan
// or add members.
func (p Principal) CanManageOrganization() bool {
	return p.Role == RoleOwner || p.Role == RoleAdmin
}
