// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set issued by the API. The subject carries the
// user ID; organization and role ride along so that requests can be
// authorized without a database round trip.
type Claims struct {
	jwt.RegisteredClaims

	OrganizationID int64 `json:"org_id"`
	Role           Role  `json:"role"`
}

// Token wraps a JWT token with the values extracted from its claims.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	UserID         int64 `json:"-"`
	OrganizationID int64 `json:"-"`
	Role           Role  `json:"-"`
}

// Principal returns the authenticated caller described by the token.
func (t *Token) Principal() Principal {
	return Principal{
		UserID:         t.UserID,
		OrganizationID: t.OrganizationID,
		Role:           t.Role,
	}
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
