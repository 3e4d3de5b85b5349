// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the tapcard REST API.
//
// [ServerAdapter] hides the transport from the command-line client. Failed
// responses are mapped to the sentinel errors in errors.go so that callers
// can branch with [errors.Is], e.g. [ErrLimitExceeded] for 402.
package adapter

import (
	"context"

	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// Overview is an organization together with its per-resource usage report.
type Overview struct {
	Organization models.Organization          `json:"organization"`
	Usage        []entitlement.ResourceReport `json:"usage"`
}

// ServerAdapter talks to the tapcard API on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)
	Token() string

	// Login authenticates with email and password and keeps the issued token.
	Login(ctx context.Context, email, password string) (models.User, error)

	Overview(ctx context.Context) (Overview, error)
	// Dashboard fetches the organization-wide analytics report. A zero days
	// value asks for the server's default window.
	Dashboard(ctx context.Context, days int) (analytics.Report, error)
	Version(ctx context.Context) (string, error)
}
