// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	ErrInvalidJSON      = errors.New("invalid JSON was passed")
	ErrInvalidPathParam = errors.New("invalid path parameter")
	ErrInvalidDays      = errors.New("days must be an integer between 1 and 365")
	ErrNoPrincipal      = errors.New("request is not authenticated")
	ErrRouteNotFound    = errors.New("route not found")

	// ErrTooManyRequests is returned when a client exhausted its rate limit
	// window on a public endpoint.
	ErrTooManyRequests = errors.New("too many requests")
)
