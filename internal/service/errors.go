// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("wrong email or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("operation not permitted for this role")

	ErrSlugImmutable       = errors.New("profile slug cannot be changed")
	ErrTemplateUnavailable = errors.New("template is not active")
	ErrProfileInactive     = errors.New("profile is not published")
)
