// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail            = errors.New("invalid email")
	ErrPasswordTooShort        = errors.New("password must be at least 8 characters")
	ErrEmptyName               = errors.New("name is required")
	ErrEmptyOrganizationName   = errors.New("organization name is required")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInvalidPlan             = errors.New("invalid plan")
	ErrInvalidSlug             = errors.New("slug must be 3-64 lowercase letters, digits or single hyphens")
	ErrEmptyPersonalName       = errors.New("first or last name is required")
	ErrInvalidTemplateID       = errors.New("invalid template ID")
	ErrInvalidColor            = errors.New("invalid color, expected #RGB or #RRGGBB")
	ErrInvalidURL              = errors.New("invalid URL")
	ErrInvalidSocialLink       = errors.New("social link needs an ID, platform and URL")
	ErrDuplicateSocialLinkID   = errors.New("duplicate social link ID")
	ErrUnknownSection          = errors.New("unknown section")
	ErrInvalidTestimonialScore = errors.New("testimonial rating must be between 1 and 5")
	ErrInvalidEventType        = errors.New("invalid event type")
	ErrMissingLinkID           = errors.New("link ID is required for click events")
	ErrEmptyCardID             = errors.New("card ID is required")
	ErrEmptySerialNumber       = errors.New("serial number is required")
	ErrInvalidChipType         = errors.New("invalid chip type")
	ErrInvalidProfileID        = errors.New("invalid profile ID")
)
