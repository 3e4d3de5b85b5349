// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tapcard/internal/rendering"
	"github.com/MKhiriev/tapcard/internal/validators"
	"github.com/MKhiriev/tapcard/models"
)

// ProfileValidationService checks profile and event payloads before they
// reach the wrapped ProfileService.
type ProfileValidationService struct {
	inner     ProfileService
	validator validators.Validator
}

func NewProfileValidationService() ProfileServiceWrapper {
	return &ProfileValidationService{
		validator: validators.NewProfileValidator(),
	}
}

func (v *ProfileValidationService) CreateProfile(ctx context.Context, principal models.Principal, profile models.Profile) (models.Profile, error) {
	if err := v.validator.Validate(ctx, profile); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateProfile(ctx, principal, profile)
}

func (v *ProfileValidationService) GetProfile(ctx context.Context, principal models.Principal, profileID int64) (models.Profile, error) {
	return v.inner.GetProfile(ctx, principal, profileID)
}

func (v *ProfileValidationService) ListProfiles(ctx context.Context, principal models.Principal) ([]models.Profile, error) {
	return v.inner.ListProfiles(ctx, principal)
}

// UpdateProfile validates the content the update carries. Slug and template
// are checked against the stored profile by the inner service.
func (v *ProfileValidationService) UpdateProfile(ctx context.Context, principal models.Principal, profileID int64, update models.ProfileUpdate) (models.Profile, error) {
	content := update.Apply(models.Profile{})
	err := v.validator.Validate(ctx, content,
		validators.FieldPersonalInfo,
		validators.FieldCustomization,
		validators.FieldContactInfo,
		validators.FieldSocialLinks,
		validators.FieldSections,
		validators.FieldTestimonials,
	)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateProfile(ctx, principal, profileID, update)
}

func (v *ProfileValidationService) DeleteProfile(ctx context.Context, principal models.Principal, profileID int64) error {
	return v.inner.DeleteProfile(ctx, principal, profileID)
}

func (v *ProfileValidationService) ViewPublicProfile(ctx context.Context, slug string, visit models.Visit) (rendering.EffectiveView, error) {
	return v.inner.ViewPublicProfile(ctx, slug, visit)
}

func (v *ProfileValidationService) RecordPublicEvent(ctx context.Context, slug string, request models.EventRequest, visit models.Visit) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RecordPublicEvent(ctx, slug, request, visit)
}

func (v *ProfileValidationService) Wrap(inner ProfileService) ProfileService {
	v.inner = inner
	return v
}
