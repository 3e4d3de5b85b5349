// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tapcard/internal/validators"
	"github.com/MKhiriev/tapcard/models"
)

type CardValidationService struct {
	inner     CardService
	validator validators.Validator
}

func NewCardValidationService() CardServiceWrapper {
	return &CardValidationService{
		validator: validators.NewCardValidator(),
	}
}

func (v *CardValidationService) RegisterCard(ctx context.Context, principal models.Principal, card models.Card) (models.Card, error) {
	if err := v.validator.Validate(ctx, card); err != nil {
		return models.Card{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RegisterCard(ctx, principal, card)
}

func (v *CardValidationService) ListCards(ctx context.Context, principal models.Principal) ([]models.Card, error) {
	return v.inner.ListCards(ctx, principal)
}

func (v *CardValidationService) AssignCard(ctx context.Context, principal models.Principal, id int64, request models.AssignCardRequest) (models.Card, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Card{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.AssignCard(ctx, principal, id, request)
}

func (v *CardValidationService) DeleteCard(ctx context.Context, principal models.Principal, id int64) error {
	return v.inner.DeleteCard(ctx, principal, id)
}

func (v *CardValidationService) Tap(ctx context.Context, cardID string, visit models.Visit) (models.TapResult, error) {
	return v.inner.Tap(ctx, cardID, visit)
}

func (v *CardValidationService) Wrap(inner CardService) CardService {
	v.inner = inner
	return v
}
