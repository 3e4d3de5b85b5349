// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/tapcard/models"
)

const (
	FieldCardID       = "card_id"
	FieldSerialNumber = "serial_number"
	FieldChipType     = "chip_type"
	FieldProfileID    = "profile_id"
)

// CardValidator validates NFC card registrations and reassignments.
type CardValidator struct{}

func NewCardValidator() Validator {
	return &CardValidator{}
}

func (v *CardValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Card:
		return v.validateCard(value, fields...)
	case *models.Card:
		return v.validateCard(*value, fields...)

	case models.AssignCardRequest:
		return v.validateAssignCardRequest(value, fields...)
	case *models.AssignCardRequest:
		return v.validateAssignCardRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CardValidator) validateCard(card models.Card, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCardID, FieldSerialNumber, FieldChipType, FieldProfileID}
	}

	for _, f := range fields {
		switch f {
		case FieldCardID:
			if strings.TrimSpace(card.CardID) == "" {
				return ErrEmptyCardID
			}
		case FieldSerialNumber:
			if strings.TrimSpace(card.SerialNumber) == "" {
				return ErrEmptySerialNumber
			}
		case FieldChipType:
			if !card.ChipType.IsValid() {
				return ErrInvalidChipType
			}
		case FieldProfileID:
			// zero leaves the card unassigned
			if card.ProfileID < 0 {
				return ErrInvalidProfileID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CardValidator) validateAssignCardRequest(request models.AssignCardRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProfileID}
	}

	for _, f := range fields {
		switch f {
		case FieldProfileID:
			if request.ProfileID <= 0 {
				return ErrInvalidProfileID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
