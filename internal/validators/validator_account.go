// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/tapcard/models"
)

const (
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldName             = "name"
	FieldOrganizationName = "organization_name"
	FieldRole             = "role"
	FieldPlan             = "plan"
)

const minPasswordLength = 8

// AccountValidator validates registration, login, member and plan payloads.
type AccountValidator struct{}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.ChangePlanRequest:
		return v.validateChangePlanRequest(value, fields...)
	case *models.ChangePlanRequest:
		return v.validateChangePlanRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateRegisterRequest(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldName, FieldOrganizationName}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isEmail(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(request.Password) < minPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldName:
			if strings.TrimSpace(request.Name) == "" {
				return ErrEmptyName
			}
		case FieldOrganizationName:
			if strings.TrimSpace(request.OrganizationName) == "" {
				return ErrEmptyOrganizationName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldName, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isEmail(user.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(user.Password) < minPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldName:
			if strings.TrimSpace(user.Name) == "" {
				return ErrEmptyName
			}
		case FieldRole:
			// a second owner can only be created through registration
			if !user.Role.IsValid() || user.Role == models.RoleOwner {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateChangePlanRequest(request models.ChangePlanRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPlan}
	}

	for _, f := range fields {
		switch f {
		case FieldPlan:
			if _, ok := request.Plan.Limits(); !ok {
				return ErrInvalidPlan
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
