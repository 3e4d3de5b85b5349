// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/store"
	"github.com/MKhiriev/tapcard/internal/validators"
	"github.com/MKhiriev/tapcard/models"
	"golang.org/x/crypto/bcrypt"
)

// OrganizationOverview is an organization together with the evaluation of
// each of its quotas.
type OrganizationOverview struct {
	Organization models.Organization          `json:"organization"`
	Usage        []entitlement.ResourceReport `json:"usage"`
}

type organizationService struct {
	organizationRepository store.OrganizationRepository
	userRepository         store.UserRepository

	evaluator *entitlement.Evaluator
	quota     *quotaGuard
	validator validators.Validator
	hashCost  int

	logger *logger.Logger
}

func NewOrganizationService(
	organizationRepository store.OrganizationRepository,
	userRepository store.UserRepository,
	evaluator *entitlement.Evaluator,
	logger *logger.Logger,
) OrganizationService {
	return &organizationService{
		organizationRepository: organizationRepository,
		userRepository:         userRepository,
		evaluator:              evaluator,
		quota:                  newQuotaGuard(organizationRepository, evaluator),
		validator:              validators.NewAccountValidator(),
		hashCost:               bcrypt.DefaultCost,
		logger:                 logger,
	}
}

func (s *organizationService) GetOverview(ctx context.Context, principal models.Principal) (OrganizationOverview, error) {
	org, err := s.organizationRepository.GetOrganization(ctx, principal.OrganizationID)
	if err != nil {
		return OrganizationOverview{}, fmt.Errorf("error getting organization: %w", err)
	}

	return s.overview(org), nil
}

// ChangePlan switches the organization to another plan. Only limits change:
// usage above a lowered limit is kept and blocks further creation until it
// drops below the new limit.
func (s *organizationService) ChangePlan(ctx context.Context, principal models.Principal, request models.ChangePlanRequest) (OrganizationOverview, error) {
	log := logger.FromContext(ctx)

	if !principal.CanManageOrganization() {
		return OrganizationOverview{}, ErrForbidden
	}

	if err := s.validator.Validate(ctx, request); err != nil {
		return OrganizationOverview{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	limits, _ := request.Plan.Limits()

	org, err := s.organizationRepository.UpdatePlan(ctx, principal.OrganizationID, request.Plan, limits)
	if err != nil {
		return OrganizationOverview{}, fmt.Errorf("error changing plan: %w", err)
	}

	log.Info().
		Int64("organization_id", org.ID).
		Str("plan", string(org.Plan)).
		Int64("user_id", principal.UserID).
		Msg("organization plan changed")

	return s.overview(org), nil
}

// AddMember creates a user in the caller's organization, gated by maxUsers.
func (s *organizationService) AddMember(ctx context.Context, principal models.Principal, member models.User) (models.User, error) {
	if !principal.CanManageOrganization() {
		return models.User{}, ErrForbidden
	}

	if member.Role == "" {
		member.Role = models.RoleMember
	}
	if err := s.validator.Validate(ctx, member); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.quota.check(ctx, principal.OrganizationID, models.ResourceUsers); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(member.Password), s.hashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	created, err := s.userRepository.CreateMember(ctx, models.User{
		OrganizationID: principal.OrganizationID,
		Email:          member.Email,
		Name:           strings.TrimSpace(member.Name),
		PasswordHash:   string(hash),
		Role:           member.Role,
	})
	if err != nil {
		return models.User{}, s.quota.translate(ctx, principal.OrganizationID, models.ResourceUsers, err)
	}

	return created, nil
}

func (s *organizationService) ListMembers(ctx context.Context, principal models.Principal) ([]models.User, error) {
	return s.userRepository.ListUsers(ctx, principal.OrganizationID)
}

func (s *organizationService) ReconcileUsage(ctx context.Context) (int64, error) {
	corrected, err := s.organizationRepository.RecountUsage(ctx)
	if err != nil {
		return 0, fmt.Errorf("error reconciling usage: %w", err)
	}
	return corrected, nil
}

func (s *organizationService) overview(org models.Organization) OrganizationOverview {
	return OrganizationOverview{
		Organization: org,
		Usage: s.evaluator.Report(models.UsageSnapshot{
			OrganizationID: org.ID,
			Limits:         org.Limits,
			Usage:          org.Usage,
		}),
	}
}
