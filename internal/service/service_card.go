// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/store"
	"github.com/MKhiriev/tapcard/models"
)

type cardService struct {
	cardRepository    store.CardRepository
	profileRepository store.ProfileRepository

	quota         *quotaGuard
	publicBaseURL string
	now           func() time.Time

	logger *logger.Logger
}

func NewCardService(
	cardRepository store.CardRepository,
	profileRepository store.ProfileRepository,
	organizationRepository store.OrganizationRepository,
	evaluator *entitlement.Evaluator,
	publicBaseURL string,
	logger *logger.Logger,
) CardService {
	return &cardService{
		cardRepository:    cardRepository,
		profileRepository: profileRepository,
		quota:             newQuotaGuard(organizationRepository, evaluator),
		publicBaseURL:     publicBaseURL,
		now:               time.Now,
		logger:            logger,
	}
}

// RegisterCard stores a new physical card, gated by maxCards. A non-zero
// ProfileID must name a profile of the caller's organization.
func (s *cardService) RegisterCard(ctx context.Context, principal models.Principal, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	card.OrganizationID = principal.OrganizationID
	card.UserID = principal.UserID

	if card.ProfileID != 0 {
		if err := s.ensureProfile(ctx, principal.OrganizationID, card.ProfileID); err != nil {
			return models.Card{}, err
		}
	}

	if err := s.quota.check(ctx, principal.OrganizationID, models.ResourceCards); err != nil {
		return models.Card{}, err
	}

	created, err := s.cardRepository.CreateCard(ctx, card)
	if err != nil {
		return models.Card{}, s.quota.translate(ctx, principal.OrganizationID, models.ResourceCards, err)
	}

	log.Info().
		Int64("id", created.ID).
		Str("card_id", created.CardID).
		Int64("organization_id", created.OrganizationID).
		Msg("card registered")

	return created, nil
}

func (s *cardService) ListCards(ctx context.Context, principal models.Principal) ([]models.Card, error) {
	return s.cardRepository.ListCards(ctx, principal.OrganizationID)
}

func (s *cardService) AssignCard(ctx context.Context, principal models.Principal, id int64, request models.AssignCardRequest) (models.Card, error) {
	if err := s.ensureProfile(ctx, principal.OrganizationID, request.ProfileID); err != nil {
		return models.Card{}, err
	}

	card, err := s.cardRepository.AssignCard(ctx, principal.OrganizationID, id, request.ProfileID)
	if err != nil {
		return models.Card{}, err
	}

	logger.FromContext(ctx).Info().
		Int64("id", card.ID).
		Int64("profile_id", card.ProfileID).
		Msg("card reassigned")

	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, principal models.Principal, id int64) error {
	return s.cardRepository.DeleteCard(ctx, principal.OrganizationID, id)
}

// Tap records the tap and points the visitor at the public page of the
// card's profile.
func (s *cardService) Tap(ctx context.Context, cardID string, visit models.Visit) (models.TapResult, error) {
	if cardID == "" {
		return models.TapResult{}, store.ErrCardNotFound
	}
	if visit.Source == "" {
		visit.Source = models.SourceNFC
	}

	result, err := s.cardRepository.Tap(ctx, cardID, newEvent(models.EventTap, 0, visit, s.now()))
	if err != nil {
		return models.TapResult{}, err
	}

	redirect, err := url.JoinPath(s.publicBaseURL, result.ProfileSlug)
	if err != nil {
		return models.TapResult{}, fmt.Errorf("error building redirect url: %w", err)
	}
	result.RedirectURL = redirect

	return result, nil
}

func (s *cardService) ensureProfile(ctx context.Context, organizationID, profileID int64) error {
	if _, err := s.profileRepository.GetProfile(ctx, organizationID, profileID); err != nil {
		return fmt.Errorf("error getting profile: %w", err)
	}
	return nil
}
