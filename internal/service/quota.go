// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/store"
	"github.com/MKhiriev/tapcard/models"
)

// quotaGuard gates resource creation on the organization's plan.
//
// The pre-check gives callers a precise error without touching the resource
// tables. The store enforces the same limit in SQL, so a create that loses a
// race reports store.ErrUsageLimitReached, which translate turns into the
// same typed error.
type quotaGuard struct {
	organizations store.OrganizationRepository
	evaluator     *entitlement.Evaluator
}

func newQuotaGuard(organizations store.OrganizationRepository, evaluator *entitlement.Evaluator) *quotaGuard {
	return &quotaGuard{organizations: organizations, evaluator: evaluator}
}

func (g *quotaGuard) check(ctx context.Context, organizationID int64, kind models.ResourceKind) error {
	snapshot, err := g.organizations.GetUsageSnapshot(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("error reading usage: %w", err)
	}

	if err := g.evaluator.Check(kind, snapshot); err != nil {
		logger.FromContext(ctx).Info().
			Str("func", "quotaGuard.check").
			Int64("organization_id", organizationID).
			Str("kind", string(kind)).
			Msg("plan limit reached")
		return err
	}

	return nil
}

func (g *quotaGuard) translate(ctx context.Context, organizationID int64, kind models.ResourceKind, err error) error {
	if !errors.Is(err, store.ErrUsageLimitReached) {
		return err
	}

	snapshot, snapErr := g.organizations.GetUsageSnapshot(ctx, organizationID)
	if snapErr != nil {
		return &entitlement.LimitExceededError{Kind: kind}
	}

	return &entitlement.LimitExceededError{
		Kind:  kind,
		Limit: snapshot.Limits.For(kind),
		Usage: snapshot.Usage.For(kind),
	}
}
