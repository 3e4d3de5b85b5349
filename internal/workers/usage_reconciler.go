// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/service"
)

// UsageReconciler periodically recounts organization usage from the
// resource tables, repairing counters that drifted from reality.
type UsageReconciler struct {
	organizations service.OrganizationService
	interval      time.Duration
	logger        *logger.Logger
}

func NewUsageReconciler(organizations service.OrganizationService, interval time.Duration, logger *logger.Logger) *UsageReconciler {
	return &UsageReconciler{
		organizations: organizations,
		interval:      interval,
		logger:        logger,
	}
}

// Run reconciles once per interval. A failed pass is logged and retried on
// the next tick.
func (u *UsageReconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	u.logger.Info().Dur("interval", u.interval).Msg("usage reconciler started")

	for {
		select {
		case <-ctx.Done():
			u.logger.Info().Msg("usage reconciler stopped")
			return
		case <-ticker.C:
			u.reconcile(ctx)
		}
	}
}

func (u *UsageReconciler) reconcile(ctx context.Context) {
	start := time.Now()

	corrected, err := u.organizations.ReconcileUsage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		u.logger.Err(err).Msg("usage reconciliation failed")
		return
	}

	event := u.logger.Debug()
	if corrected > 0 {
		event = u.logger.Warn()
	}
	event.Int64("corrected", corrected).Dur("duration", time.Since(start)).Msg("usage reconciled")
}
