// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/tapcard/internal/analytics"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key, issuer and duration are required", ErrInvalidAppConfigs)
	}
	if cfg.App.NearLimitThreshold <= 0 || cfg.App.NearLimitThreshold > 1 {
		return fmt.Errorf("%w: near limit threshold must be in (0, 1]", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.RateLimit.Requests < 0 || cfg.Server.RateLimit.Window < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidServerConfigs)
	}
	if _, err := cfg.Server.TrustedProxyPrefixes(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err)
	}

	if cfg.Analytics.DefaultWindowDays < 0 || cfg.Analytics.DefaultWindowDays > analytics.MaxWindowDays {
		return fmt.Errorf("%w: default window must be between 0 and %d days", ErrInvalidAnalyticsConfigs, analytics.MaxWindowDays)
	}
	if cfg.Analytics.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Analytics.Timezone); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAnalyticsConfigs, err)
		}
	}

	if cfg.Workers.ReconcileInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Credentials.Email == "" || cfg.Credentials.Password == "" {
		return ErrInvalidCredentialsConfigs
	}

	return nil
}
