// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientCredentials holds the login the client authenticates with.
type ClientCredentials struct {
	Email    string
	Password string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Credentials contains the login of the client.
	Credentials ClientCredentials
	// AnalyticsWindowDays is the dashboard window requested by the client.
	AnalyticsWindowDays int
}

// GetClientConfig builds and validates a client-specific config view.
//
// The client has no database or token key of its own, so unlike
// [GetStructuredConfig] it does not apply server validation: env, flags and
// the JSON file are merged with the defaults and only the fields relevant
// to the client runtime are mapped and validated.
func GetClientConfig(args []string) (*ClientConfig, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults()
	if b.err != nil {
		return nil, fmt.Errorf("error get client config: %w", b.err)
	}

	cfg, err := b.merge()
	if err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return clientConfigFrom(cfg)
}

func clientConfigFrom(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Credentials: ClientCredentials{
			Email:    cfg.Adapter.Email,
			Password: cfg.Adapter.Password,
		},
		AnalyticsWindowDays: cfg.Analytics.DefaultWindowDays,
	}

	return clientCfg, clientCfg.validate()
}
