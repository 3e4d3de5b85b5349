// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/tapcard/internal/adapter"
	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/models"
)

var ErrMissingCredentials = errors.New("email and password are required")

// Report is the document printed by the client.
type Report struct {
	ServerVersion string           `json:"serverVersion,omitempty"`
	User          models.User      `json:"user"`
	Organization  adapter.Overview `json:"organization"`
	Dashboard     analytics.Report `json:"dashboard"`
}

type App struct {
	server adapter.ServerAdapter
	cfg    config.ClientConfig
	out    io.Writer

	logger *logger.Logger
}

func NewApp(server adapter.ServerAdapter, cfg config.ClientConfig, out io.Writer, logger *logger.Logger) (*App, error) {
	if cfg.Credentials.Email == "" || cfg.Credentials.Password == "" {
		return nil, ErrMissingCredentials
	}

	return &App{
		server: server,
		cfg:    cfg,
		out:    out,
		logger: logger,
	}, nil
}

// Run logs in, collects the report and writes it to the configured output.
func (a *App) Run(ctx context.Context) error {
	report, err := a.collect(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (a *App) collect(ctx context.Context) (Report, error) {
	var report Report

	// the version endpoint is informational only
	version, err := a.server.Version(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("server version unavailable")
	}
	report.ServerVersion = version

	report.User, err = a.server.Login(ctx, a.cfg.Credentials.Email, a.cfg.Credentials.Password)
	if err != nil {
		return Report{}, fmt.Errorf("login: %w", err)
	}

	report.Organization, err = a.server.Overview(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("organization overview: %w", err)
	}

	report.Dashboard, err = a.server.Dashboard(ctx, a.cfg.AnalyticsWindowDays)
	if err != nil {
		return Report{}, fmt.Errorf("analytics dashboard: %w", err)
	}

	for _, usage := range report.Organization.Usage {
		if usage.NearLimit {
			a.logger.Warn().
				Str("kind", string(usage.Kind)).
				Int64("used", usage.Used).
				Str("limit", usage.Limit.String()).
				Msg("resource close to its plan limit")
		}
	}

	return report, nil
}
