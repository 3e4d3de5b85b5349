// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/netip"

	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/ratelimit"
	"github.com/MKhiriev/tapcard/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  ratelimit.Limiter
	cfg      config.Server
	proxies  []netip.Prefix

	logger *logger.Logger
}

// NewHandler builds the REST handler. A nil limiter disables rate limiting.
func NewHandler(services *service.Services, cfg config.Server, limiter ratelimit.Limiter, logger *logger.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.NewNoopLimiter()
	}

	proxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		logger.Err(err).Msg("ignoring trusted proxies, forwarding headers will not be honoured")
		proxies = nil
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		cfg:      cfg,
		proxies:  proxies,
		logger:   logger,
	}
}
