// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/tapcard/internal/adapter"
	"github.com/MKhiriev/tapcard/internal/client"
	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	fmt.Fprintf(os.Stderr, "tapcard client %s (%s, %s)\n", buildInfo.BuildVersion(), buildInfo.BuildCommit(), buildInfo.BuildDate())

	log := logger.NewClientLogger("tapcard-client")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	app, err := client.NewApp(serverAdapter, *cfg, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
