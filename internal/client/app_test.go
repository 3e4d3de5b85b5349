// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MKhiriev/tapcard/internal/adapter"
	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/mock"
	"github.com/MKhiriev/tapcard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() config.ClientConfig {
	return config.ClientConfig{
		Adapter:             config.ClientAdapter{HTTPAddress: "http://localhost:8080"},
		Credentials:         config.ClientCredentials{Email: "jane@example.com", Password: "correct-horse"},
		AnalyticsWindowDays: 30,
	}
}

func TestNewApp_RequiresCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig()
	cfg.Credentials.Password = ""

	app, err := NewApp(mock.NewMockServerAdapter(ctrl), cfg, &bytes.Buffer{}, logger.Nop())

	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Nil(t, app)
}

func TestApp_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)

	overview := adapter.Overview{
		Organization: models.Organization{ID: 3, Name: "Acme", Plan: models.PlanFree},
		Usage: []entitlement.ResourceReport{
			{Kind: models.ResourceProfiles, Limit: models.Bounded(1), Used: 1, Remaining: models.Bounded(0), NearLimit: true},
		},
	}
	dashboard := analytics.Report{Totals: analytics.Totals{Views: 12, Taps: 3}}

	gomock.InOrder(
		server.EXPECT().Version(gomock.Any()).Return("v1.4.0", nil),
		server.EXPECT().Login(gomock.Any(), "jane@example.com", "correct-horse").
			Return(models.User{UserID: 7, OrganizationID: 3, Role: models.RoleOwner}, nil),
		server.EXPECT().Overview(gomock.Any()).Return(overview, nil),
		server.EXPECT().Dashboard(gomock.Any(), 30).Return(dashboard, nil),
	)

	var out bytes.Buffer
	app, err := NewApp(server, testConfig(), &out, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(t.Context()))

	var printed struct {
		ServerVersion string `json:"serverVersion"`
		User          struct {
			ID int64 `json:"id"`
		} `json:"user"`
		Organization struct {
			Organization struct {
				Name string `json:"name"`
			} `json:"organization"`
			Usage []struct {
				Kind  string `json:"kind"`
				Limit int64  `json:"limit"`
			} `json:"usage"`
		} `json:"organization"`
		Dashboard struct {
			Totals struct {
				Views int64 `json:"views"`
				Taps  int64 `json:"taps"`
			} `json:"totals"`
		} `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, "v1.4.0", printed.ServerVersion)
	assert.Equal(t, int64(7), printed.User.ID)
	assert.Equal(t, "Acme", printed.Organization.Organization.Name)
	require.Len(t, printed.Organization.Usage, 1)
	assert.Equal(t, "profiles", printed.Organization.Usage[0].Kind)
	assert.Equal(t, int64(1), printed.Organization.Usage[0].Limit)
	assert.Equal(t, int64(12), printed.Dashboard.Totals.Views)
	assert.Equal(t, int64(3), printed.Dashboard.Totals.Taps)
}

func TestApp_Run_VersionFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)

	server.EXPECT().Version(gomock.Any()).Return("", errors.New("connection reset"))
	server.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{UserID: 7}, nil)
	server.EXPECT().Overview(gomock.Any()).Return(adapter.Overview{}, nil)
	server.EXPECT().Dashboard(gomock.Any(), 30).Return(analytics.Report{}, nil)

	var out bytes.Buffer
	app, err := NewApp(server, testConfig(), &out, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(t.Context()))
	assert.NotContains(t, out.String(), "serverVersion")
}

func TestApp_Run_LoginFailureStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)

	server.EXPECT().Version(gomock.Any()).Return("v1.4.0", nil)
	server.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, adapter.ErrUnauthorized)

	var out bytes.Buffer
	app, err := NewApp(server, testConfig(), &out, logger.Nop())
	require.NoError(t, err)

	err = app.Run(t.Context())

	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Empty(t, out.String())
}

func TestApp_Run_DashboardFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)

	server.EXPECT().Version(gomock.Any()).Return("v1.4.0", nil)
	server.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{UserID: 7}, nil)
	server.EXPECT().Overview(gomock.Any()).Return(adapter.Overview{}, nil)
	server.EXPECT().Dashboard(gomock.Any(), 30).Return(analytics.Report{}, adapter.ErrUnavailable)

	var out bytes.Buffer
	app, err := NewApp(server, testConfig(), &out, logger.Nop())
	require.NoError(t, err)

	err = app.Run(t.Context())

	require.ErrorIs(t, err, adapter.ErrUnavailable)
	assert.Empty(t, out.String())
}
