// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRoutes_UnknownRouteIsJSON404(t *testing.T) {
	h := newTestHandler(testServices(), nil)

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestRoutes_MethodNotAllowedIsReportedAsNotFound(t *testing.T) {
	h := newTestHandler(testServices(), nil)

	rec := serve(t, h, httptest.NewRequest(http.MethodPatch, "/api/profiles", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestRoutes_ProtectedRoutesRequireToken(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/organization"},
		{http.MethodPut, "/api/organization/plan"},
		{http.MethodGet, "/api/organization/members"},
		{http.MethodPost, "/api/organization/members"},
		{http.MethodGet, "/api/profiles"},
		{http.MethodPost, "/api/profiles"},
		{http.MethodGet, "/api/profiles/1"},
		{http.MethodPut, "/api/profiles/1"},
		{http.MethodDelete, "/api/profiles/1"},
		{http.MethodGet, "/api/cards"},
		{http.MethodPost, "/api/cards"},
		{http.MethodPut, "/api/cards/1/profile"},
		{http.MethodDelete, "/api/cards/1"},
		{http.MethodGet, "/api/analytics/dashboard"},
		{http.MethodGet, "/api/analytics/profiles/1"},
	}

	h := newTestHandler(testServices(), nil)
	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := serve(t, h, httptest.NewRequest(route.method, route.path, nil))

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthorized", decodeError(t, rec).Code)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "no token", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer expired", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + validToken, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(testServices(), nil)

			var gotPrincipal bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				principal, err := principalFrom(r)
				require.NoError(t, err)
				assert.Equal(t, testPrincipal, principal)
				gotPrincipal = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusNoContent, gotPrincipal)
		})
	}
}

func TestRoutes_CORSPreflight(t *testing.T) {
	cfg := config.Server{CORSAllowedOrigins: []string{"https://app.example.com"}}
	h := NewHandler(testServices(), cfg, nil, logger.Nop())

	req := httptest.NewRequest(http.MethodOptions, "/api/profiles", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(t, h, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
