// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/utils"
	"github.com/MKhiriev/tapcard/models"
	"github.com/go-chi/chi/v5"
)

const (
	returningVisitorHeader = "X-Returning-Visitor"
	maxBodyBytes           = 1 << 20
)

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPathParam, name)
	}
	return id, nil
}

// daysParam reads ?days=N. A missing value yields 0, the configured default.
// Windows longer than analytics.MaxWindowDays are rejected rather than
// shortened, so a report always covers exactly the requested days.
func daysParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 || days > analytics.MaxWindowDays {
		return 0, ErrInvalidDays
	}
	return days, nil
}

func principalFrom(r *http.Request) (models.Principal, error) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		return models.Principal{}, ErrNoPrincipal
	}
	return principal, nil
}

func visitFrom(r *http.Request) models.Visit {
	return models.Visit{
		UserAgent: r.UserAgent(),
		Source:    r.URL.Query().Get("src"),
		Referer:   r.Referer(),
		Returning: r.Header.Get(returningVisitorHeader) != "",
	}
}
