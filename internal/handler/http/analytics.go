// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/tapcard/internal/utils"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}
	days, err := daysParam(r)
	if err != nil {
		writeError(w, r, err, "invalid window")
		return
	}

	report, err := h.services.AnalyticsService.Dashboard(r.Context(), principal, days)
	if err != nil {
		writeError(w, r, err, "error building dashboard")
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) profileAnalytics(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err, "invalid profile id")
		return
	}
	days, err := daysParam(r)
	if err != nil {
		writeError(w, r, err, "invalid window")
		return
	}

	report, err := h.services.AnalyticsService.ProfileReport(r.Context(), principal, id, days)
	if err != nil {
		writeError(w, r, err, "error building profile report")
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}
