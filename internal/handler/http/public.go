// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/tapcard/internal/utils"
	"github.com/MKhiriev/tapcard/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) viewPublicProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.services.ProfileService.ViewPublicProfile(r.Context(), chi.URLParam(r, "slug"), visitFrom(r))
	if err != nil {
		writeError(w, r, err, "error viewing profile")
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) recordPublicEvent(w http.ResponseWriter, r *http.Request) {
	var request models.EventRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err, "invalid event body")
		return
	}

	err := h.services.ProfileService.RecordPublicEvent(r.Context(), chi.URLParam(r, "slug"), request, visitFrom(r))
	if err != nil {
		writeError(w, r, err, "error recording event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// tap answers a physical card tap with a redirect to the profile page.
func (h *Handler) tap(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.CardService.Tap(r.Context(), chi.URLParam(r, "cardId"), visitFrom(r))
	if err != nil {
		writeError(w, r, err, "error recording tap")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, result.RedirectURL, http.StatusFound)
}
