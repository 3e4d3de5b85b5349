// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/tapcard/internal/utils"
	"github.com/MKhiriev/tapcard/models"
)

func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}

	profiles, err := h.services.ProfileService.ListProfiles(r.Context(), principal)
	if err != nil {
		writeError(w, r, err, "error listing profiles")
		return
	}

	utils.WriteJSON(w, profiles, http.StatusOK)
}

func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}

	var profile models.Profile
	if err = decodeJSON(w, r, &profile); err != nil {
		writeError(w, r, err, "invalid profile body")
		return
	}

	created, err := h.services.ProfileService.CreateProfile(r.Context(), principal, profile)
	if err != nil {
		writeError(w, r, err, "error creating profile")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
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

	profile, err := h.services.ProfileService.GetProfile(r.Context(), principal, id)
	if err != nil {
		writeError(w, r, err, "error getting profile")
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
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

	var update models.ProfileUpdate
	if err = decodeJSON(w, r, &update); err != nil {
		writeError(w, r, err, "invalid profile body")
		return
	}

	updated, err := h.services.ProfileService.UpdateProfile(r.Context(), principal, id, update)
	if err != nil {
		writeError(w, r, err, "error updating profile")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
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

	if err = h.services.ProfileService.DeleteProfile(r.Context(), principal, id); err != nil {
		writeError(w, r, err, "error deleting profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
