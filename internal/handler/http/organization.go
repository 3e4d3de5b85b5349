// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/tapcard/internal/utils"
	"github.com/MKhiriev/tapcard/models"
)

func (h *Handler) getOrganization(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}

	overview, err := h.services.OrganizationService.GetOverview(r.Context(), principal)
	if err != nil {
		writeError(w, r, err, "error getting organization")
		return
	}

	utils.WriteJSON(w, overview, http.StatusOK)
}

func (h *Handler) changePlan(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}

	var request models.ChangePlanRequest
	if err = decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err, "invalid plan change body")
		return
	}

	overview, err := h.services.OrganizationService.ChangePlan(r.Context(), principal, request)
	if err != nil {
		writeError(w, r, err, "error changing plan")
		return
	}

	utils.WriteJSON(w, overview, http.StatusOK)
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}

	members, err := h.services.OrganizationService.ListMembers(r.Context(), principal)
	if err != nil {
		writeError(w, r, err, "error listing members")
		return
	}

	utils.WriteJSON(w, members, http.StatusOK)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}

	var member models.User
	if err = decodeJSON(w, r, &member); err != nil {
		writeError(w, r, err, "invalid member body")
		return
	}

	created, err := h.services.OrganizationService.AddMember(r.Context(), principal, member)
	if err != nil {
		writeError(w, r, err, "error adding member")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}
