// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/tapcard/internal/utils"
	"github.com/MKhiriev/tapcard/models"
)

func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}

	cards, err := h.services.CardService.ListCards(r.Context(), principal)
	if err != nil {
		writeError(w, r, err, "error listing cards")
		return
	}

	utils.WriteJSON(w, cards, http.StatusOK)
}

func (h *Handler) registerCard(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}

	var card models.Card
	if err = decodeJSON(w, r, &card); err != nil {
		writeError(w, r, err, "invalid card body")
		return
	}

	created, err := h.services.CardService.RegisterCard(r.Context(), principal, card)
	if err != nil {
		writeError(w, r, err, "error registering card")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) assignCard(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err, "invalid card id")
		return
	}

	var request models.AssignCardRequest
	if err = decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err, "invalid assignment body")
		return
	}

	card, err := h.services.CardService.AssignCard(r.Context(), principal, id, request)
	if err != nil {
		writeError(w, r, err, "error assigning card")
		return
	}

	utils.WriteJSON(w, card, http.StatusOK)
}

func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		writeError(w, r, err, "no principal")
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err, "invalid card id")
		return
	}

	if err = h.services.CardService.DeleteCard(r.Context(), principal, id); err != nil {
		writeError(w, r, err, "error deleting card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
