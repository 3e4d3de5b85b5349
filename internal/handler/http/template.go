// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/tapcard/internal/utils"
	"github.com/MKhiriev/tapcard/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	var filter models.TemplateFilter
	if raw := r.URL.Query().Get("premium"); raw != "" {
		premium, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: premium", ErrInvalidPathParam), "invalid premium filter")
			return
		}
		filter.Premium = &premium
	}

	templates, err := h.services.TemplateService.ListTemplates(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "error listing templates")
		return
	}

	utils.WriteJSON(w, templates, http.StatusOK)
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := h.services.TemplateService.GetTemplate(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err, "error getting template")
		return
	}

	utils.WriteJSON(w, template, http.StatusOK)
}
