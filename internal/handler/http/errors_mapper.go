// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/entitlement"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/service"
	"github.com/MKhiriev/tapcard/internal/store"
	"github.com/MKhiriev/tapcard/internal/utils"
	"github.com/MKhiriev/tapcard/models"
)

const codeLimitExceeded = "limit_exceeded"

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrInvalidPathParam:           http.StatusBadRequest,
	ErrInvalidDays:                http.StatusBadRequest,
	ErrNoPrincipal:                http.StatusUnauthorized,
	ErrRouteNotFound:              http.StatusNotFound,
	ErrTooManyRequests:            http.StatusTooManyRequests,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrSlugImmutable:           http.StatusConflict,
	service.ErrTemplateUnavailable:     http.StatusUnprocessableEntity,
	service.ErrProfileInactive:         http.StatusNotFound,

	store.ErrEmailAlreadyExists:     http.StatusConflict,
	store.ErrOrganizationSlugExists: http.StatusConflict,
	store.ErrSlugAlreadyExists:      http.StatusConflict,
	store.ErrCardAlreadyRegistered:  http.StatusConflict,
	store.ErrCardWriteProtected:     http.StatusConflict,
	store.ErrNoUserWasFound:         http.StatusNotFound,
	store.ErrOrganizationNotFound:   http.StatusNotFound,
	store.ErrProfileNotFound:        http.StatusNotFound,
	store.ErrTemplateNotFound:       http.StatusNotFound,
	store.ErrCardNotFound:           http.StatusNotFound,
	store.ErrCardNotAssigned:        http.StatusNotFound,
	store.ErrInvalidProfileTemplate: http.StatusUnprocessableEntity,

	analytics.ErrEventSourceUnavailable: http.StatusServiceUnavailable,
}

var statusCodes = map[int]string{
	http.StatusBadRequest:          "invalid_request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusPaymentRequired:     codeLimitExceeded,
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not_found",
	http.StatusConflict:            "conflict",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "rate_limited",
	http.StatusServiceUnavailable:  "unavailable",
}

// errorResponse is the JSON body of every failed request. Kind, Limit and
// Used are only set for limit violations.
type errorResponse struct {
	Error string              `json:"error"`
	Code  string              `json:"code"`
	Kind  models.ResourceKind `json:"kind,omitempty"`
	Limit *models.Limit       `json:"limit,omitempty"`
	Used  *int64              `json:"used,omitempty"`
}

func statusFromError(err error) int {
	if errors.Is(err, entitlement.ErrLimitExceeded) {
		return http.StatusPaymentRequired
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func newErrorResponse(err error) (errorResponse, int) {
	status := statusFromError(err)

	code, ok := statusCodes[status]
	if !ok {
		code = "internal_error"
	}

	resp := errorResponse{Error: err.Error(), Code: code}
	if status >= http.StatusInternalServerError {
		// internal details stay in the log
		resp.Error = http.StatusText(status)
	}

	var limitErr *entitlement.LimitExceededError
	if errors.As(err, &limitErr) {
		limit, used := limitErr.Limit, limitErr.Usage
		resp.Kind = limitErr.Kind
		resp.Limit = &limit
		resp.Used = &used
	}

	return resp, status
}

// writeError logs err and answers with its mapped status and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	resp, status := newErrorResponse(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Info().Err(err).Int("status", status).Msg(msg)
	}

	utils.WriteJSON(w, resp, status)
}
