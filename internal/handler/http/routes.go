// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withRealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader, returningVisitorHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Get("/api/version/", h.getServerVersion)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// anonymous visitor traffic
	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)

		r.Get("/api/public/profiles/{slug}", h.viewPublicProfile)
		r.Post("/api/public/profiles/{slug}/events", h.recordPublicEvent)
		r.Get("/api/public/cards/{cardId}/tap", h.tap)

		r.Get("/api/templates", h.listTemplates)
		r.Get("/api/templates/{slug}", h.getTemplate)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/organization", h.getOrganization)
		r.Put("/api/organization/plan", h.changePlan)
		r.Get("/api/organization/members", h.listMembers)
		r.Post("/api/organization/members", h.addMember)

		r.Get("/api/profiles", h.listProfiles)
		r.Post("/api/profiles", h.createProfile)
		r.Get("/api/profiles/{id}", h.getProfile)
		r.Put("/api/profiles/{id}", h.updateProfile)
		r.Delete("/api/profiles/{id}", h.deleteProfile)

		r.Get("/api/cards", h.listCards)
		r.Post("/api/cards", h.registerCard)
		r.Put("/api/cards/{id}/profile", h.assignCard)
		r.Delete("/api/cards/{id}", h.deleteCard)

		r.Get("/api/analytics/dashboard", h.dashboard)
		r.Get("/api/analytics/profiles/{id}", h.profileAnalytics)
	})

	router.NotFound(h.notFound)
	// unsupported methods are reported as 404 so that route existence is not leaked
	router.MethodNotAllowed(h.notFound)

	return router
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, ErrRouteNotFound, "route not found")
}
