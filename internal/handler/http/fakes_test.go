// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/tapcard/internal/analytics"
	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/ratelimit"
	"github.com/MKhiriev/tapcard/internal/rendering"
	"github.com/MKhiriev/tapcard/internal/service"
	"github.com/MKhiriev/tapcard/models"
)

var errNotStubbed = errors.New("not stubbed")

// ── auth ──────────────────────────────────────────────────────────────────────

type fakeAuthService struct {
	registerFn    func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFn       func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (f *fakeAuthService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	if f.registerFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.registerFn(ctx, request)
}

func (f *fakeAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	if f.loginFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.loginFn(ctx, user)
}

func (f *fakeAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if f.createTokenFn == nil {
		return models.Token{}, errNotStubbed
	}
	return f.createTokenFn(ctx, user)
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if f.parseTokenFn == nil {
		return models.Token{}, errNotStubbed
	}
	return f.parseTokenFn(ctx, tokenString)
}

// ── organization ──────────────────────────────────────────────────────────────

type fakeOrganizationService struct {
	getOverviewFn    func(ctx context.Context, principal models.Principal) (service.OrganizationOverview, error)
	changePlanFn     func(ctx context.Context, principal models.Principal, request models.ChangePlanRequest) (service.OrganizationOverview, error)
	addMemberFn      func(ctx context.Context, principal models.Principal, member models.User) (models.User, error)
	listMembersFn    func(ctx context.Context, principal models.Principal) ([]models.User, error)
	reconcileUsageFn func(ctx context.Context) (int64, error)
}

func (f *fakeOrganizationService) GetOverview(ctx context.Context, principal models.Principal) (service.OrganizationOverview, error) {
	if f.getOverviewFn == nil {
		return service.OrganizationOverview{}, errNotStubbed
	}
	return f.getOverviewFn(ctx, principal)
}

func (f *fakeOrganizationService) ChangePlan(ctx context.Context, principal models.Principal, request models.ChangePlanRequest) (service.OrganizationOverview, error) {
	if f.changePlanFn == nil {
		return service.OrganizationOverview{}, errNotStubbed
	}
	return f.changePlanFn(ctx, principal, request)
}

func (f *fakeOrganizationService) AddMember(ctx context.Context, principal models.Principal, member models.User) (models.User, error) {
	if f.addMemberFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.addMemberFn(ctx, principal, member)
}

func (f *fakeOrganizationService) ListMembers(ctx context.Context, principal models.Principal) ([]models.User, error) {
	if f.listMembersFn == nil {
		return nil, errNotStubbed
	}
	return f.listMembersFn(ctx, principal)
}

func (f *fakeOrganizationService) ReconcileUsage(ctx context.Context) (int64, error) {
	if f.reconcileUsageFn == nil {
		return 0, errNotStubbed
	}
	return f.reconcileUsageFn(ctx)
}

// ── profile ───────────────────────────────────────────────────────────────────

type fakeProfileService struct {
	createFn func(ctx context.Context, principal models.Principal, profile models.Profile) (models.Profile, error)
	getFn    func(ctx context.Context, principal models.Principal, profileID int64) (models.Profile, error)
	listFn   func(ctx context.Context, principal models.Principal) ([]models.Profile, error)
	updateFn func(ctx context.Context, principal models.Principal, profileID int64, update models.ProfileUpdate) (models.Profile, error)
	deleteFn func(ctx context.Context, principal models.Principal, profileID int64) error
	viewFn   func(ctx context.Context, slug string, visit models.Visit) (rendering.EffectiveView, error)
	recordFn func(ctx context.Context, slug string, request models.EventRequest, visit models.Visit) error
}

func (f *fakeProfileService) CreateProfile(ctx context.Context, principal models.Principal, profile models.Profile) (models.Profile, error) {
	if f.createFn == nil {
		return models.Profile{}, errNotStubbed
	}
	return f.createFn(ctx, principal, profile)
}

func (f *fakeProfileService) GetProfile(ctx context.Context, principal models.Principal, profileID int64) (models.Profile, error) {
	if f.getFn == nil {
		return models.Profile{}, errNotStubbed
	}
	return f.getFn(ctx, principal, profileID)
}

func (f *fakeProfileService) ListProfiles(ctx context.Context, principal models.Principal) ([]models.Profile, error) {
	if f.listFn == nil {
		return nil, errNotStubbed
	}
	return f.listFn(ctx, principal)
}

func (f *fakeProfileService) UpdateProfile(ctx context.Context, principal models.Principal, profileID int64, update models.ProfileUpdate) (models.Profile, error) {
	if f.updateFn == nil {
		return models.Profile{}, errNotStubbed
	}
	return f.updateFn(ctx, principal, profileID, update)
}

func (f *fakeProfileService) DeleteProfile(ctx context.Context, principal models.Principal, profileID int64) error {
	if f.deleteFn == nil {
		return errNotStubbed
	}
	return f.deleteFn(ctx, principal, profileID)
}

func (f *fakeProfileService) ViewPublicProfile(ctx context.Context, slug string, visit models.Visit) (rendering.EffectiveView, error) {
	if f.viewFn == nil {
		return rendering.EffectiveView{}, errNotStubbed
	}
	return f.viewFn(ctx, slug, visit)
}

func (f *fakeProfileService) RecordPublicEvent(ctx context.Context, slug string, request models.EventRequest, visit models.Visit) error {
	if f.recordFn == nil {
		return errNotStubbed
	}
	return f.recordFn(ctx, slug, request, visit)
}

// ── template ──────────────────────────────────────────────────────────────────

type fakeTemplateService struct {
	listFn func(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error)
	getFn  func(ctx context.Context, slug string) (models.Template, error)
}

func (f *fakeTemplateService) ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error) {
	if f.listFn == nil {
		return nil, errNotStubbed
	}
	return f.listFn(ctx, filter)
}

func (f *fakeTemplateService) GetTemplate(ctx context.Context, slug string) (models.Template, error) {
	if f.getFn == nil {
		return models.Template{}, errNotStubbed
	}
	return f.getFn(ctx, slug)
}

// ── card ──────────────────────────────────────────────────────────────────────

type fakeCardService struct {
	registerFn func(ctx context.Context, principal models.Principal, card models.Card) (models.Card, error)
	listFn     func(ctx context.Context, principal models.Principal) ([]models.Card, error)
	assignFn   func(ctx context.Context, principal models.Principal, id int64, request models.AssignCardRequest) (models.Card, error)
	deleteFn   func(ctx context.Context, principal models.Principal, id int64) error
	tapFn      func(ctx context.Context, cardID string, visit models.Visit) (models.TapResult, error)
}

func (f *fakeCardService) RegisterCard(ctx context.Context, principal models.Principal, card models.Card) (models.Card, error) {
	if f.registerFn == nil {
		return models.Card{}, errNotStubbed
	}
	return f.registerFn(ctx, principal, card)
}

func (f *fakeCardService) ListCards(ctx context.Context, principal models.Principal) ([]models.Card, error) {
	if f.listFn == nil {
		return nil, errNotStubbed
	}
	return f.listFn(ctx, principal)
}

func (f *fakeCardService) AssignCard(ctx context.Context, principal models.Principal, id int64, request models.AssignCardRequest) (models.Card, error) {
	if f.assignFn == nil {
		return models.Card{}, errNotStubbed
	}
	return f.assignFn(ctx, principal, id, request)
}

func (f *fakeCardService) DeleteCard(ctx context.Context, principal models.Principal, id int64) error {
	if f.deleteFn == nil {
		return errNotStubbed
	}
	return f.deleteFn(ctx, principal, id)
}

func (f *fakeCardService) Tap(ctx context.Context, cardID string, visit models.Visit) (models.TapResult, error) {
	if f.tapFn == nil {
		return models.TapResult{}, errNotStubbed
	}
	return f.tapFn(ctx, cardID, visit)
}

// ── analytics ─────────────────────────────────────────────────────────────────

type fakeAnalyticsService struct {
	dashboardFn func(ctx context.Context, principal models.Principal, days int) (analytics.Report, error)
	profileFn   func(ctx context.Context, principal models.Principal, profileID int64, days int) (analytics.Report, error)
}

func (f *fakeAnalyticsService) Dashboard(ctx context.Context, principal models.Principal, days int) (analytics.Report, error) {
	if f.dashboardFn == nil {
		return analytics.Report{}, errNotStubbed
	}
	return f.dashboardFn(ctx, principal, days)
}

func (f *fakeAnalyticsService) ProfileReport(ctx context.Context, principal models.Principal, profileID int64, days int) (analytics.Report, error) {
	if f.profileFn == nil {
		return analytics.Report{}, errNotStubbed
	}
	return f.profileFn(ctx, principal, profileID, days)
}

// ── app info ──────────────────────────────────────────────────────────────────

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

// ── limiter ───────────────────────────────────────────────────────────────────

type fakeLimiter struct {
	result ratelimit.Result
	err    error
	keys   []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (ratelimit.Result, error) {
	f.keys = append(f.keys, key)
	return f.result, f.err
}

// ── helpers ───────────────────────────────────────────────────────────────────

const validToken = "valid-token"

var testPrincipal = models.Principal{UserID: 7, OrganizationID: 3, Role: models.RoleOwner}

// testServices returns a service set whose AuthService accepts validToken
// as testPrincipal. Every other service is an empty fake.
func testServices() *service.Services {
	return &service.Services{
		AuthService: &fakeAuthService{
			parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
				if tokenString != validToken {
					return models.Token{}, service.ErrTokenIsExpiredOrInvalid
				}
				return models.Token{
					SignedString:   tokenString,
					UserID:         testPrincipal.UserID,
					OrganizationID: testPrincipal.OrganizationID,
					Role:           testPrincipal.Role,
				}, nil
			},
		},
		OrganizationService: &fakeOrganizationService{},
		ProfileService:      &fakeProfileService{},
		TemplateService:     &fakeTemplateService{},
		CardService:         &fakeCardService{},
		AnalyticsService:    &fakeAnalyticsService{},
		AppInfoService:      &fakeAppInfoService{version: "test"},
	}
}

func newTestHandler(services *service.Services, limiter ratelimit.Limiter) *Handler {
	return NewHandler(services, config.Server{}, limiter, logger.Nop())
}

// serve runs the request through the full router.
func serve(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+validToken)
	return req
}
