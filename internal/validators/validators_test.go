// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/tapcard/models"
	"github.com/stretchr/testify/assert"
)

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:            "owner@example.com",
		Password:         "correct-horse",
		Name:             "Ada Owner",
		OrganizationName: "Acme",
	}
}

func validProfile() models.Profile {
	return models.Profile{
		Slug:          "ada-lovelace",
		PersonalInfo:  models.PersonalInfo{FirstName: "Ada", LastName: "Lovelace"},
		ContactInfo:   models.ContactInfo{Email: "ada@example.com", Website: "https://ada.example"},
		SocialLinks:   []models.SocialLink{{ID: "gh", Platform: "github", URL: "https://github.com/ada"}},
		TemplateID:    1,
		Customization: models.Customization{PrimaryColor: "#112233", AccentColor: "#abc"},
		Sections:      models.DefaultSectionVisibility(),
	}
}

func TestAccountValidator_RegisterRequest(t *testing.T) {
	v := NewAccountValidator()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.RegisterRequest) {}},
		{name: "bad email", mutate: func(r *models.RegisterRequest) { r.Email = "not-an-email" }, wantErr: ErrInvalidEmail},
		{name: "display name email", mutate: func(r *models.RegisterRequest) { r.Email = "Ada <ada@example.com>" }, wantErr: ErrInvalidEmail},
		{name: "short password", mutate: func(r *models.RegisterRequest) { r.Password = "short" }, wantErr: ErrPasswordTooShort},
		{name: "blank name", mutate: func(r *models.RegisterRequest) { r.Name = "  " }, wantErr: ErrEmptyName},
		{name: "no organization", mutate: func(r *models.RegisterRequest) { r.OrganizationName = "" }, wantErr: ErrEmptyOrganizationName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.Validate(context.Background(), &req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccountValidator_LoginFieldsOnly(t *testing.T) {
	v := NewAccountValidator()
	user := models.User{Email: "owner@example.com", Password: "correct-horse"}

	assert.NoError(t, v.Validate(context.Background(), user, FieldEmail, FieldPassword))
	assert.ErrorIs(t, v.Validate(context.Background(), user), ErrEmptyName)
}

func TestAccountValidator_MemberRole(t *testing.T) {
	v := NewAccountValidator()
	member := models.User{Email: "m@example.com", Password: "correct-horse", Name: "M", Role: models.RoleMember}

	assert.NoError(t, v.Validate(context.Background(), member))

	member.Role = models.RoleOwner
	assert.ErrorIs(t, v.Validate(context.Background(), member), ErrInvalidRole)

	member.Role = "superuser"
	assert.ErrorIs(t, v.Validate(context.Background(), member), ErrInvalidRole)
}

func TestAccountValidator_ChangePlan(t *testing.T) {
	v := NewAccountValidator()

	assert.NoError(t, v.Validate(context.Background(), models.ChangePlanRequest{Plan: models.PlanPro}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.ChangePlanRequest{Plan: "platinum"}), ErrInvalidPlan)
}

func TestValidators_UnsupportedTypeAndUnknownField(t *testing.T) {
	ctx := context.Background()

	assert.ErrorIs(t, NewAccountValidator().Validate(ctx, 42), ErrUnsupportedType)
	assert.ErrorIs(t, NewProfileValidator().Validate(ctx, "profile"), ErrUnsupportedType)
	assert.ErrorIs(t, NewCardValidator().Validate(ctx, models.Profile{}), ErrUnsupportedType)

	assert.ErrorIs(t, NewAccountValidator().Validate(ctx, validRegisterRequest(), "nickname"), ErrUnknownField)
	assert.ErrorIs(t, NewProfileValidator().Validate(ctx, validProfile(), "nickname"), ErrUnknownField)
	assert.ErrorIs(t, NewCardValidator().Validate(ctx, models.Card{}, "nickname"), ErrUnknownField)
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"abc", "ada-lovelace", "a1-b2-c3", "abc123", strings.Repeat("a", 64)}
	invalid := []string{"", "ab", "Ada", "ada_lovelace", "-ada", "ada-", "ada--lovelace", "ada lovelace", strings.Repeat("a", 65)}

	for _, s := range valid {
		assert.True(t, IsValidSlug(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidSlug(s), s)
	}
}

func TestProfileValidator_Profile(t *testing.T) {
	v := NewProfileValidator()

	tests := []struct {
		name    string
		mutate  func(p *models.Profile)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Profile) {}},
		{name: "bad slug", mutate: func(p *models.Profile) { p.Slug = "Ada!" }, wantErr: ErrInvalidSlug},
		{name: "no name", mutate: func(p *models.Profile) { p.PersonalInfo = models.PersonalInfo{} }, wantErr: ErrEmptyPersonalName},
		{name: "only last name", mutate: func(p *models.Profile) { p.PersonalInfo = models.PersonalInfo{LastName: "Lovelace"} }},
		{name: "relative avatar", mutate: func(p *models.Profile) { p.PersonalInfo.AvatarURL = "/img.png" }, wantErr: ErrInvalidURL},
		{name: "no template", mutate: func(p *models.Profile) { p.TemplateID = 0 }, wantErr: ErrInvalidTemplateID},
		{name: "bad color", mutate: func(p *models.Profile) { p.Customization.TextColor = "red" }, wantErr: ErrInvalidColor},
		{name: "bad contact email", mutate: func(p *models.Profile) { p.ContactInfo.Email = "nope" }, wantErr: ErrInvalidEmail},
		{name: "ftp website", mutate: func(p *models.Profile) { p.ContactInfo.Website = "ftp://ada.example" }, wantErr: ErrInvalidURL},
		{name: "social link without id", mutate: func(p *models.Profile) { p.SocialLinks[0].ID = "" }, wantErr: ErrInvalidSocialLink},
		{name: "duplicate social link", mutate: func(p *models.Profile) { p.SocialLinks = append(p.SocialLinks, p.SocialLinks[0]) }, wantErr: ErrDuplicateSocialLinkID},
		{name: "unknown section", mutate: func(p *models.Profile) { p.Sections["footer"] = true }, wantErr: ErrUnknownSection},
		{name: "rating out of range", mutate: func(p *models.Profile) { p.Testimonials = []models.Testimonial{{Author: "x", Rating: 6}} }, wantErr: ErrInvalidTestimonialScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			err := v.Validate(context.Background(), &p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProfileValidator_EventRequest(t *testing.T) {
	v := NewProfileValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.EventRequest{Type: models.EventLinkClick, LinkID: "gh"}))
	assert.NoError(t, v.Validate(ctx, models.EventRequest{Type: models.EventDownload}))
	assert.NoError(t, v.Validate(ctx, models.EventRequest{Type: models.EventShare}))

	assert.ErrorIs(t, v.Validate(ctx, models.EventRequest{Type: models.EventSocialClick}), ErrMissingLinkID)
	assert.ErrorIs(t, v.Validate(ctx, models.EventRequest{Type: models.EventView}), ErrInvalidEventType)
	assert.ErrorIs(t, v.Validate(ctx, models.EventRequest{Type: models.EventTap}), ErrInvalidEventType)
	assert.ErrorIs(t, v.Validate(ctx, models.EventRequest{Type: "hover"}), ErrInvalidEventType)
}

func TestCardValidator_Card(t *testing.T) {
	v := NewCardValidator()
	valid := models.Card{CardID: "04:A2:3B", SerialNumber: "SN-1", ChipType: models.ChipNTAG215}

	tests := []struct {
		name    string
		mutate  func(c *models.Card)
		wantErr error
	}{
		{name: "valid unassigned", mutate: func(*models.Card) {}},
		{name: "valid assigned", mutate: func(c *models.Card) { c.ProfileID = 3 }},
		{name: "no card id", mutate: func(c *models.Card) { c.CardID = " " }, wantErr: ErrEmptyCardID},
		{name: "no serial", mutate: func(c *models.Card) { c.SerialNumber = "" }, wantErr: ErrEmptySerialNumber},
		{name: "bad chip", mutate: func(c *models.Card) { c.ChipType = "NTAG424" }, wantErr: ErrInvalidChipType},
		{name: "negative profile", mutate: func(c *models.Card) { c.ProfileID = -1 }, wantErr: ErrInvalidProfileID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)

			err := v.Validate(context.Background(), c)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCardValidator_AssignRequest(t *testing.T) {
	v := NewCardValidator()

	assert.NoError(t, v.Validate(context.Background(), &models.AssignCardRequest{ProfileID: 1}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.AssignCardRequest{}), ErrInvalidProfileID)
}
