// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/MKhiriev/tapcard/models"
)

const (
	FieldSlug          = "slug"
	FieldPersonalInfo  = "personal_info"
	FieldTemplateID    = "template_id"
	FieldCustomization = "customization"
	FieldContactInfo   = "contact_info"
	FieldSocialLinks   = "social_links"
	FieldSections      = "sections"
	FieldTestimonials  = "testimonials"
	FieldEventType     = "event_type"
	FieldLinkID        = "link_id"
)

const (
	minSlugLength = 3
	maxSlugLength = 64
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ProfileValidator validates profiles and public analytics events.
//
// Profile field set for create is every field; updates pass the subset they
// touch. Fields left empty in optional groups (colors, website) are valid.
type ProfileValidator struct{}

func NewProfileValidator() Validator {
	return &ProfileValidator{}
}

// IsValidSlug reports whether s can be used as a public profile slug.
func IsValidSlug(s string) bool {
	return len(s) >= minSlugLength && len(s) <= maxSlugLength && slugPattern.MatchString(s)
}

func (v *ProfileValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Profile:
		return v.validateProfile(value, fields...)
	case *models.Profile:
		return v.validateProfile(*value, fields...)

	case models.EventRequest:
		return v.validateEventRequest(value, fields...)
	case *models.EventRequest:
		return v.validateEventRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ProfileValidator) validateProfile(profile models.Profile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSlug, FieldPersonalInfo, FieldTemplateID, FieldCustomization, FieldContactInfo, FieldSocialLinks, FieldSections, FieldTestimonials}
	}

	for _, f := range fields {
		switch f {
		case FieldSlug:
			if !IsValidSlug(profile.Slug) {
				return ErrInvalidSlug
			}
		case FieldPersonalInfo:
			if strings.TrimSpace(profile.PersonalInfo.FirstName) == "" && strings.TrimSpace(profile.PersonalInfo.LastName) == "" {
				return ErrEmptyPersonalName
			}
			if !isOptionalURL(profile.PersonalInfo.AvatarURL) {
				return ErrInvalidURL
			}
		case FieldTemplateID:
			if profile.TemplateID <= 0 {
				return ErrInvalidTemplateID
			}
		case FieldCustomization:
			if err := validateCustomization(profile.Customization); err != nil {
				return err
			}
		case FieldContactInfo:
			if profile.ContactInfo.Email != "" && !isEmail(profile.ContactInfo.Email) {
				return ErrInvalidEmail
			}
			if !isOptionalURL(profile.ContactInfo.Website) {
				return ErrInvalidURL
			}
		case FieldSocialLinks:
			if err := validateSocialLinks(profile.SocialLinks); err != nil {
				return err
			}
		case FieldSections:
			for section := range profile.Sections {
				if !section.IsOptional() {
					return ErrUnknownSection
				}
			}
		case FieldTestimonials:
			for _, t := range profile.Testimonials {
				if t.Rating != 0 && (t.Rating < 1 || t.Rating > 5) {
					return ErrInvalidTestimonialScore
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ProfileValidator) validateEventRequest(request models.EventRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEventType, FieldLinkID}
	}

	for _, f := range fields {
		switch f {
		case FieldEventType:
			// views and taps are recorded by the server, never reported by visitors
			switch request.Type {
			case models.EventLinkClick, models.EventSocialClick, models.EventDownload, models.EventShare:
			default:
				return ErrInvalidEventType
			}
		case FieldLinkID:
			if (request.Type == models.EventLinkClick || request.Type == models.EventSocialClick) && request.LinkID == "" {
				return ErrMissingLinkID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateCustomization(c models.Customization) error {
	for _, color := range []string{c.PrimaryColor, c.SecondaryColor, c.AccentColor, c.BackgroundColor, c.TextColor} {
		if color != "" && !colorPattern.MatchString(color) {
			return ErrInvalidColor
		}
	}
	return nil
}

func validateSocialLinks(links []models.SocialLink) error {
	seen := make(map[string]struct{}, len(links))
	for _, link := range links {
		if link.ID == "" || link.Platform == "" || link.URL == "" {
			return ErrInvalidSocialLink
		}
		if !isOptionalURL(link.URL) {
			return ErrInvalidURL
		}
		if _, ok := seen[link.ID]; ok {
			return ErrDuplicateSocialLinkID
		}
		seen[link.ID] = struct{}{}
	}
	return nil
}

func isOptionalURL(s string) bool {
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
