// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package rendering resolves a profile and its template into the view model
// the public page is drawn from.
package rendering

import "github.com/MKhiriev/tapcard/models"

// Theme is the effective palette and typography of a rendered profile.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
	HeadingFont     string `json:"headingFont"`
}

// Section is one emitted block. Only the content field matching Type is set.
type Section struct {
	ID     string             `json:"id"`
	Type   models.SectionType `json:"type"`
	Order  int                `json:"order"`
	Config map[string]any     `json:"config,omitempty"`

	Personal     *models.PersonalInfo   `json:"personal,omitempty"`
	Contact      *models.ContactInfo    `json:"contact,omitempty"`
	SocialLinks  []models.SocialLink    `json:"socialLinks,omitempty"`
	Hours        []models.BusinessHours `json:"hours,omitempty"`
	Gallery      []models.GalleryItem   `json:"gallery,omitempty"`
	Services     []models.ServiceItem   `json:"services,omitempty"`
	Testimonials []models.Testimonial   `json:"testimonials,omitempty"`
}

// EffectiveView is the fully resolved input of the public profile page.
type EffectiveView struct {
	ProfileID    int64     `json:"profileId"`
	Slug         string    `json:"slug"`
	TemplateSlug string    `json:"templateSlug"`
	Layout       string    `json:"layout"`
	Theme        Theme     `json:"theme"`
	Sections     []Section `json:"sections"`

	// Fallback is set when the profile's template could not be found and the
	// built-in layout was used instead.
	Fallback bool `json:"fallback,omitempty"`
}

// Has reports whether a section of type t was emitted.
func (v EffectiveView) Has(t models.SectionType) bool {
	for _, s := range v.Sections {
		if s.Type == t {
			return true
		}
	}
	return false
}
