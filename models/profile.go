// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SectionType identifies a structural block of a rendered profile.
type SectionType string

const (
	SectionHeader       SectionType = "header"
	SectionAbout        SectionType = "about"
	SectionContact      SectionType = "contact"
	SectionSocial       SectionType = "social"
	SectionHours        SectionType = "hours"
	SectionGallery      SectionType = "gallery"
	SectionServices     SectionType = "services"
	SectionTestimonials SectionType = "testimonials"
)

// OptionalSections are the blocks whose visibility is controlled per profile.
var OptionalSections = []SectionType{
	SectionContact,
	SectionSocial,
	SectionHours,
	SectionGallery,
	SectionServices,
	SectionTestimonials,
}

// IsOptional reports whether the section is gated by [SectionVisibility].
func (s SectionType) IsOptional() bool {
	for _, o := range OptionalSections {
		if s == o {
			return true
		}
	}
	return false
}

// SectionVisibility maps optional section types to whether they are shown.
// A missing key means the section is hidden.
type SectionVisibility map[SectionType]bool

// DefaultSectionVisibility enables every optional section.
func DefaultSectionVisibility() SectionVisibility {
	v := make(SectionVisibility, len(OptionalSections))
	for _, s := range OptionalSections {
		v[s] = true
	}
	return v
}

// Enabled reports whether section s may be emitted. Non-optional sections
// are always enabled.
func (v SectionVisibility) Enabled(s SectionType) bool {
	if !s.IsOptional() {
		return true
	}
	return v[s]
}

type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Address  string `json:"address,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

type SocialLink struct {
	// ID identifies the link in click analytics.
	ID       string `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Order    int    `json:"order"`
}

type BusinessHours struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

type GalleryItem struct {
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption,omitempty"`
	Order    int    `json:"order"`
}

type ServiceItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Order       int    `json:"order"`
}

type Testimonial struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Rating int    `json:"rating,omitempty"`
	Order  int    `json:"order"`
}

// Customization holds sparse per-profile overrides of template defaults.
// Empty fields fall through to the template.
type Customization struct {
	PrimaryColor    string `json:"primaryColor,omitempty"`
	SecondaryColor  string `json:"secondaryColor,omitempty"`
	AccentColor     string `json:"accentColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	HeadingFont     string `json:"headingFont,omitempty"`
}

// ProfileAnalytics is the counter bundle kept on every profile. All
// counters are monotonically non-decreasing.
type ProfileAnalytics struct {
	Views            int64            `json:"views"`
	UniqueViews      int64            `json:"uniqueViews"`
	CardTaps         int64            `json:"cardTaps"`
	ContactDownloads int64            `json:"contactDownloads"`
	LinkClicks       map[string]int64 `json:"linkClicks"`
}

// Profile is a public digital business card page.
type Profile struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"userId"`
	OrganizationID int64 `json:"organizationId"`

	// Slug is globally unique and immutable once created: it is printed on
	// physical cards and QR codes.
	Slug string `json:"slug"`

	PersonalInfo  PersonalInfo    `json:"personalInfo"`
	ContactInfo   ContactInfo     `json:"contactInfo"`
	SocialLinks   []SocialLink    `json:"socialLinks"`
	BusinessHours []BusinessHours `json:"businessHours,omitempty"`

	Gallery      []GalleryItem `json:"gallery,omitempty"`
	Services     []ServiceItem `json:"services,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`

	TemplateID    int64             `json:"templateId"`
	Customization Customization     `json:"customization"`
	Sections      SectionVisibility `json:"sections"`

	Analytics ProfileAnalytics `json:"analytics"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileRef is the minimal identity of a profile used to rank analytics.
type ProfileRef struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ref returns the ranking identity of the profile.
func (p Profile) Ref() ProfileRef {
	name := p.PersonalInfo.FirstName
	if p.PersonalInfo.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.PersonalInfo.LastName
	}
	if name == "" {
		name = p.Slug
	}

	return ProfileRef{
		ID:        p.ID,
		Slug:      p.Slug,
		Name:      name,
		CreatedAt: p.CreatedAt,
	}
}

// ProfileUpdate replaces the editable content of a profile. Slug may be
// repeated but never changed; a zero TemplateID, nil Sections and nil
// IsActive keep the stored values.
type ProfileUpdate struct {
	Slug string `json:"slug,omitempty"`

	PersonalInfo  PersonalInfo    `json:"personalInfo"`
	ContactInfo   ContactInfo     `json:"contactInfo"`
	SocialLinks   []SocialLink    `json:"socialLinks"`
	BusinessHours []BusinessHours `json:"businessHours,omitempty"`

	Gallery      []GalleryItem `json:"gallery,omitempty"`
	Services     []ServiceItem `json:"services,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`

	TemplateID    int64             `json:"templateId,omitempty"`
	Customization Customization     `json:"customization"`
	Sections      SectionVisibility `json:"sections,omitempty"`

	IsActive *bool `json:"isActive,omitempty"`
}

// Apply returns p with the update's content. Identity, counters and
// timestamps are left untouched.
func (u ProfileUpdate) Apply(p Profile) Profile {
	p.PersonalInfo = u.PersonalInfo
	p.ContactInfo = u.ContactInfo
	p.SocialLinks = u.SocialLinks
	p.BusinessHours = u.BusinessHours
	p.Gallery = u.Gallery
	p.Services = u.Services
	p.Testimonials = u.Testimonials
	p.Customization = u.Customization

	if u.TemplateID != 0 {
		p.TemplateID = u.TemplateID
	}
	if u.Sections != nil {
		p.Sections = u.Sections
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}

	return p
}
