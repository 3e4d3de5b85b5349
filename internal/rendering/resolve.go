// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rendering

import (
	"cmp"
	"slices"
	"strings"

	"dario.cat/mergo"
	"github.com/MKhiriev/tapcard/models"
)

const fallbackTemplateSlug = "default"

// mergeTheme copies the non-empty fields of src over dst.
var mergeTheme = func(dst *Theme, src Theme) error {
	return mergo.Merge(dst, src, mergo.WithOverride)
}

// DefaultTemplate is the built-in layout used when a profile's template is
// missing: a header followed by contact details.
func DefaultTemplate() *models.Template {
	return &models.Template{
		Name:     "Default",
		Slug:     fallbackTemplateSlug,
		Category: "basic",
		Structure: models.TemplateStructure{
			Layout: "single-column",
			Sections: []models.SectionDescriptor{
				{ID: "header", Type: models.SectionHeader, Order: 0},
				{ID: "contact", Type: models.SectionContact, Order: 1},
			},
		},
		DefaultColors: models.TemplateColors{
			Primary:    "#1f2937",
			Secondary:  "#4b5563",
			Accent:     "#2563eb",
			Background: "#ffffff",
			Text:       "#111827",
		},
		DefaultFonts: models.TemplateFonts{
			Body:    "Inter",
			Heading: "Inter",
		},
		IsActive: true,
	}
}

// Resolve merges template defaults with the profile's overrides and emits the
// visible sections in template order. A nil template falls back to
// [DefaultTemplate]. Neither argument is modified.
func Resolve(template *models.Template, profile models.Profile) EffectiveView {
	fallback := template == nil
	if fallback {
		template = DefaultTemplate()
	}

	return EffectiveView{
		ProfileID:    profile.ID,
		Slug:         profile.Slug,
		TemplateSlug: template.Slug,
		Layout:       template.Structure.Layout,
		Theme:        ResolveTheme(*template, profile.Customization),
		Sections:     resolveSections(template.Structure.Sections, profile),
		Fallback:     fallback,
	}
}

// ResolveTheme overlays the non-blank customization fields on the template
// defaults.
func ResolveTheme(template models.Template, c models.Customization) Theme {
	theme := Theme{
		PrimaryColor:    template.DefaultColors.Primary,
		SecondaryColor:  template.DefaultColors.Secondary,
		AccentColor:     template.DefaultColors.Accent,
		BackgroundColor: template.DefaultColors.Background,
		TextColor:       template.DefaultColors.Text,
		FontFamily:      template.DefaultFonts.Body,
		HeadingFont:     template.DefaultFonts.Heading,
	}

	overrides := Theme{
		PrimaryColor:    strings.TrimSpace(c.PrimaryColor),
		SecondaryColor:  strings.TrimSpace(c.SecondaryColor),
		AccentColor:     strings.TrimSpace(c.AccentColor),
		BackgroundColor: strings.TrimSpace(c.BackgroundColor),
		TextColor:       strings.TrimSpace(c.TextColor),
		FontFamily:      strings.TrimSpace(c.FontFamily),
		HeadingFont:     strings.TrimSpace(c.HeadingFont),
	}

	// only non-empty override fields replace defaults
	if err := mergeTheme(&theme, overrides); err != nil {
		// the page must still render, so apply the overrides field by field
		theme = overlayTheme(theme, overrides)
	}

	return theme
}

func overlayTheme(theme, overrides Theme) Theme {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&theme.PrimaryColor, overrides.PrimaryColor},
		{&theme.SecondaryColor, overrides.SecondaryColor},
		{&theme.AccentColor, overrides.AccentColor},
		{&theme.BackgroundColor, overrides.BackgroundColor},
		{&theme.TextColor, overrides.TextColor},
		{&theme.FontFamily, overrides.FontFamily},
		{&theme.HeadingFont, overrides.HeadingFont},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return theme
}

func resolveSections(descriptors []models.SectionDescriptor, profile models.Profile) []Section {
	ordered := slices.Clone(descriptors)
	slices.SortStableFunc(ordered, func(a, b models.SectionDescriptor) int {
		return cmp.Compare(a.Order, b.Order)
	})

	sections := make([]Section, 0, len(ordered))
	for _, d := range ordered {
		if !profile.Sections.Enabled(d.Type) {
			continue
		}
		sections = append(sections, buildSection(d, profile))
	}

	return sections
}

func buildSection(d models.SectionDescriptor, profile models.Profile) Section {
	s := Section{
		ID:     d.ID,
		Type:   d.Type,
		Order:  d.Order,
		Config: cloneConfig(d.Config),
	}

	switch d.Type {
	case models.SectionHeader, models.SectionAbout:
		personal := profile.PersonalInfo
		s.Personal = &personal
	case models.SectionContact:
		contact := profile.ContactInfo
		s.Contact = &contact
	case models.SectionSocial:
		s.SocialLinks = sortedByOrder(profile.SocialLinks, func(l models.SocialLink) int { return l.Order })
	case models.SectionHours:
		s.Hours = slices.Clone(profile.BusinessHours)
	case models.SectionGallery:
		s.Gallery = sortedByOrder(profile.Gallery, func(g models.GalleryItem) int { return g.Order })
	case models.SectionServices:
		s.Services = sortedByOrder(profile.Services, func(i models.ServiceItem) int { return i.Order })
	case models.SectionTestimonials:
		s.Testimonials = sortedByOrder(profile.Testimonials, func(t models.Testimonial) int { return t.Order })
	}

	return s
}

// cloneConfig deep copies a JSON-shaped section config so the view never
// shares maps or slices with the template.
func cloneConfig(config map[string]any) map[string]any {
	if config == nil {
		return nil
	}
	out := make(map[string]any, len(config))
	for k, v := range config {
		out[k] = cloneConfigValue(v)
	}
	return out
}

func cloneConfigValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneConfig(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneConfigValue(item)
		}
		return out
	default:
		return v
	}
}

func sortedByOrder[T any](items []T, order func(T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(order(a), order(b))
	})
	return out
}
