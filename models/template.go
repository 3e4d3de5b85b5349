// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SectionDescriptor describes one block of a template layout.
type SectionDescriptor struct {
	ID     string         `json:"id"`
	Type   SectionType    `json:"type"`
	Order  int            `json:"order"`
	Config map[string]any `json:"config,omitempty"`
}

// TemplateStructure is the layout of a template.
type TemplateStructure struct {
	Layout   string              `json:"layout"`
	Sections []SectionDescriptor `json:"sections"`
}

// TemplateColors are the template's default palette.
type TemplateColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// TemplateFonts are the template's default typefaces.
type TemplateFonts struct {
	Body    string `json:"body"`
	Heading string `json:"heading"`
}

// Template is a reusable profile design.
type Template struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Category      string            `json:"category"`
	Structure     TemplateStructure `json:"structure"`
	DefaultColors TemplateColors    `json:"defaultColors"`
	DefaultFonts  TemplateFonts     `json:"defaultFonts"`
	IsPremium     bool              `json:"isPremium"`
	IsActive      bool              `json:"isActive"`
	UsageCount    int64             `json:"usageCount"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// TemplateFilter narrows template listings.
type TemplateFilter struct {
	// Premium, when set, keeps only premium (true) or free (false) templates.
	Premium *bool
}
