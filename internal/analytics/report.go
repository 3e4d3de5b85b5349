// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package analytics

import (
	"time"

	"github.com/MKhiriev/tapcard/models"
)

// PlaceholderProfileName labels the single performance entry emitted when
// there is nothing to rank yet.
const PlaceholderProfileName = "No profiles yet"

// Report is the aggregate returned to dashboards.
type Report struct {
	Window             WindowInfo           `json:"window"`
	ViewsTrend         []DayBucket          `json:"viewsTrend"`
	DeviceBreakdown    DeviceBreakdown      `json:"deviceBreakdown"`
	SourceBreakdown    []SourceShare        `json:"sourceBreakdown"`
	ProfilePerformance []ProfilePerformance `json:"profilePerformance"`
	EngagementMetrics  EngagementMetrics    `json:"engagementMetrics"`
	Totals             Totals               `json:"totals"`
}

// WindowInfo describes the trailing window a report covers. To is exclusive.
type WindowInfo struct {
	Days int       `json:"days"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DayBucket counts the views and taps of one calendar day.
type DayBucket struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
	Taps  int64  `json:"taps"`
}

// DeviceShare is the share of one device class among classified events.
type DeviceShare struct {
	Device     models.DeviceClass `json:"device"`
	Count      int64              `json:"count"`
	Percentage float64            `json:"percentage"`
}

// DeviceBreakdown splits events by device class. Unclassified events are
// part of Total but not of the percentage denominator.
type DeviceBreakdown struct {
	Devices      []DeviceShare `json:"devices"`
	Unclassified int64         `json:"unclassified"`
	Total        int64         `json:"total"`
}

// SourceShare counts events per traffic source.
type SourceShare struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// ProfilePerformance is one row of the profile ranking.
type ProfilePerformance struct {
	ProfileID   int64  `json:"profileId"`
	Slug        string `json:"slug,omitempty"`
	Name        string `json:"name"`
	Views       int64  `json:"views"`
	Taps        int64  `json:"taps"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// EngagementMetrics are percentages of total views, clamped to [0, 100] for
// display. Raw keeps the unclamped counts they were computed from.
type EngagementMetrics struct {
	ClickThroughRate float64        `json:"clickThroughRate"`
	ContactSaves     float64        `json:"contactSaves"`
	SocialClicks     float64        `json:"socialClicks"`
	QRScans          float64        `json:"qrScans"`
	Raw              EngagementRaws `json:"raw"`
}

// EngagementRaws are the event counts behind [EngagementMetrics].
type EngagementRaws struct {
	Views        int64 `json:"views"`
	LinkClicks   int64 `json:"linkClicks"`
	ContactSaves int64 `json:"contactSaves"`
	SocialClicks int64 `json:"socialClicks"`
	QRScans      int64 `json:"qrScans"`
}

// Totals counts every event type inside the window.
type Totals struct {
	Events       int64 `json:"events"`
	Views        int64 `json:"views"`
	UniqueViews  int64 `json:"uniqueViews"`
	Taps         int64 `json:"taps"`
	LinkClicks   int64 `json:"linkClicks"`
	SocialClicks int64 `json:"socialClicks"`
	Downloads    int64 `json:"downloads"`
	Shares       int64 `json:"shares"`
}
