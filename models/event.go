// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EventType is the kind of interaction recorded on a public profile.
type EventType string

const (
	EventView        EventType = "view"
	EventTap         EventType = "tap"
	EventLinkClick   EventType = "link_click"
	EventSocialClick EventType = "social_click"
	EventDownload    EventType = "download"
	EventShare       EventType = "share"
)

// IsValid reports whether t is a known event type.
func (t EventType) IsValid() bool {
	switch t {
	case EventView, EventTap, EventLinkClick, EventSocialClick, EventDownload, EventShare:
		return true
	}
	return false
}

// DeviceClass is the coarse device family derived from a user agent.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceDesktop DeviceClass = "desktop"
	DeviceTablet  DeviceClass = "tablet"
	DeviceUnknown DeviceClass = "unknown"
)

// Traffic sources recorded on events.
const (
	SourceDirect = "direct"
	SourceNFC    = "nfc"
	SourceQR     = "qr"
)

// Event is an immutable analytics record.
type Event struct {
	ID        int64     `json:"id"`
	Type      EventType `json:"type"`
	ProfileID int64     `json:"profileId"`
	Timestamp time.Time `json:"timestamp"`

	UserAgent   string      `json:"userAgent,omitempty"`
	DeviceClass DeviceClass `json:"deviceClass,omitempty"`
	Source      string      `json:"source,omitempty"`

	// LinkID is set for link and social clicks.
	LinkID string `json:"linkId,omitempty"`

	// Unique marks a first-time visitor view.
	Unique bool `json:"unique,omitempty"`
}

// EventRequest is the body posted by the public page for non-view events.
type EventRequest struct {
	Type   EventType `json:"type"`
	LinkID string    `json:"linkId,omitempty"`
	Source string    `json:"source,omitempty"`
}

// EventQuery selects events for aggregation.
type EventQuery struct {
	ProfileIDs []int64
	From       time.Time
	To         time.Time
}

// Visit describes the anonymous request behind a public event.
type Visit struct {
	UserAgent string
	// Source is the explicit ?src= marker, if any.
	Source  string
	Referer string
	// Returning is set when the visitor announced an earlier visit.
	Returning bool
}
