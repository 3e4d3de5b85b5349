// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/MKhiriev/tapcard/models"
)

const (
	// DefaultWindowDays is used when a caller asks for a non-positive window.
	DefaultWindowDays = 7
	// MaxWindowDays caps the trend length.
	MaxWindowDays = 365

	dayLayout = "2006-01-02"
)

// ErrEventSourceUnavailable wraps any failure to read events.
var ErrEventSourceUnavailable = errors.New("analytics event source unavailable")

// EventSource supplies the events an aggregate is computed from.
type EventSource interface {
	ListEvents(ctx context.Context, query models.EventQuery) ([]models.Event, error)
}

// Aggregator builds [Report]s. It is safe for concurrent use.
type Aggregator struct {
	location    *time.Location
	defaultDays int
	now         func() time.Time
}

// Option configures an [Aggregator].
type Option func(*Aggregator)

// WithLocation sets the time zone whose calendar days define trend buckets.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.location = loc
		}
	}
}

// WithDefaultWindow sets the window used when callers pass days <= 0.
func WithDefaultWindow(days int) Option {
	return func(a *Aggregator) {
		if days > 0 {
			a.defaultDays = min(days, MaxWindowDays)
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator returns an Aggregator bucketing by UTC days over a
// [DefaultWindowDays] window unless configured otherwise.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		location:    time.UTC,
		defaultDays: DefaultWindowDays,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Window returns the [from, to) range of the trailing window of days ending
// with the calendar day of end.
func (a *Aggregator) Window(days int, end time.Time) WindowInfo {
	days = a.normalizeDays(days)

	end = end.In(a.location)
	lastDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, a.location)

	return WindowInfo{
		Days: days,
		From: lastDay.AddDate(0, 0, -(days - 1)),
		To:   lastDay.AddDate(0, 0, 1),
	}
}

// Aggregate folds events into a report over the trailing window ending now.
// profiles must be given in creation order; they seed the ranking so that
// equal view counts keep that order.
func (a *Aggregator) Aggregate(events []models.Event, profiles []models.ProfileRef, days int) Report {
	return a.AggregateAt(events, profiles, days, a.now())
}

// AggregateAt is Aggregate with an explicit window end.
func (a *Aggregator) AggregateAt(events []models.Event, profiles []models.ProfileRef, days int, end time.Time) Report {
	window := a.Window(days, end)

	inWindow := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.Timestamp.Before(window.From) && e.Timestamp.Before(window.To) {
			inWindow = append(inWindow, e)
		}
	}

	return Report{
		Window:             window,
		ViewsTrend:         a.viewsTrend(inWindow, window),
		DeviceBreakdown:    deviceBreakdown(inWindow),
		SourceBreakdown:    sourceBreakdown(inWindow),
		ProfilePerformance: profilePerformance(inWindow, profiles),
		EngagementMetrics:  engagementMetrics(inWindow),
		Totals:             totals(inWindow),
	}
}

// AggregateFrom reads the window's events for profiles from source and
// aggregates them. A read failure is returned as a single error wrapping
// [ErrEventSourceUnavailable]; no partial report is produced.
func (a *Aggregator) AggregateFrom(ctx context.Context, source EventSource, profiles []models.ProfileRef, days int) (Report, error) {
	end := a.now()
	window := a.Window(days, end)

	ids := make([]int64, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	var events []models.Event
	if len(ids) > 0 {
		var err error
		events, err = source.ListEvents(ctx, models.EventQuery{
			ProfileIDs: ids,
			From:       window.From,
			To:         window.To,
		})
		if err != nil {
			return Report{}, fmt.Errorf("%w: %w", ErrEventSourceUnavailable, err)
		}
	}

	return a.AggregateAt(events, profiles, window.Days, end), nil
}

func (a *Aggregator) normalizeDays(days int) int {
	if days <= 0 {
		return a.defaultDays
	}
	return min(days, MaxWindowDays)
}

func (a *Aggregator) viewsTrend(events []models.Event, window WindowInfo) []DayBucket {
	buckets := make([]DayBucket, window.Days)
	index := make(map[string]int, window.Days)

	for i := range buckets {
		date := window.From.AddDate(0, 0, i).Format(dayLayout)
		buckets[i].Date = date
		index[date] = i
	}

	for _, e := range events {
		i, ok := index[e.Timestamp.In(a.location).Format(dayLayout)]
		if !ok {
			continue
		}
		switch e.Type {
		case models.EventView:
			buckets[i].Views++
		case models.EventTap:
			buckets[i].Taps++
		}
	}

	return buckets
}

func deviceBreakdown(events []models.Event) DeviceBreakdown {
	counts := map[models.DeviceClass]int64{}
	var unclassified int64

	for _, e := range events {
		device := deviceOf(e)
		if device == models.DeviceUnknown {
			unclassified++
			continue
		}
		counts[device]++
	}

	classified := int64(len(events)) - unclassified
	order := []models.DeviceClass{models.DeviceMobile, models.DeviceDesktop, models.DeviceTablet}

	devices := make([]DeviceShare, 0, len(order))
	for _, d := range order {
		devices = append(devices, DeviceShare{
			Device:     d,
			Count:      counts[d],
			Percentage: percentage(counts[d], classified),
		})
	}

	return DeviceBreakdown{
		Devices:      devices,
		Unclassified: unclassified,
		Total:        int64(len(events)),
	}
}

func sourceBreakdown(events []models.Event) []SourceShare {
	counts := map[string]int64{}
	for _, e := range events {
		source := e.Source
		if source == "" {
			source = models.SourceDirect
		}
		counts[source]++
	}

	shares := make([]SourceShare, 0, len(counts))
	for source, count := range counts {
		shares = append(shares, SourceShare{Source: source, Count: count})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Source < shares[j].Source
	})

	return shares
}

func profilePerformance(events []models.Event, profiles []models.ProfileRef) []ProfilePerformance {
	if len(events) == 0 {
		return []ProfilePerformance{{Name: PlaceholderProfileName, Placeholder: true}}
	}

	ordered := make([]models.ProfileRef, len(profiles))
	copy(ordered, profiles)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	rows := make([]ProfilePerformance, 0, len(ordered))
	position := make(map[int64]int, len(ordered))
	for _, p := range ordered {
		if _, seen := position[p.ID]; seen {
			continue
		}
		position[p.ID] = len(rows)
		rows = append(rows, ProfilePerformance{ProfileID: p.ID, Slug: p.Slug, Name: p.Name})
	}

	for _, e := range events {
		i, ok := position[e.ProfileID]
		if !ok {
			// events of profiles the caller did not list rank after the known ones
			i = len(rows)
			position[e.ProfileID] = i
			rows = append(rows, ProfilePerformance{ProfileID: e.ProfileID, Name: fmt.Sprintf("profile #%d", e.ProfileID)})
		}
		switch e.Type {
		case models.EventView:
			rows[i].Views++
		case models.EventTap:
			rows[i].Taps++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Views > rows[j].Views
	})

	return rows
}

func engagementMetrics(events []models.Event) EngagementMetrics {
	var raw EngagementRaws
	for _, e := range events {
		switch e.Type {
		case models.EventView:
			raw.Views++
			if e.Source == models.SourceQR {
				raw.QRScans++
			}
		case models.EventLinkClick:
			raw.LinkClicks++
		case models.EventSocialClick:
			raw.SocialClicks++
		case models.EventDownload:
			raw.ContactSaves++
		}
	}

	return EngagementMetrics{
		ClickThroughRate: clampPercentage(percentage(raw.LinkClicks, raw.Views)),
		ContactSaves:     clampPercentage(percentage(raw.ContactSaves, raw.Views)),
		SocialClicks:     clampPercentage(percentage(raw.SocialClicks, raw.Views)),
		QRScans:          clampPercentage(percentage(raw.QRScans, raw.Views)),
		Raw:              raw,
	}
}

func totals(events []models.Event) Totals {
	t := Totals{Events: int64(len(events))}
	for _, e := range events {
		switch e.Type {
		case models.EventView:
			t.Views++
			if e.Unique {
				t.UniqueViews++
			}
		case models.EventTap:
			t.Taps++
		case models.EventLinkClick:
			t.LinkClicks++
		case models.EventSocialClick:
			t.SocialClicks++
		case models.EventDownload:
			t.Downloads++
		case models.EventShare:
			t.Shares++
		}
	}
	return t
}

// percentage returns part/whole*100 rounded to one decimal, or 0 when whole
// is zero.
func percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

func clampPercentage(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
