// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package analytics folds recorded profile events into dashboard reports:
// a zero-filled daily trend, a device split, a ranking of profiles by views
// and engagement ratios.
//
// Aggregation is a pure read-side computation over a snapshot of events
// supplied by the caller. [Aggregator.AggregateFrom] adds the fetch step and
// is all-or-nothing: a failing [EventSource] yields an error and no report.
package analytics
