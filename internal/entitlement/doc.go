// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package entitlement decides whether an organization may create more of a
// quota-controlled resource under its plan.
//
// The evaluator is a pure function of the [models.UsageSnapshot] handed in by
// the caller: it never fetches or caches limits, so the caller must read a
// fresh snapshot before each decision.
package entitlement
