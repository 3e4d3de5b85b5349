// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package entitlement

import (
	"errors"
	"testing"

	"github.com/MKhiriev/tapcard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitsWithProfiles(l models.Limit) models.PlanLimits {
	return models.PlanLimits{MaxProfiles: l}
}

func TestEvaluator_CanCreateAndRemaining_Bounded(t *testing.T) {
	e := NewEvaluator(DefaultNearLimitThreshold)

	for limit := int64(0); limit <= 6; limit++ {
		for used := int64(0); used <= 8; used++ {
			limits := limitsWithProfiles(models.Bounded(limit))
			usage := models.Usage{Profiles: used}

			assert.Equal(t, used < limit, e.CanCreate(models.ResourceProfiles, limits, usage), "limit=%d used=%d", limit, used)

			remaining, bounded := e.Remaining(models.ResourceProfiles, limits, usage).Bound()
			require.True(t, bounded)
			assert.Equal(t, max(0, limit-used), remaining, "limit=%d used=%d", limit, used)
		}
	}
}

func TestEvaluator_Unlimited(t *testing.T) {
	e := NewEvaluator(DefaultNearLimitThreshold)
	limits := limitsWithProfiles(models.Unlimited())

	for _, used := range []int64{0, 1, 1_000, 1 << 40} {
		usage := models.Usage{Profiles: used}

		assert.True(t, e.CanCreate(models.ResourceProfiles, limits, usage))
		assert.True(t, e.Remaining(models.ResourceProfiles, limits, usage).IsUnlimited())
		assert.False(t, e.IsNearLimit(models.ResourceProfiles, limits, usage))
	}
}

func TestEvaluator_IsNearLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
		used  int64
		want  bool
	}{
		{name: "empty", limit: 4, used: 0, want: false},
		{name: "half", limit: 4, used: 2, want: false},
		{name: "exactly threshold", limit: 4, used: 3, want: true},
		{name: "full", limit: 4, used: 4, want: true},
		{name: "over", limit: 4, used: 9, want: true},
		{name: "just below", limit: 100, used: 74, want: false},
		{name: "zero limit", limit: 0, used: 0, want: true},
	}

	e := NewEvaluator(0.75)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.IsNearLimit(models.ResourceCards, models.PlanLimits{MaxCards: models.Bounded(tt.limit)}, models.Usage{Cards: tt.used})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_IsNearLimitAt_CustomThreshold(t *testing.T) {
	e := NewEvaluator(DefaultNearLimitThreshold)
	limits := models.PlanLimits{MaxUsers: models.Bounded(10)}

	assert.True(t, e.IsNearLimitAt(models.ResourceUsers, limits, models.Usage{Users: 5}, 0.5))
	assert.False(t, e.IsNearLimitAt(models.ResourceUsers, limits, models.Usage{Users: 4}, 0.5))
}

func TestNewEvaluator_InvalidThresholdFallsBack(t *testing.T) {
	assert.Equal(t, DefaultNearLimitThreshold, NewEvaluator(0).Threshold())
	assert.Equal(t, DefaultNearLimitThreshold, NewEvaluator(-1).Threshold())
	assert.Equal(t, DefaultNearLimitThreshold, NewEvaluator(1.5).Threshold())
	assert.Equal(t, 0.9, NewEvaluator(0.9).Threshold())
}

func TestEvaluator_AbsentDataDeniesCreation(t *testing.T) {
	e := NewEvaluator(DefaultNearLimitThreshold)

	// zero-value snapshot: no limits were loaded
	assert.False(t, e.CanCreate(models.ResourceProfiles, models.PlanLimits{}, models.Usage{}))

	// unknown kind
	limits := models.PlanLimits{
		MaxUsers:    models.Unlimited(),
		MaxCards:    models.Unlimited(),
		MaxProfiles: models.Unlimited(),
		MaxStorage:  models.Unlimited(),
	}
	assert.False(t, e.CanCreate(models.ResourceKind("widgets"), limits, models.Usage{}))
	remaining, bounded := e.Remaining(models.ResourceKind("widgets"), limits, models.Usage{}).Bound()
	assert.True(t, bounded)
	assert.Zero(t, remaining)
}

func TestEvaluator_Check(t *testing.T) {
	e := NewEvaluator(DefaultNearLimitThreshold)

	snapshot := models.UsageSnapshot{
		OrganizationID: 1,
		Limits:         models.PlanLimits{MaxCards: models.Bounded(2)},
		Usage:          models.Usage{Cards: 2},
	}

	err := e.Check(models.ResourceCards, snapshot)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLimitExceeded)

	var limitErr *LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, models.ResourceCards, limitErr.Kind)
	assert.Equal(t, int64(2), limitErr.Usage)
	assert.Contains(t, err.Error(), "cards used 2 of 2")

	snapshot.Usage.Cards = 1
	assert.NoError(t, e.Check(models.ResourceCards, snapshot))
}

func TestEvaluator_Report(t *testing.T) {
	e := NewEvaluator(DefaultNearLimitThreshold)
	limits, ok := models.PlanPro.Limits()
	require.True(t, ok)

	reports := e.Report(models.UsageSnapshot{
		Limits: limits,
		Usage:  models.Usage{Users: 5, Cards: 8, Profiles: 1},
	})

	require.Len(t, reports, len(models.ResourceKinds))

	byKind := make(map[models.ResourceKind]ResourceReport, len(reports))
	for _, r := range reports {
		byKind[r.Kind] = r
	}

	assert.False(t, byKind[models.ResourceUsers].CanCreate)
	assert.True(t, byKind[models.ResourceUsers].NearLimit)

	assert.True(t, byKind[models.ResourceCards].CanCreate)
	assert.True(t, byKind[models.ResourceCards].NearLimit)
	remaining, _ := byKind[models.ResourceCards].Remaining.Bound()
	assert.Equal(t, int64(2), remaining)

	assert.False(t, byKind[models.ResourceProfiles].NearLimit)
}
