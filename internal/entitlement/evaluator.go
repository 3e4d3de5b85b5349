// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package entitlement

import (
	"github.com/MKhiriev/tapcard/models"
)

// DefaultNearLimitThreshold is the usage ratio from which a bounded quota is
// reported as nearly exhausted.
const DefaultNearLimitThreshold = 0.75

// Evaluator answers entitlement questions over a usage snapshot.
// The zero value is not usable; construct it with [NewEvaluator].
type Evaluator struct {
	threshold float64
}

// NewEvaluator returns an Evaluator that flags quotas as near their limit
// once usage/limit reaches threshold. A threshold outside (0, 1] falls back
// to [DefaultNearLimitThreshold].
func NewEvaluator(threshold float64) *Evaluator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultNearLimitThreshold
	}
	return &Evaluator{threshold: threshold}
}

// Threshold returns the configured near-limit ratio.
func (e *Evaluator) Threshold() float64 {
	return e.threshold
}

// CanCreate reports whether one more resource of kind fits the plan.
// Unlimited quotas always allow creation; bounded ones allow it while
// usage < limit.
func (e *Evaluator) CanCreate(kind models.ResourceKind, limits models.PlanLimits, usage models.Usage) bool {
	limit, bounded := limits.For(kind).Bound()
	if !bounded {
		return true
	}
	return usage.For(kind) < limit
}

// Remaining returns the headroom for kind: Unlimited for unlimited quotas,
// otherwise Bounded(max(0, limit-usage)).
func (e *Evaluator) Remaining(kind models.ResourceKind, limits models.PlanLimits, usage models.Usage) models.Limit {
	limit, bounded := limits.For(kind).Bound()
	if !bounded {
		return models.Unlimited()
	}
	return models.Bounded(limit - usage.For(kind))
}

// IsNearLimit reports whether usage/limit >= the evaluator's threshold.
// Always false for unlimited quotas.
func (e *Evaluator) IsNearLimit(kind models.ResourceKind, limits models.PlanLimits, usage models.Usage) bool {
	return e.isNearLimit(kind, limits, usage, e.threshold)
}

// IsNearLimitAt is IsNearLimit with an explicit threshold.
func (e *Evaluator) IsNearLimitAt(kind models.ResourceKind, limits models.PlanLimits, usage models.Usage, threshold float64) bool {
	return e.isNearLimit(kind, limits, usage, threshold)
}

func (e *Evaluator) isNearLimit(kind models.ResourceKind, limits models.PlanLimits, usage models.Usage, threshold float64) bool {
	limit, bounded := limits.For(kind).Bound()
	if !bounded {
		return false
	}

	used := usage.For(kind)
	if limit == 0 {
		// nothing allowed: any usage, or even none, means the quota is exhausted
		return true
	}

	return float64(used)/float64(limit) >= threshold
}

// Check returns a [*LimitExceededError] when kind cannot be created under
// the snapshot, nil otherwise.
func (e *Evaluator) Check(kind models.ResourceKind, snapshot models.UsageSnapshot) error {
	if e.CanCreate(kind, snapshot.Limits, snapshot.Usage) {
		return nil
	}

	return &LimitExceededError{
		Kind:  kind,
		Limit: snapshot.Limits.For(kind),
		Usage: snapshot.Usage.For(kind),
	}
}

// ResourceReport summarizes one quota for presentation.
type ResourceReport struct {
	Kind      models.ResourceKind `json:"kind"`
	Limit     models.Limit        `json:"limit"`
	Used      int64               `json:"used"`
	Remaining models.Limit        `json:"remaining"`
	NearLimit bool                `json:"nearLimit"`
	CanCreate bool                `json:"canCreate"`
}

// Report evaluates every resource kind of the snapshot.
func (e *Evaluator) Report(snapshot models.UsageSnapshot) []ResourceReport {
	reports := make([]ResourceReport, 0, len(models.ResourceKinds))
	for _, kind := range models.ResourceKinds {
		reports = append(reports, ResourceReport{
			Kind:      kind,
			Limit:     snapshot.Limits.For(kind),
			Used:      snapshot.Usage.For(kind),
			Remaining: e.Remaining(kind, snapshot.Limits, snapshot.Usage),
			NearLimit: e.IsNearLimit(kind, snapshot.Limits, snapshot.Usage),
			CanCreate: e.CanCreate(kind, snapshot.Limits, snapshot.Usage),
		})
	}
	return reports
}
