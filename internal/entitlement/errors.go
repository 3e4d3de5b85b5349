// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package entitlement

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/tapcard/models"
)

// ErrLimitExceeded is matched by every [LimitExceededError].
var ErrLimitExceeded = errors.New("plan limit exceeded")

// LimitExceededError reports that creating one more resource of Kind would
// overrun the organization's plan.
type LimitExceededError struct {
	Kind  models.ResourceKind
	Limit models.Limit
	Usage int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s: %s used %d of %s", ErrLimitExceeded, e.Kind, e.Usage, e.Limit)
}

// Is makes errors.Is(err, ErrLimitExceeded) succeed.
func (e *LimitExceededError) Is(target error) bool {
	return target == ErrLimitExceeded
}
