// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnlimitedSentinel is the stored representation of an unlimited quota.
// It only appears at the persistence and wire boundaries; code compares
// quotas through [Limit] instead.
const UnlimitedSentinel int64 = -1

var (
	_ sql.Scanner   = (*Limit)(nil)
	_ driver.Valuer = Limit{}
)

// Limit is a plan quota: either unlimited or bounded by a non-negative value.
//
// The zero value is Bounded(0), which denies every creation. A limit that
// is missing from a snapshot therefore degrades to the most restrictive
// setting.
type Limit struct {
	n         int64
	unlimited bool
}

// Unlimited returns a quota without an upper bound.
func Unlimited() Limit {
	return Limit{unlimited: true}
}

// Bounded returns a quota of n. Negative values are clamped to zero.
func Bounded(n int64) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{n: n}
}

// LimitFromStored decodes the stored integer form: -1 means unlimited, any
// other negative value is treated as zero.
func LimitFromStored(v int64) Limit {
	if v == UnlimitedSentinel {
		return Unlimited()
	}
	return Bounded(v)
}

// IsUnlimited reports whether the quota has no upper bound.
func (l Limit) IsUnlimited() bool {
	return l.unlimited
}

// Bound returns the bound and true for bounded quotas, or 0 and false for
// unlimited ones.
func (l Limit) Bound() (int64, bool) {
	if l.unlimited {
		return 0, false
	}
	return l.n, true
}

// Stored returns the integer persisted for this quota.
func (l Limit) Stored() int64 {
	if l.unlimited {
		return UnlimitedSentinel
	}
	return l.n
}

func (l Limit) String() string {
	if l.unlimited {
		return "unlimited"
	}
	return strconv.FormatInt(l.n, 10)
}

// MarshalJSON encodes unlimited quotas as -1 to stay compatible with
// existing frontends.
func (l Limit) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(l.Stored(), 10)), nil
}

// UnmarshalJSON accepts an integer (-1 for unlimited) or the string
// "unlimited".
func (l *Limit) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = Limit{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "unlimited" {
			*l = Unlimited()
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid limit %q: %w", s, err)
		}
		*l = LimitFromStored(v)
		return nil
	}

	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("invalid limit: %w", err)
	}
	*l = LimitFromStored(v)
	return nil
}

// Value implements [driver.Valuer].
func (l Limit) Value() (driver.Value, error) {
	return l.Stored(), nil
}

// Scan implements [sql.Scanner] for integer columns.
func (l *Limit) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = Limit{}
	case int64:
		*l = LimitFromStored(v)
	case int32:
		*l = LimitFromStored(int64(v))
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan limit: %w", err)
		}
		*l = LimitFromStored(n)
	default:
		return fmt.Errorf("scan limit: unsupported type %T", src)
	}
	return nil
}
