// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// jsonbValue encodes v for a JSONB column. Nil slices and maps are stored as
// their empty JSON form so the NOT NULL columns stay valid.
func jsonbValue(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	if string(raw) == "null" {
		return []byte("{}"), nil
	}
	return raw, nil
}

// jsonb decodes a JSONB column into dst on Scan.
type jsonb struct {
	dst any
}

var _ sql.Scanner = jsonb{}

func (j jsonb) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrEncodingColumn, src)
	}

	if err := json.Unmarshal(raw, j.dst); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return nil
}

// jsonbList is jsonbValue for slice columns: nil slices become "[]".
func jsonbList[T any](items []T) ([]byte, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return jsonbValue(items)
}
