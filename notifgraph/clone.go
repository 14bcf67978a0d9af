// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"
)

// Cloneable lets a default attribute value control how it is copied when a
// NotificationType is attached to a new item. Implement it when the gob
// fallback in cloneDefault is unsuitable (unexported fields, channels,
// function values, or when a cheaper copy is available).
type Cloneable interface {
	Clone() any
}

// cloneDefault returns a deep, independent copy of v so that per-item
// default attribute values can never be accidentally shared by reference
// (see SPEC_FULL.md "Default attribute deep-copy").
func cloneDefault(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if c, ok := v.(Cloneable); ok {
		return c.Clone(), nil
	}
	switch v.(type) {
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string:
		// Immutable scalars need no copy.
		return v, nil
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&v); err != nil {
		return nil, errors.Wrapf(err, "clone default value of type %T (implement notifgraph.Cloneable instead)", v)
	}
	var clone any
	if err := gob.NewDecoder(&buf).Decode(&clone); err != nil {
		return nil, errors.Wrapf(err, "clone default value of type %T", v)
	}
	return clone, nil
}
