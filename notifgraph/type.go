// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

// NotificationType is an immutable descriptor combining an Identifier, the
// Behavior that interprets attributes of this type, and the default
// attribute values seeded into a fresh AttributeSet whenever the type is
// attached to an Item.
//
// A single NotificationType (and the Behavior it references) may be shared
// across many Items and, across a graph merge, many Items that did not
// originally belong to the same Graph.
type NotificationType struct {
	identifier Identifier
	behavior   Behavior
	defaults   map[string]any
}

// NewType builds a NotificationType. defaults may be nil; it is copied, so
// later mutation of the map passed in does not affect the type.
func NewType(identifier Identifier, behavior Behavior, defaults map[string]any) *NotificationType {
	d := make(map[string]any, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &NotificationType{identifier: identifier, behavior: behavior, defaults: d}
}

// Identifier returns the type's identifier.
func (t *NotificationType) Identifier() Identifier {
	return t.identifier
}

// Behavior returns the type's behavior instance.
func (t *NotificationType) Behavior() Behavior {
	return t.behavior
}

// newAttributeSet seeds a fresh attribute set from this type's defaults,
// deep-cloning every default value (see clone.go).
func (t *NotificationType) newAttributeSet() (*attributeSet, error) {
	set := newAttributeSet()
	for name, def := range t.defaults {
		cloned, err := cloneDefault(def)
		if err != nil {
			return nil, err
		}
		set.owned[name] = cloned
	}
	return set, nil
}
