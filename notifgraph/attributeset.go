// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

// attributeSet is the pair of owned/inherited layers backing one
// (item, notification-type) pair. Owned values are authored by the item's
// own behavior; inherited ("cache") values are aggregated from strict
// notifiers and may be written by any behavior reachable via the interest
// index.
type attributeSet struct {
	owned     map[string]any
	inherited map[string]any
}

func newAttributeSet() *attributeSet {
	return &attributeSet{
		owned:     make(map[string]any),
		inherited: make(map[string]any),
	}
}

// GetOwned returns the owned-layer value for name, or def if absent.
func (a *attributeSet) GetOwned(name string, def any) any {
	if v, ok := a.owned[name]; ok {
		return v
	}
	return def
}

// HasOwned reports whether name has an owned-layer value.
func (a *attributeSet) HasOwned(name string) bool {
	_, ok := a.owned[name]
	return ok
}

// SetOwned stores an owned-layer value for name.
func (a *attributeSet) SetOwned(name string, value any) {
	a.owned[name] = value
}

// GetInherited returns the inherited-layer value for name, or def if absent.
func (a *attributeSet) GetInherited(name string, def any) any {
	if v, ok := a.inherited[name]; ok {
		return v
	}
	return def
}

// HasInherited reports whether name has an inherited-layer value.
func (a *attributeSet) HasInherited(name string) bool {
	_, ok := a.inherited[name]
	return ok
}

// SetInherited stores an inherited-layer ("cache") value for name.
func (a *attributeSet) SetInherited(name string, value any) {
	a.inherited[name] = value
}

// AttributeReader exposes the read side of an attribute set's owned and
// inherited layers. Built-in and custom Behavior implementations use it to
// peek at another item's raw state while propagating, without the package
// needing to export the attributeSet type itself.
type AttributeReader interface {
	GetOwned(name string, def any) any
	HasOwned(name string) bool
	GetInherited(name string, def any) any
	HasInherited(name string) bool
}

// AttributeWriter extends AttributeReader with the write side.
type AttributeWriter interface {
	AttributeReader
	SetOwned(name string, value any)
	SetInherited(name string, value any)
}

// AttributeHandle bundles an attribute set with the behavior, item, and
// type identifier it belongs to. It is the only surface through which a
// Behavior implementation sees attribute state -- see SPEC_FULL.md §4.1.
type AttributeHandle struct {
	set        *attributeSet
	behavior   Behavior
	item       *Item
	identifier Identifier
}

// Item returns the item this handle was obtained from.
func (h *AttributeHandle) Item() *Item {
	return h.item
}

// Identifier returns the notification-type identifier this handle was
// obtained from.
func (h *AttributeHandle) Identifier() Identifier {
	return h.identifier
}

// Owned exposes the raw owned/inherited-layer accessors for use by
// Behavior implementations that need to read/write state beyond what
// Get/Set exposes generically (e.g. CountAttribute storing a count under a
// name distinct from the one it was called with).
func (h *AttributeHandle) Owned() AttributeWriter {
	return h.set
}

// Get dispatches to h.behavior.GetAttribute.
func (h *AttributeHandle) Get(name string) (any, error) {
	return h.behavior.GetAttribute(h, name)
}

// Set dispatches to the graph's interest pre-dispatch (if the item belongs
// to one) followed by h.behavior.SetAttribute -- see SPEC_FULL.md §4.3. An
// error from the interest pre-dispatch is returned verbatim and the owning
// behavior's own write is skipped.
func (h *AttributeHandle) Set(name string, value any) error {
	if g := h.item.graph; g != nil {
		if err := g.checkAlive(); err != nil {
			return err
		}
		if err := g.dispatchInterest(h.item, h.identifier, name, value); err != nil {
			return err
		}
	}
	return h.behavior.SetAttribute(h, name, value)
}

// attributeSetFor returns (creating if needed when create is true) the
// attribute set for the given identifier on item.
func (item *Item) attributeSetFor(identifier Identifier, create bool) *attributeSet {
	if set, ok := item.attributes[identifier]; ok {
		return set
	}
	if !create {
		return nil
	}
	set := newAttributeSet()
	item.attributes[identifier] = set
	return set
}
