// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

import (
	uuid "github.com/satori/go.uuid"
)

// Item is a node of the notification graph. It owns its attribute sets and
// edge sets; the Graph it belongs to is a non-owning back-reference that is
// retargeted when graphs merge and is nil while the item is isolated.
type Item struct {
	id string

	behaviors  map[Identifier]Behavior
	attributes map[Identifier]*attributeSet

	notifiers   map[*Item]struct{} // out-edges: items this one subscribes to
	subscribers map[*Item]struct{} // in-edges: items subscribing to this one

	graph *Graph
}

// NewItem creates a fresh, isolated item (no notification types, no edges,
// no graph).
func NewItem() *Item {
	id, err := uuid.NewV4()
	idStr := "item-unknown"
	if err == nil {
		idStr = "item-" + id.String()[:8]
	}
	return &Item{
		id:          idStr,
		behaviors:   make(map[Identifier]Behavior),
		attributes:  make(map[Identifier]*attributeSet),
		notifiers:   make(map[*Item]struct{}),
		subscribers: make(map[*Item]struct{}),
	}
}

// ID returns a short, human-readable, stable-for-the-process-lifetime
// identifier used only for logging and debugging.
func (item *Item) ID() string {
	return item.id
}

// Graph returns the item's current graph, or nil if the item is isolated.
func (item *Item) Graph() *Graph {
	return item.graph
}

// IsSingle reports whether the item is isolated (belongs to no graph).
func (item *Item) IsSingle() bool {
	return item.graph == nil
}

// NotifierItems returns the items this item subscribes to (its out-edges).
func (item *Item) NotifierItems() []*Item {
	out := make([]*Item, 0, len(item.notifiers))
	for n := range item.notifiers {
		out = append(out, n)
	}
	return out
}

// SubscriberItems returns the items subscribing to this item (its in-edges).
func (item *Item) SubscriberItems() []*Item {
	out := make([]*Item, 0, len(item.subscribers))
	for s := range item.subscribers {
		out = append(out, s)
	}
	return out
}

// IsHead reports whether the item is the unique head of its graph. A
// single, isolated item is trivially its own (degenerate) head.
func (item *Item) IsHead() bool {
	if item.graph == nil {
		return true
	}
	return item.graph.head == item
}

// IsHeadOfTree reports whether the item is the head of a graph that is
// currently classified as a tree.
func (item *Item) IsHeadOfTree() bool {
	if item.graph == nil {
		return true
	}
	return item.graph.isTree && item.graph.head == item
}

// AddNotification attaches t to the item, seeding a fresh attribute set
// from t's defaults. It fails with *DuplicateNotificationTypeError if the
// type's identifier is already attached.
func (item *Item) AddNotification(t *NotificationType) error {
	if _, exists := item.behaviors[t.identifier]; exists {
		return &DuplicateNotificationTypeError{Identifier: t.identifier}
	}
	set, err := t.newAttributeSet()
	if err != nil {
		return err
	}
	item.behaviors[t.identifier] = t.behavior
	item.attributes[t.identifier] = set
	if item.graph != nil {
		item.graph.registerIdentifier(t.identifier, t.behavior, item)
	}
	return nil
}

// Attr returns a handle onto the attribute set for t on this item. It fails
// with *MissingNotificationTypeError if t was never attached via
// AddNotification.
func (item *Item) Attr(t *NotificationType) (*AttributeHandle, error) {
	return item.attrByIdentifier(t.identifier)
}

// AttrByIdentifier is the Identifier-keyed counterpart to Attr, for callers
// that look up notification types dynamically (e.g. a scenario file) and
// so never hold on to the *NotificationType pointer itself.
func (item *Item) AttrByIdentifier(identifier Identifier) (*AttributeHandle, error) {
	return item.attrByIdentifier(identifier)
}

func (item *Item) attrByIdentifier(identifier Identifier) (*AttributeHandle, error) {
	behavior, ok := item.behaviors[identifier]
	if !ok {
		return nil, &MissingNotificationTypeError{Identifier: identifier}
	}
	set := item.attributeSetFor(identifier, true)
	return &AttributeHandle{set: set, behavior: behavior, item: item, identifier: identifier}, nil
}

// AttributeSetFor exposes raw owned/inherited-layer access to item's
// attribute set for identifier, for Behavior implementations that need to
// inspect or write another item's state while propagating (e.g. walking
// subscribers). It returns nil if create is false and no such attribute
// set exists yet.
func (item *Item) AttributeSetFor(identifier Identifier, create bool) AttributeWriter {
	set := item.attributeSetFor(identifier, create)
	if set == nil {
		return nil
	}
	return set
}
