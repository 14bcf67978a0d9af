// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package behaviors

import (
	"github.com/IF-ACT/notification-graph/internal/worklist"
	"github.com/IF-ACT/notification-graph/notifgraph"
)

// NotifySubscribers propagates a single boolean attribute down the
// subscription graph: once an item's gathered value becomes true, every
// item subscribing to it (directly or transitively) also reads true for
// that attribute, whether or not the subscriber's own owned value is set.
// Clearing unwinds the same way, stopping at any item that still has
// another active notifier.
type NotifySubscribers struct {
	attributeName string
}

// NewNotifySubscribers builds a NotifySubscribers behavior for the given
// attribute name. An empty name defaults to "activate".
func NewNotifySubscribers(attributeName string) *NotifySubscribers {
	if attributeName == "" {
		attributeName = "activate"
	}
	return &NotifySubscribers{attributeName: attributeName}
}

// InterestedAttributes returns nil: NotifySubscribers never needs to
// observe attributes belonging to other behaviors.
func (n *NotifySubscribers) InterestedAttributes() []string {
	return nil
}

// GetAttribute returns the gathered (owned OR inherited) value.
func (n *NotifySubscribers) GetAttribute(handle *notifgraph.AttributeHandle, name string) (any, error) {
	if name != n.attributeName {
		return nil, &notifgraph.UnknownAttributeError{Identifier: handle.Identifier(), Attribute: name}
	}
	return n.gathered(handle.Owned()), nil
}

// SetAttribute stores the owned value and, if the gathered value changed,
// propagates the new value to every subscriber.
func (n *NotifySubscribers) SetAttribute(handle *notifgraph.AttributeHandle, name string, value any) error {
	if name != n.attributeName {
		return &notifgraph.UnknownAttributeError{Identifier: handle.Identifier(), Attribute: name}
	}
	b, ok := value.(bool)
	if !ok {
		return &notifgraph.TypeMismatchError{Attribute: name, Want: "bool", Got: value}
	}

	set := handle.Owned()
	oldGathered := n.gathered(set)
	set.SetOwned(name, b)
	if n.gathered(set) == oldGathered {
		return nil
	}

	identifier := handle.Identifier()
	if b {
		for _, sub := range handle.Item().SubscriberItems() {
			n.recursiveSetTrue(sub, identifier)
		}
	} else {
		for _, sub := range handle.Item().SubscriberItems() {
			n.recursiveSetFalse(sub, identifier)
		}
	}
	return nil
}

// PreSubscribe carries an already-active value across a brand-new edge: if
// notifierItem's gathered value for any related identifier is already
// true, subscriberItem (and its own subscribers) picks it up immediately.
func (n *NotifySubscribers) PreSubscribe(subscriberItem, notifierItem *notifgraph.Item, relatedIdentifiers map[notifgraph.Identifier]struct{}) {
	for identifier := range relatedIdentifiers {
		set := notifierItem.AttributeSetFor(identifier, false)
		if set == nil {
			continue
		}
		if n.gathered(set) {
			n.recursiveSetTrue(subscriberItem, identifier)
		}
	}
}

// PreUnsubscribe does nothing: removing an edge does not clear a true value
// that subscriberItem (or its own subscribers) inherited through
// notifierItem.
func (n *NotifySubscribers) PreUnsubscribe(subscriberItem, notifierItem *notifgraph.Item, relatedIdentifiers map[notifgraph.Identifier]struct{}) {
}

func (n *NotifySubscribers) gathered(set notifgraph.AttributeReader) bool {
	if owned, _ := set.GetOwned(n.attributeName, false).(bool); owned {
		return true
	}
	inherited, _ := set.GetInherited(n.attributeName, false).(bool)
	return inherited
}

// recursiveSetTrue walks subscribers, setting the inherited value true and
// stopping at any item whose inherited value is already true (its own
// subtree must already be true too).
func (n *NotifySubscribers) recursiveSetTrue(start *notifgraph.Item, identifier notifgraph.Identifier) {
	stack := worklist.New[*notifgraph.Item](8)
	stack.Push(start)
	for {
		item, ok := stack.Pop()
		if !ok {
			return
		}
		set := item.AttributeSetFor(identifier, true)
		if already, _ := set.GetInherited(n.attributeName, false).(bool); already {
			continue
		}
		set.SetInherited(n.attributeName, true)
		for _, sub := range item.SubscriberItems() {
			stack.Push(sub)
		}
	}
}

// recursiveSetFalse walks subscribers, clearing the inherited value,
// stopping (without clearing) at any item that still has another active
// notifier.
func (n *NotifySubscribers) recursiveSetFalse(start *notifgraph.Item, identifier notifgraph.Identifier) {
	stack := worklist.New[*notifgraph.Item](8)
	stack.Push(start)
	for {
		item, ok := stack.Pop()
		if !ok {
			return
		}
		set := item.AttributeSetFor(identifier, false)
		if set == nil {
			continue
		}
		if active, _ := set.GetInherited(n.attributeName, false).(bool); !active {
			continue
		}

		stillActive := false
		for _, notifier := range item.NotifierItems() {
			notifierSet := notifier.AttributeSetFor(identifier, false)
			if notifierSet == nil {
				continue
			}
			if n.gathered(notifierSet) {
				stillActive = true
				break
			}
		}
		if stillActive {
			continue
		}

		set.SetInherited(n.attributeName, false)
		for _, sub := range item.SubscriberItems() {
			stack.Push(sub)
		}
	}
}
