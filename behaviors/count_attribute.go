// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package behaviors

import (
	"github.com/IF-ACT/notification-graph/internal/worklist"
	"github.com/IF-ACT/notification-graph/notifgraph"
)

// CountSpec describes one counted attribute: the name it is stored under
// and, optionally, how its value is turned into an int delta. A nil
// CountFunc defaults to DefaultCountFunction.
type CountSpec struct {
	CountName string
	CountFunc func(any) int
}

type countInfo struct {
	countName string
	countFunc func(any) int
}

// CountAttribute maintains one or more additive counters, each summing a
// function of an observed attribute across the subtree rooted below the
// item currently holding the attribute. It can be bound under the same
// identifier as, but a different item than, the behavior whose writes it
// counts: InterestedAttributes is how the graph learns to route those
// writes here before the owning behavior commits.
type CountAttribute struct {
	attributes map[string]countInfo // counted attribute name -> storage info
	storages   map[string]struct{}  // storage attribute names
}

// NewCountAttribute builds a CountAttribute from a map of counted
// attribute name to CountSpec.
func NewCountAttribute(spec map[string]CountSpec) *CountAttribute {
	attributes := make(map[string]countInfo, len(spec))
	storages := make(map[string]struct{}, len(spec))
	for attr, s := range spec {
		fn := s.CountFunc
		if fn == nil {
			fn = DefaultCountFunction
		}
		attributes[attr] = countInfo{countName: s.CountName, countFunc: fn}
		storages[s.CountName] = struct{}{}
	}
	return &CountAttribute{attributes: attributes, storages: storages}
}

// DefaultCountFunction counts an int value verbatim, a bool true as 1, and
// every other value (false, nil, strings, floats, ...) as 0.
func DefaultCountFunction(v any) int {
	if n, ok := v.(int); ok {
		return n
	}
	if b, ok := v.(bool); ok && b {
		return 1
	}
	return 0
}

// InterestedAttributes returns the set of attribute names this counter
// observes.
func (c *CountAttribute) InterestedAttributes() []string {
	out := make([]string, 0, len(c.attributes))
	for attr := range c.attributes {
		out = append(out, attr)
	}
	return out
}

// GetAttribute returns the gathered (owned + inherited) total for a
// storage attribute name.
func (c *CountAttribute) GetAttribute(handle *notifgraph.AttributeHandle, name string) (any, error) {
	if _, ok := c.storages[name]; !ok {
		return nil, &notifgraph.UnknownAttributeError{Identifier: handle.Identifier(), Attribute: name}
	}
	set := handle.Owned()
	owned, _ := set.GetOwned(name, 0).(int)
	inherited, _ := set.GetInherited(name, 0).(int)
	return owned + inherited, nil
}

// SetAttribute handles two distinct call shapes: a direct write to a
// storage attribute (propagates the delta to every subscriber), or an
// interest-dispatched write to a counted attribute on some other item
// (computes the delta from the old/new counted value and propagates it
// from that item, so it lands on whichever descendant items share its
// identifier -- including, eventually, this behavior's own item).
func (c *CountAttribute) SetAttribute(handle *notifgraph.AttributeHandle, name string, value any) error {
	if _, ok := c.storages[name]; ok {
		n, ok := value.(int)
		if !ok {
			return &notifgraph.TypeMismatchError{Attribute: name, Want: "int", Got: value}
		}
		set := handle.Item().AttributeSetFor(handle.Identifier(), true)
		old, _ := set.GetOwned(name, 0).(int)
		set.SetOwned(name, n)
		delta := n - old
		for _, sub := range handle.Item().SubscriberItems() {
			c.recursiveModifyCount(sub, handle.Identifier(), name, delta)
		}
		return nil
	}

	info, ok := c.attributes[name]
	if !ok {
		return &notifgraph.UnknownAttributeError{Identifier: handle.Identifier(), Attribute: name}
	}

	set := handle.Item().AttributeSetFor(handle.Identifier(), false)
	var delta int
	if set == nil || !set.HasOwned(name) {
		delta = info.countFunc(value)
	} else {
		old := set.GetOwned(name, nil)
		delta = info.countFunc(value) - info.countFunc(old)
	}
	c.recursiveModifyCount(handle.Item(), handle.Identifier(), info.countName, delta)
	return nil
}

// PreSubscribe and PreUnsubscribe are no-ops: counts change only through
// SetAttribute. Creating an edge does not add the count already gathered on
// notifierItem to subscriberItem and its subscribers, and removing an edge
// does not subtract it.
func (c *CountAttribute) PreSubscribe(subscriberItem, notifierItem *notifgraph.Item, relatedIdentifiers map[notifgraph.Identifier]struct{}) {
}

func (c *CountAttribute) PreUnsubscribe(subscriberItem, notifierItem *notifgraph.Item, relatedIdentifiers map[notifgraph.Identifier]struct{}) {
}

// recursiveModifyCount adds delta to the inherited count-storage value on
// item and every item transitively subscribing to it, visiting each item
// at most once.
func (c *CountAttribute) recursiveModifyCount(item *notifgraph.Item, identifier notifgraph.Identifier, countName string, delta int) {
	if delta == 0 {
		return
	}
	visited := worklist.NewVisitSet[*notifgraph.Item]()
	stack := worklist.New[*notifgraph.Item](8)
	stack.Push(item)
	for {
		cur, ok := stack.Pop()
		if !ok {
			return
		}
		if !visited.Visit(cur) {
			continue
		}
		set := cur.AttributeSetFor(identifier, true)
		old, _ := set.GetInherited(countName, 0).(int)
		set.SetInherited(countName, old+delta)
		for _, sub := range cur.SubscriberItems() {
			stack.Push(sub)
		}
	}
}
