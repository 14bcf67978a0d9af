// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

// Behavior is the strategy object that interprets attributes of one or more
// NotificationTypes. It plays the same role in this engine that
// reconciler.Configurator plays for a dependency graph: the graph/item
// machinery never knows how a particular aggregate is computed, only that
// it can call into a Behavior and expect the protocol below to be honored.
//
// Implementations must be safe to share across many Items and, after a
// graph merge, across Items that did not originally share a Graph.
type Behavior interface {
	// InterestedAttributes returns the (possibly empty) set of attribute
	// names this behavior must observe even on items that do not carry
	// one of its own NotificationTypes. It is read once, the first time
	// the behavior is registered to an identifier present in a Graph;
	// later changes to the returned set have no effect on that Graph.
	InterestedAttributes() []string

	// GetAttribute returns the gathered value of the named attribute on
	// handle.Item(). It must return an *UnknownAttributeError if this
	// behavior does not handle name.
	GetAttribute(handle *AttributeHandle, name string) (any, error)

	// SetAttribute stores value for the named attribute on handle.Item(),
	// performing whatever propagation the behavior's aggregate semantics
	// require. It must return an *UnknownAttributeError if this behavior
	// does not handle name.
	SetAttribute(handle *AttributeHandle, name string, value any) error

	// PreSubscribe is invoked once per behavior present in the merged
	// registry of a subscription transaction, before the edge is
	// inserted. relatedIdentifiers is the set of notification-type
	// identifiers bound to this behavior across the (about to be)
	// combined graph.
	PreSubscribe(subscriber, notifier *Item, relatedIdentifiers map[Identifier]struct{})

	// PreUnsubscribe is the symmetric hook invoked once per behavior
	// present in the current registry, before the edge is removed.
	PreUnsubscribe(subscriber, notifier *Item, relatedIdentifiers map[Identifier]struct{})
}
