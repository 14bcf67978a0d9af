// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

import "fmt"

// SelfSubscriptionError is returned when an item is subscribed to itself.
type SelfSubscriptionError struct {
	Item *Item
}

// Error message.
func (e *SelfSubscriptionError) Error() string {
	return fmt.Sprintf("item %s cannot subscribe to itself", itemLabel(e.Item))
}

// CircularSubscriptionError is returned when adding an edge would close a
// cycle in the notifier graph.
type CircularSubscriptionError struct {
	Subscriber *Item
	Notifier   *Item
}

// Error message.
func (e *CircularSubscriptionError) Error() string {
	return fmt.Sprintf("subscribing %s to %s would create a cycle",
		itemLabel(e.Subscriber), itemLabel(e.Notifier))
}

// UnknownAttributeError is returned by get/set_attribute for a name that no
// behavior on the notification type handles.
type UnknownAttributeError struct {
	Identifier Identifier
	Attribute  string
}

// Error message.
func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("notification type %v does not handle attribute %q",
		e.Identifier, e.Attribute)
}

// DuplicateNotificationTypeError is returned by AddNotification when the
// type's identifier is already attached to the item.
type DuplicateNotificationTypeError struct {
	Identifier Identifier
}

// Error message.
func (e *DuplicateNotificationTypeError) Error() string {
	return fmt.Sprintf("notification type %v is already attached to this item", e.Identifier)
}

// MissingNotificationTypeError is returned when indexing an item by a type
// that was never attached to it.
type MissingNotificationTypeError struct {
	Identifier Identifier
}

// Error message.
func (e *MissingNotificationTypeError) Error() string {
	return fmt.Sprintf("notification type %v is not attached to this item", e.Identifier)
}

// NotANotifierError is returned by Unsubscribe when the given item is not
// currently a notifier of the receiver.
type NotANotifierError struct {
	Subscriber *Item
	Notifier   *Item
}

// Error message.
func (e *NotANotifierError) Error() string {
	return fmt.Sprintf("%s is not subscribed to %s",
		itemLabel(e.Subscriber), itemLabel(e.Notifier))
}

// GraphDestroyedError is returned by MaybeSplit and AttributeHandle.Set
// when the Graph involved was merged away into another Graph.
type GraphDestroyedError struct {
	GraphID string
}

// Error message.
func (e *GraphDestroyedError) Error() string {
	return fmt.Sprintf("graph %s was destroyed by a merge", e.GraphID)
}

// TypeMismatchError is returned by a behavior when an attribute is set to a
// value of the wrong Go type (e.g. a non-bool passed to NotifySubscribers).
type TypeMismatchError struct {
	Attribute string
	Want      string
	Got       any
}

// Error message.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attribute %q expects a %s value, got %T", e.Attribute, e.Want, e.Got)
}

// ReentrantTransactionError is returned when a behavior hook attempts to
// call Subscribe/Unsubscribe on a graph whose subscription transaction is
// still open.
type ReentrantTransactionError struct {
	GraphID string
}

// Error message.
func (e *ReentrantTransactionError) Error() string {
	return fmt.Sprintf("graph %s: Subscribe/Unsubscribe called re-entrantly from a behavior hook", e.GraphID)
}

func itemLabel(item *Item) string {
	if item == nil {
		return "<nil item>"
	}
	return item.id
}
