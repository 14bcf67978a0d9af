// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/IF-ACT/notification-graph/notifgraph"
)

type stubBehavior struct{}

func (stubBehavior) InterestedAttributes() []string { return nil }
func (stubBehavior) GetAttribute(handle *notifgraph.AttributeHandle, name string) (any, error) {
	return handle.Owned().GetOwned(name, nil), nil
}
func (stubBehavior) SetAttribute(handle *notifgraph.AttributeHandle, name string, value any) error {
	handle.Owned().SetOwned(name, value)
	return nil
}
func (stubBehavior) PreSubscribe(subscriber, notifier *notifgraph.Item, related map[notifgraph.Identifier]struct{}) {
}
func (stubBehavior) PreUnsubscribe(subscriber, notifier *notifgraph.Item, related map[notifgraph.Identifier]struct{}) {
}

func TestAddNotificationRejectsDuplicateIdentifier(test *testing.T) {
	g := NewGomegaWithT(test)

	typ := notifgraph.NewType("dup", stubBehavior{}, nil)
	item := notifgraph.NewItem()
	g.Expect(item.AddNotification(typ)).To(Succeed())

	err := item.AddNotification(typ)
	g.Expect(err).To(HaveOccurred())
	var dupErr *notifgraph.DuplicateNotificationTypeError
	g.Expect(err).To(BeAssignableToTypeOf(dupErr))
}

func TestAttrRejectsMissingNotificationType(test *testing.T) {
	g := NewGomegaWithT(test)

	typ := notifgraph.NewType("missing", stubBehavior{}, nil)
	item := notifgraph.NewItem()

	_, err := item.Attr(typ)
	g.Expect(err).To(HaveOccurred())
	var missingErr *notifgraph.MissingNotificationTypeError
	g.Expect(err).To(BeAssignableToTypeOf(missingErr))
}

func TestAddNotificationSeedsDefaults(test *testing.T) {
	g := NewGomegaWithT(test)

	typ := notifgraph.NewType("defaults", stubBehavior{}, map[string]any{"count": 0})
	item := notifgraph.NewItem()
	g.Expect(item.AddNotification(typ)).To(Succeed())

	handle, err := item.Attr(typ)
	g.Expect(err).NotTo(HaveOccurred())
	value, err := handle.Get("count")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(Equal(0))
}

func TestWalkThroughUpstreamAndDownstream(test *testing.T) {
	g := NewGomegaWithT(test)

	a := notifgraph.NewItem()
	b := notifgraph.NewItem()
	c := notifgraph.NewItem()
	g.Expect(notifgraph.Subscribe(b, a)).To(Succeed())
	g.Expect(notifgraph.Subscribe(c, b)).To(Succeed())

	var upstream []*notifgraph.Item
	for item := range c.WalkThrough(notifgraph.Upstream) {
		upstream = append(upstream, item)
	}
	g.Expect(upstream).To(ConsistOf(b, a))

	var downstream []*notifgraph.Item
	for item := range a.WalkThrough(notifgraph.Downstream) {
		downstream = append(downstream, item)
	}
	g.Expect(downstream).To(ConsistOf(b, c))

	g.Expect(c.HasSubscription(a, false)).To(BeFalse())
	g.Expect(c.HasSubscription(a, true)).To(BeTrue())
	g.Expect(c.HasSubscription(b, false)).To(BeTrue())
}
