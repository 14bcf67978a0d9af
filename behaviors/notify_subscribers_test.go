// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package behaviors_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/IF-ACT/notification-graph/behaviors"
	"github.com/IF-ACT/notification-graph/notifgraph"
)

// S1: a chain a <- b <- c (c subscribes to b, b subscribes to a); setting
// activate on a propagates all the way down to c.
func TestNotifySubscribersChainPropagation(test *testing.T) {
	g := NewGomegaWithT(test)

	notifyType := notifgraph.NewType("chain", behaviors.NewNotifySubscribers("activate"), nil)

	a := notifgraph.NewItem()
	b := notifgraph.NewItem()
	c := notifgraph.NewItem()
	g.Expect(a.AddNotification(notifyType)).To(Succeed())
	g.Expect(b.AddNotification(notifyType)).To(Succeed())
	g.Expect(c.AddNotification(notifyType)).To(Succeed())

	g.Expect(notifgraph.Subscribe(b, a)).To(Succeed())
	g.Expect(notifgraph.Subscribe(c, b)).To(Succeed())

	handleA, err := a.Attr(notifyType)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(handleA.Set("activate", true)).To(Succeed())

	handleC, err := c.Attr(notifyType)
	g.Expect(err).NotTo(HaveOccurred())
	value, err := handleC.Get("activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(BeTrue())

	g.Expect(handleA.Set("activate", false)).To(Succeed())
	value, err = handleC.Get("activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(BeFalse())
}

// S2: a diamond, head <- {left, right} <- tail. Clearing one side of the
// diamond must not clear tail while the other side is still active.
func TestNotifySubscribersDiamondDoesNotClearEarly(test *testing.T) {
	g := NewGomegaWithT(test)

	notifyType := notifgraph.NewType("diamond", behaviors.NewNotifySubscribers("activate"), nil)

	head := notifgraph.NewItem()
	left := notifgraph.NewItem()
	right := notifgraph.NewItem()
	tail := notifgraph.NewItem()
	for _, item := range []*notifgraph.Item{head, left, right, tail} {
		g.Expect(item.AddNotification(notifyType)).To(Succeed())
	}

	g.Expect(notifgraph.Subscribe(left, head)).To(Succeed())
	g.Expect(notifgraph.Subscribe(right, head)).To(Succeed())
	g.Expect(notifgraph.Subscribe(tail, left)).To(Succeed())
	g.Expect(notifgraph.Subscribe(tail, right)).To(Succeed())

	leftHandle, err := left.Attr(notifyType)
	g.Expect(err).NotTo(HaveOccurred())
	rightHandle, err := right.Attr(notifyType)
	g.Expect(err).NotTo(HaveOccurred())
	tailHandle, err := tail.Attr(notifyType)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(leftHandle.Set("activate", true)).To(Succeed())
	g.Expect(rightHandle.Set("activate", true)).To(Succeed())

	value, err := tailHandle.Get("activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(BeTrue())

	g.Expect(leftHandle.Set("activate", false)).To(Succeed())
	value, err = tailHandle.Get("activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(BeTrue(), "tail must stay active while right is still active")

	g.Expect(rightHandle.Set("activate", false)).To(Succeed())
	value, err = tailHandle.Get("activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(BeFalse())
}

// S3: subscribing to an already-active notifier immediately picks up the
// active value via PreSubscribe.
func TestNotifySubscribersPreSubscribeCarriesActiveState(test *testing.T) {
	g := NewGomegaWithT(test)

	notifyType := notifgraph.NewType("join", behaviors.NewNotifySubscribers("activate"), nil)

	a := notifgraph.NewItem()
	b := notifgraph.NewItem()
	g.Expect(a.AddNotification(notifyType)).To(Succeed())
	g.Expect(b.AddNotification(notifyType)).To(Succeed())

	handleA, err := a.Attr(notifyType)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(handleA.Set("activate", true)).To(Succeed())

	g.Expect(notifgraph.Subscribe(b, a)).To(Succeed())

	handleB, err := b.Attr(notifyType)
	g.Expect(err).NotTo(HaveOccurred())
	value, err := handleB.Get("activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(BeTrue())
}

// Subscribing an item to itself is rejected.
func TestNotifySubscribersRejectsSelfSubscription(test *testing.T) {
	g := NewGomegaWithT(test)

	a := notifgraph.NewItem()
	err := notifgraph.Subscribe(a, a)
	g.Expect(err).To(HaveOccurred())
	var selfErr *notifgraph.SelfSubscriptionError
	g.Expect(err).To(BeAssignableToTypeOf(selfErr))
}

// S5: subscribing within the same graph along an already-existing reverse
// path is rejected as a cycle.
func TestSubscribeRejectsCycle(test *testing.T) {
	g := NewGomegaWithT(test)

	a := notifgraph.NewItem()
	b := notifgraph.NewItem()
	c := notifgraph.NewItem()

	g.Expect(notifgraph.Subscribe(b, a)).To(Succeed())
	g.Expect(notifgraph.Subscribe(c, b)).To(Succeed())

	err := notifgraph.Subscribe(a, c)
	g.Expect(err).To(HaveOccurred())
	var cycleErr *notifgraph.CircularSubscriptionError
	g.Expect(err).To(BeAssignableToTypeOf(cycleErr))
}
