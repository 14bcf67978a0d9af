// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package behaviors_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/IF-ACT/notification-graph/behaviors"
	"github.com/IF-ACT/notification-graph/notifgraph"
)

// A direct write to a counter's storage attribute propagates the delta to
// every subscriber.
func TestCountAttributeDirectWritePropagates(test *testing.T) {
	g := NewGomegaWithT(test)

	counterType := notifgraph.NewType("counters", behaviors.NewCountAttribute(map[string]behaviors.CountSpec{
		"activate": {CountName: "count_activate"},
	}), nil)

	root := notifgraph.NewItem()
	leaf := notifgraph.NewItem()
	g.Expect(root.AddNotification(counterType)).To(Succeed())
	g.Expect(leaf.AddNotification(counterType)).To(Succeed())
	g.Expect(notifgraph.Subscribe(leaf, root)).To(Succeed())

	rootHandle, err := root.Attr(counterType)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rootHandle.Set("count_activate", 3)).To(Succeed())

	leafHandle, err := leaf.Attr(counterType)
	g.Expect(err).NotTo(HaveOccurred())
	value, err := leafHandle.Get("count_activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(Equal(3))

	g.Expect(rootHandle.Set("count_activate", 5)).To(Succeed())
	value, err = leafHandle.Get("count_activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(Equal(5))
}

// S8: a CountAttribute bound under the same identifier as a
// NotifySubscribers on other items observes "activate" writes via interest
// dispatch, independent of which item actually owns the write.
func TestCountAttributeObservesNotifySubscribersWrites(test *testing.T) {
	g := NewGomegaWithT(test)

	pointType := notifgraph.NewType("red_point", behaviors.NewNotifySubscribers("activate"), nil)
	counterType := notifgraph.NewType("red_point", behaviors.NewCountAttribute(map[string]behaviors.CountSpec{
		"activate": {CountName: "count_activate"},
	}), nil)

	pointA := notifgraph.NewItem()
	pointB := notifgraph.NewItem()
	counter := notifgraph.NewItem()
	g.Expect(pointA.AddNotification(pointType)).To(Succeed())
	g.Expect(pointB.AddNotification(pointType)).To(Succeed())
	g.Expect(counter.AddNotification(counterType)).To(Succeed())

	g.Expect(notifgraph.Subscribe(counter, pointA)).To(Succeed())
	g.Expect(notifgraph.Subscribe(counter, pointB)).To(Succeed())

	handleA, err := pointA.Attr(pointType)
	g.Expect(err).NotTo(HaveOccurred())
	handleB, err := pointB.Attr(pointType)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(handleA.Set("activate", true)).To(Succeed())

	counterHandle, err := counter.Attr(counterType)
	g.Expect(err).NotTo(HaveOccurred())
	value, err := counterHandle.Get("count_activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(Equal(1))

	g.Expect(handleB.Set("activate", true)).To(Succeed())
	value, err = counterHandle.Get("count_activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(Equal(2))

	g.Expect(handleA.Set("activate", false)).To(Succeed())
	value, err = counterHandle.Get("count_activate")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(value).To(Equal(1))
}
