// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/IF-ACT/notification-graph/notifgraph"
)

type cloneableList struct {
	values []int
}

func (c *cloneableList) Clone() any {
	cloned := make([]int, len(c.values))
	copy(cloned, c.values)
	return &cloneableList{values: cloned}
}

func TestAddNotificationDeepCopiesGobDefaults(test *testing.T) {
	g := NewGomegaWithT(test)

	shared := []int{1, 2, 3}
	typ := notifgraph.NewType("gob-default", stubBehavior{}, map[string]any{"values": shared})

	first := notifgraph.NewItem()
	second := notifgraph.NewItem()
	g.Expect(first.AddNotification(typ)).To(Succeed())
	g.Expect(second.AddNotification(typ)).To(Succeed())

	firstHandle, err := first.Attr(typ)
	g.Expect(err).NotTo(HaveOccurred())
	firstValue, err := firstHandle.Get("values")
	g.Expect(err).NotTo(HaveOccurred())
	firstSlice := firstValue.([]int)
	firstSlice[0] = 99

	secondHandle, err := second.Attr(typ)
	g.Expect(err).NotTo(HaveOccurred())
	secondValue, err := secondHandle.Get("values")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(secondValue.([]int)[0]).To(Equal(1), "mutating one item's default must not affect another's")
}

func TestAddNotificationUsesCloneableInterface(test *testing.T) {
	g := NewGomegaWithT(test)

	typ := notifgraph.NewType("cloneable-default", stubBehavior{}, map[string]any{
		"list": &cloneableList{values: []int{4, 5}},
	})

	item := notifgraph.NewItem()
	g.Expect(item.AddNotification(typ)).To(Succeed())

	handle, err := item.Attr(typ)
	g.Expect(err).NotTo(HaveOccurred())
	value, err := handle.Get("list")
	g.Expect(err).NotTo(HaveOccurred())

	list, ok := value.(*cloneableList)
	g.Expect(ok).To(BeTrue())
	g.Expect(list.values).To(Equal([]int{4, 5}))
}
