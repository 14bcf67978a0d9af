// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

import (
	"iter"

	"github.com/IF-ACT/notification-graph/internal/worklist"
)

// Direction selects which edge set WalkThrough follows.
type Direction int

const (
	// Upstream follows notifier edges: from an item to the items it
	// depends on.
	Upstream Direction = iota
	// Downstream follows subscriber edges: from an item to the items
	// that depend on it.
	Downstream
)

// WalkThrough returns a lazy, depth-first traversal of item's graph
// starting at item (exclusive) and following dir. The walk never visits an
// item twice; when item's graph is known to be a tree (Graph.IsTree), the
// visited-set bookkeeping is skipped since no path can reconverge.
//
// Callers stop the walk early in the usual range-over-func way (break out
// of the range loop); the underlying work-list is abandoned at that point.
func (item *Item) WalkThrough(dir Direction) iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		tree := item.graph != nil && item.graph.isTree
		var visited worklist.VisitSet[*Item]
		if !tree {
			visited = worklist.NewVisitSet[*Item]()
			visited.Visit(item)
		}

		stack := worklist.New[*Item](8)
		pushNeighbors(stack, item, dir)

		for {
			cur, ok := stack.Pop()
			if !ok {
				return
			}
			if !tree {
				if !visited.Visit(cur) {
					continue
				}
			}
			if !yield(cur) {
				return
			}
			pushNeighbors(stack, cur, dir)
		}
	}
}

func pushNeighbors(stack *worklist.Stack[*Item], item *Item, dir Direction) {
	switch dir {
	case Upstream:
		for n := range item.notifiers {
			stack.Push(n)
		}
	case Downstream:
		for s := range item.subscribers {
			stack.Push(s)
		}
	}
}

// HasSubscription reports whether item subscribes to other. When
// findIndirect is false, only a direct edge counts. When true, the full
// upstream closure is searched.
func (item *Item) HasSubscription(other *Item, findIndirect bool) bool {
	if !findIndirect {
		_, ok := item.notifiers[other]
		return ok
	}
	for n := range item.WalkThrough(Upstream) {
		if n == other {
			return true
		}
	}
	return false
}
