// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

import (
	"iter"

	uuid "github.com/satori/go.uuid"

	"github.com/IF-ACT/notification-graph/internal/notiflog"
)

// interestKey is the (identifier, attribute-name) pair a Graph's interest
// index is keyed on -- see SPEC_FULL.md §4.3.
type interestKey struct {
	identifier Identifier
	attribute  string
}

// Graph is a short-lived descriptor of one weakly-connected component of
// the notification graph. It is never stable across a merge: the losing
// side of a merge is marked destroyed, and MaybeSplit on it fails with
// *GraphDestroyedError. The plain accessors (IsTree, Head, MultiHeadCount,
// Len, Items) do not check the destroyed flag.
type Graph struct {
	id string

	items map[*Item]struct{}

	// registry maps a behavior to the set of notification-type
	// identifiers bound to it by at least one member item.
	registry map[Behavior]map[Identifier]struct{}

	// interestedAttrs caches Behavior.InterestedAttributes(), read once
	// per behavior the first time it enters this graph.
	interestedAttrs map[Behavior][]string

	// interestIndex is rebuilt from registry+interestedAttrs whenever
	// either changes.
	interestIndex map[interestKey]map[Behavior]struct{}

	isTree         bool
	head           *Item
	multiHeadCount int

	destroyed bool
	txOpen    bool // reentrancy guard for Subscribe/Unsubscribe, see §5
}

func newGraph() *Graph {
	id, err := uuid.NewV4()
	idStr := "graph-unknown"
	if err == nil {
		idStr = "graph-" + id.String()[:8]
	}
	g := &Graph{
		id:              idStr,
		items:           make(map[*Item]struct{}),
		registry:        make(map[Behavior]map[Identifier]struct{}),
		interestedAttrs: make(map[Behavior][]string),
		interestIndex:   make(map[interestKey]map[Behavior]struct{}),
		multiHeadCount:  1,
	}
	defaultMetrics.GraphCreated()
	defaultMetrics.ActiveGraphs(1)
	notiflog.ForGraph(g.id).Trace("graph created")
	return g
}

// IsTree reports whether the graph's edges currently form a tree rooted at
// Head().
func (g *Graph) IsTree() bool {
	return g.isTree
}

// Head returns the unique item with zero subscribers in this graph, or nil
// if there is none or more than one (MultiHeadCount() > 1).
func (g *Graph) Head() *Item {
	return g.head
}

// MultiHeadCount returns the number of "head-like" items (items with zero
// subscribers) currently in the graph.
func (g *Graph) MultiHeadCount() int {
	return g.multiHeadCount
}

// Len returns the number of member items.
func (g *Graph) Len() int {
	return len(g.items)
}

// Items returns an iterator over the graph's member items, in unspecified
// order.
func (g *Graph) Items() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for item := range g.items {
			if !yield(item) {
				return
			}
		}
	}
}

// checkAlive returns a *GraphDestroyedError if the graph has been merged
// away, nil otherwise. MaybeSplit and AttributeHandle.Set call it first;
// the plain accessors do not.
func (g *Graph) checkAlive() error {
	if g.destroyed {
		return &GraphDestroyedError{GraphID: g.id}
	}
	return nil
}

// addItem inserts item into the graph's member set and retargets its
// back-reference, without touching edges.
func (g *Graph) addItem(item *Item) {
	g.items[item] = struct{}{}
	item.graph = g
	for identifier, behavior := range item.behaviors {
		g.registerIdentifier(identifier, behavior, item)
	}
}

// registerIdentifier records that identifier is bound to behavior by at
// least one member item, caching behavior's interested attributes the
// first time behavior is seen, and rebuilds the interest index.
func (g *Graph) registerIdentifier(identifier Identifier, behavior Behavior, item *Item) {
	ids, ok := g.registry[behavior]
	if !ok {
		ids = make(map[Identifier]struct{})
		g.registry[behavior] = ids
		g.interestedAttrs[behavior] = behavior.InterestedAttributes()
	}
	ids[identifier] = struct{}{}
	g.rebuildInterestIndex()
}

// rebuildInterestIndex recomputes interestIndex from the current registry
// and cached interestedAttrs: each behavior's cached interest list is
// crossed only against the identifiers that behavior is itself bound to
// in this graph (g.registry[behavior]), matching relatedIdentifiers.
func (g *Graph) rebuildInterestIndex() {
	index := make(map[interestKey]map[Behavior]struct{})
	for behavior, attrs := range g.interestedAttrs {
		for _, attr := range attrs {
			for id := range g.registry[behavior] {
				key := interestKey{identifier: id, attribute: attr}
				set, ok := index[key]
				if !ok {
					set = make(map[Behavior]struct{})
					index[key] = set
				}
				set[behavior] = struct{}{}
			}
		}
	}
	g.interestIndex = index
}

// dispatchInterest invokes SetAttribute on every behavior interested in
// (identifier, name), in unspecified order, before the owning behavior's
// own write -- see SPEC_FULL.md §4.3. It returns the first non-nil error
// encountered, after still giving every interested behavior a chance to
// run; attribute-level errors propagate to the caller verbatim rather than
// being swallowed.
func (g *Graph) dispatchInterest(item *Item, identifier Identifier, name string, value any) error {
	key := interestKey{identifier: identifier, attribute: name}
	interested := g.interestIndex[key]
	if len(interested) == 0 {
		return nil
	}
	handle := &AttributeHandle{
		set:        item.attributeSetFor(identifier, true),
		behavior:   item.behaviors[identifier],
		item:       item,
		identifier: identifier,
	}
	var firstErr error
	for behavior := range interested {
		defaultMetrics.PropagationStep()
		if err := behavior.SetAttribute(handle, name, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// relatedIdentifiers returns the identifier set registered to behavior in
// this graph, suitable for passing to PreSubscribe/PreUnsubscribe.
func (g *Graph) relatedIdentifiers(behavior Behavior) map[Identifier]struct{} {
	out := make(map[Identifier]struct{}, len(g.registry[behavior]))
	for id := range g.registry[behavior] {
		out[id] = struct{}{}
	}
	return out
}
