// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

import (
	"github.com/IF-ACT/notification-graph/internal/notiflog"
	"github.com/IF-ACT/notification-graph/internal/worklist"
)

// Subscribe creates a subscription edge: subscriber starts depending on
// notifier. It classifies the pre-transaction state of the two items
// (isolated vs. already graphed, same graph vs. different graphs), merges
// graphs as needed, runs every affected behavior's PreSubscribe hook, then
// inserts the edge and recomputes the resulting graph's tree/head
// classification.
//
// Subscribing an item to itself fails with *SelfSubscriptionError.
// Subscribing within a single graph along an existing reverse path fails
// with *CircularSubscriptionError. Calling Subscribe/Unsubscribe from
// inside a PreSubscribe/PreUnsubscribe hook on an item whose graph has a
// transaction open fails with *ReentrantTransactionError; a call from a hook
// that touches only isolated items or items of other graphs is not detected.
// Outside a hook, subscribing an already-existing edge is a no-op.
func Subscribe(subscriber, notifier *Item) error {
	if subscriber == notifier {
		return &SelfSubscriptionError{Item: subscriber}
	}

	gs := subscriber.graph
	gn := notifier.graph

	for _, g := range distinctGraphs(gs, gn) {
		if g.txOpen {
			return &ReentrantTransactionError{GraphID: g.id}
		}
	}

	if _, already := subscriber.notifiers[notifier]; already {
		return nil
	}

	if gs != nil && gn != nil && gs == gn {
		if reachableViaNotifiers(notifier, subscriber) {
			defaultMetrics.CycleRejected()
			return &CircularSubscriptionError{Subscriber: subscriber, Notifier: notifier}
		}
	}

	for _, g := range distinctGraphs(gs, gn) {
		g.txOpen = true
	}

	target := mergeForSubscribe(subscriber, notifier, gs, gn)
	target.txOpen = true

	for _, behavior := range collectBehaviors(target) {
		behavior.PreSubscribe(subscriber, notifier, target.relatedIdentifiers(behavior))
	}

	subscriber.notifiers[notifier] = struct{}{}
	notifier.subscribers[subscriber] = struct{}{}

	target.recomputeTreeAndHeads()
	target.txOpen = false
	notiflog.ForItem(target.id, subscriber.id).Tracef("subscribed to %s", notifier.id)
	return nil
}

// Unsubscribe removes a subscription edge previously created by Subscribe.
// It fails with *NotANotifierError if subscriber does not currently
// subscribe to notifier. The owning graph is never split automatically;
// callers that care about fission call (*Graph).MaybeSplit afterwards.
func Unsubscribe(subscriber, notifier *Item) error {
	if subscriber == notifier {
		return &SelfSubscriptionError{Item: subscriber}
	}
	if _, ok := subscriber.notifiers[notifier]; !ok {
		return &NotANotifierError{Subscriber: subscriber, Notifier: notifier}
	}

	g := subscriber.graph
	if g != nil {
		if g.txOpen {
			return &ReentrantTransactionError{GraphID: g.id}
		}
		g.txOpen = true
	}

	if g != nil {
		for _, behavior := range collectBehaviors(g) {
			behavior.PreUnsubscribe(subscriber, notifier, g.relatedIdentifiers(behavior))
		}
	}

	delete(subscriber.notifiers, notifier)
	delete(notifier.subscribers, subscriber)

	if g != nil {
		g.recomputeTreeAndHeads()
		g.txOpen = false
		notiflog.ForItem(g.id, subscriber.id).Tracef("unsubscribed from %s", notifier.id)
	}
	return nil
}

// distinctGraphs returns the distinct non-nil graphs among gs and gn.
func distinctGraphs(gs, gn *Graph) []*Graph {
	switch {
	case gs == nil && gn == nil:
		return nil
	case gs == nil:
		return []*Graph{gn}
	case gn == nil:
		return []*Graph{gs}
	case gs == gn:
		return []*Graph{gs}
	default:
		return []*Graph{gs, gn}
	}
}

// mergeForSubscribe performs whatever graph creation/absorption the
// pre-transaction classification calls for and returns the resulting
// graph, which always contains both subscriber and notifier.
func mergeForSubscribe(subscriber, notifier *Item, gs, gn *Graph) *Graph {
	switch {
	case gs == nil && gn == nil:
		g := newGraph()
		g.addItem(subscriber)
		g.addItem(notifier)
		return g
	case gs == nil:
		gn.addItem(subscriber)
		return gn
	case gn == nil:
		gs.addItem(notifier)
		return gs
	case gs == gn:
		return gs
	default:
		winner, loser := gs, gn
		if loser.Len() > winner.Len() {
			winner, loser = loser, winner
		}
		for item := range loser.items {
			winner.addItem(item)
		}
		loser.items = nil
		loser.destroyed = true
		defaultMetrics.GraphMerged()
		defaultMetrics.GraphDestroyedMetric()
		defaultMetrics.ActiveGraphs(-1)
		notiflog.ForGraph(loser.id).Tracef("absorbed into %s", winner.id)
		return winner
	}
}

// collectBehaviors returns the distinct behaviors currently registered to
// g, in unspecified order.
func collectBehaviors(g *Graph) []Behavior {
	out := make([]Behavior, 0, len(g.registry))
	for behavior := range g.registry {
		out = append(out, behavior)
	}
	return out
}

// reachableViaNotifiers reports whether target is reachable from start by
// following notifier edges (i.e. walking Upstream, through what start
// depends on). Used as the pre-Subscribe cycle check: subscriber may
// not subscribe to notifier if notifier already (transitively) depends on
// subscriber.
func reachableViaNotifiers(start, target *Item) bool {
	visited := worklist.NewVisitSet[*Item]()
	stack := worklist.New[*Item](8)
	stack.Push(start)
	for {
		cur, ok := stack.Pop()
		if !ok {
			break
		}
		if cur == target {
			return true
		}
		if !visited.Visit(cur) {
			continue
		}
		for n := range cur.notifiers {
			stack.Push(n)
		}
	}
	return false
}

// recomputeTreeAndHeads rebuilds the graph's head/multi-head/tree
// classification from the current edge set. An item with no subscribers is
// "head-like"; the graph is a tree when there is exactly one such item and
// the edge count equals items-1, which rules out the reconvergence a
// diamond subscription produces.
func (g *Graph) recomputeTreeAndHeads() {
	var heads []*Item
	edgeCount := 0
	for item := range g.items {
		edgeCount += len(item.notifiers)
		if len(item.subscribers) == 0 {
			heads = append(heads, item)
		}
	}
	g.multiHeadCount = len(heads)
	if len(heads) == 1 {
		g.head = heads[0]
	} else {
		g.head = nil
	}
	g.isTree = len(heads) == 1 && edgeCount == len(g.items)-1
}

// MaybeSplit recomputes connected components of the graph and, if it has
// fallen apart into more than one, reassigns member items across that many
// Graph objects. It is never invoked automatically by Unsubscribe: a graph
// that an unsubscribe has disconnected keeps a single Graph identity until
// a caller opts into repairing it, mirroring the engine's "never auto-split"
// default and giving callers a point to batch several unsubscribes before
// paying the connectivity walk.
func (g *Graph) MaybeSplit() ([]*Graph, error) {
	if err := g.checkAlive(); err != nil {
		return nil, err
	}

	components := connectedComponents(g.items)
	if len(components) <= 1 {
		return []*Graph{g}, nil
	}

	largest := 0
	for i, comp := range components {
		if len(comp) > len(components[largest]) {
			largest = i
		}
	}

	result := make([]*Graph, 0, len(components))
	for i, comp := range components {
		var target *Graph
		if i == largest {
			target = g
			target.items = make(map[*Item]struct{})
			target.registry = make(map[Behavior]map[Identifier]struct{})
			target.interestedAttrs = make(map[Behavior][]string)
			target.interestIndex = make(map[interestKey]map[Behavior]struct{})
		} else {
			target = newGraph()
		}
		for item := range comp {
			target.addItem(item)
		}
		target.recomputeTreeAndHeads()
		result = append(result, target)
	}
	notiflog.ForGraph(g.id).Infof("graph split into %d components", len(result))
	return result, nil
}

// connectedComponents partitions items by undirected (notifier or
// subscriber) reachability.
func connectedComponents(items map[*Item]struct{}) []map[*Item]struct{} {
	visited := worklist.NewVisitSet[*Item]()
	var components []map[*Item]struct{}
	for start := range items {
		if visited.Seen(start) {
			continue
		}
		comp := make(map[*Item]struct{})
		stack := worklist.New[*Item](8)
		stack.Push(start)
		for {
			cur, ok := stack.Pop()
			if !ok {
				break
			}
			if !visited.Visit(cur) {
				continue
			}
			comp[cur] = struct{}{}
			for n := range cur.notifiers {
				stack.Push(n)
			}
			for s := range cur.subscribers {
				stack.Push(s)
			}
		}
		components = append(components, comp)
	}
	return components
}
