// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/IF-ACT/notification-graph/behaviors"
	"github.com/IF-ACT/notification-graph/notifgraph"
)

// scenario is the on-disk YAML description of a small notification graph:
// the items it contains, the subscriptions wiring them together, and the
// attribute writes to replay against it.
type scenario struct {
	Items         []itemSpec         `yaml:"items"`
	Subscriptions []subscriptionSpec `yaml:"subscriptions"`
	Sets          []setSpec          `yaml:"sets"`
}

type itemSpec struct {
	ID            string             `yaml:"id"`
	Notifications []notificationSpec `yaml:"notifications"`
}

type notificationSpec struct {
	Identifier string      `yaml:"identifier"`
	Behavior   string      `yaml:"behavior"`
	Attribute  string      `yaml:"attribute,omitempty"`
	Counts     []countSpec `yaml:"counts,omitempty"`
}

type countSpec struct {
	Attribute string `yaml:"attribute"`
	Storage   string `yaml:"storage"`
}

type subscriptionSpec struct {
	Subscriber string `yaml:"subscriber"`
	Notifier   string `yaml:"notifier"`
}

type setSpec struct {
	Item       string `yaml:"item"`
	Identifier string `yaml:"identifier"`
	Attribute  string `yaml:"attribute"`
	Value      any    `yaml:"value"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

// validateScenario checks structural well-formedness (unique item IDs,
// known behavior names, no self-subscriptions, no dangling references)
// without building a graph.
func validateScenario(s *scenario) error {
	ids := make(map[string]struct{}, len(s.Items))
	notifications := make(map[string]map[string]struct{}, len(s.Items))
	for _, item := range s.Items {
		if item.ID == "" {
			return fmt.Errorf("item missing id")
		}
		if _, dup := ids[item.ID]; dup {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		ids[item.ID] = struct{}{}
		notifications[item.ID] = make(map[string]struct{}, len(item.Notifications))
		for _, n := range item.Notifications {
			notifications[item.ID][n.Identifier] = struct{}{}
			switch n.Behavior {
			case "notify_subscribers":
				if n.Attribute == "" {
					return fmt.Errorf("item %q: notify_subscribers requires an attribute", item.ID)
				}
			case "count_attribute":
				if len(n.Counts) == 0 {
					return fmt.Errorf("item %q: count_attribute requires at least one count", item.ID)
				}
			default:
				return fmt.Errorf("item %q: unknown behavior %q", item.ID, n.Behavior)
			}
		}
	}
	for _, sub := range s.Subscriptions {
		if _, ok := ids[sub.Subscriber]; !ok {
			return fmt.Errorf("subscription references unknown item %q", sub.Subscriber)
		}
		if _, ok := ids[sub.Notifier]; !ok {
			return fmt.Errorf("subscription references unknown item %q", sub.Notifier)
		}
		if sub.Subscriber == sub.Notifier {
			return fmt.Errorf("item %q cannot subscribe to itself", sub.Subscriber)
		}
	}
	for _, set := range s.Sets {
		if _, ok := ids[set.Item]; !ok {
			return fmt.Errorf("set references unknown item %q", set.Item)
		}
		if _, ok := notifications[set.Item][set.Identifier]; !ok {
			return fmt.Errorf("set on item %q references unknown notification type %q", set.Item, set.Identifier)
		}
	}
	return nil
}

type typeKey struct {
	identifier string
	behavior   string
	attribute  string
}

// buildGraph materializes a scenario against the real notifgraph API,
// sharing one NotificationType (and Behavior instance) across every item
// spec with identical identifier/behavior/attribute, and returns the items
// keyed by their scenario ID, in declaration order.
func buildGraph(s *scenario) (map[string]*notifgraph.Item, []string, error) {
	items := make(map[string]*notifgraph.Item, len(s.Items))
	order := make([]string, 0, len(s.Items))
	types := make(map[typeKey]*notifgraph.NotificationType)

	for _, spec := range s.Items {
		item := notifgraph.NewItem()
		items[spec.ID] = item
		order = append(order, spec.ID)

		for _, n := range spec.Notifications {
			key := typeKey{identifier: n.Identifier, behavior: n.Behavior, attribute: n.Attribute}
			typ, ok := types[key]
			if !ok {
				behavior, err := buildBehavior(n)
				if err != nil {
					return nil, nil, err
				}
				typ = notifgraph.NewType(n.Identifier, behavior, nil)
				types[key] = typ
			}
			if err := item.AddNotification(typ); err != nil {
				return nil, nil, fmt.Errorf("item %q: %w", spec.ID, err)
			}
		}
	}

	for _, sub := range s.Subscriptions {
		if err := notifgraph.Subscribe(items[sub.Subscriber], items[sub.Notifier]); err != nil {
			return nil, nil, fmt.Errorf("subscribe %q -> %q: %w", sub.Subscriber, sub.Notifier, err)
		}
	}

	for _, set := range s.Sets {
		handle, err := items[set.Item].AttrByIdentifier(set.Identifier)
		if err != nil {
			return nil, nil, fmt.Errorf("set %q on %q: %w", set.Attribute, set.Item, err)
		}
		if err := handle.Set(set.Attribute, set.Value); err != nil {
			return nil, nil, fmt.Errorf("set %q on %q: %w", set.Attribute, set.Item, err)
		}
	}

	return items, order, nil
}

func buildBehavior(n notificationSpec) (notifgraph.Behavior, error) {
	switch n.Behavior {
	case "notify_subscribers":
		return behaviors.NewNotifySubscribers(n.Attribute), nil
	case "count_attribute":
		spec := make(map[string]behaviors.CountSpec, len(n.Counts))
		for _, c := range n.Counts {
			spec[c.Attribute] = behaviors.CountSpec{CountName: c.Storage}
		}
		return behaviors.NewCountAttribute(spec), nil
	default:
		return nil, fmt.Errorf("unknown behavior %q", n.Behavior)
	}
}
