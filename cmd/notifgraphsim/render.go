// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/IF-ACT/notification-graph/notifgraph"
)

var (
	itemStyle     = lipgloss.NewStyle().Bold(true)
	headBadge     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Render("[head]")
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderGraph prints one block per item, in scenario declaration order,
// showing whether it is the graph's head and the gathered value of every
// attribute its notification specs mention.
func renderGraph(s *scenario, items map[string]*notifgraph.Item, order []string) string {
	var b strings.Builder
	for _, id := range order {
		item := items[id]
		line := itemStyle.Render(id)
		if item.IsHead() {
			line += " " + headBadge
		}
		b.WriteString(line)
		b.WriteString("\n")

		for _, n := range findItemSpec(s, id).Notifications {
			handle, err := item.AttrByIdentifier(n.Identifier)
			if err != nil {
				continue
			}
			switch n.Behavior {
			case "notify_subscribers":
				value, err := handle.Get(n.Attribute)
				if err != nil {
					continue
				}
				b.WriteString("  " + renderBool(n.Attribute, value) + "\n")
			case "count_attribute":
				for _, c := range n.Counts {
					value, err := handle.Get(c.Storage)
					if err != nil {
						continue
					}
					fmt.Fprintf(&b, "  %s = %v\n", c.Storage, value)
				}
			}
		}
	}
	return b.String()
}

func renderBool(name string, value any) string {
	active, _ := value.(bool)
	style := inactiveStyle
	if active {
		style = activeStyle
	}
	return style.Render(fmt.Sprintf("%s = %v", name, active))
}

func findItemSpec(s *scenario, id string) itemSpec {
	for _, item := range s.Items {
		if item.ID == id {
			return item
		}
	}
	return itemSpec{}
}
