// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

// Package notiflog wraps logrus with the field-tagging convention used
// throughout eve's pkg/pillar commands (log.WithField(...).Tracef(...)),
// scoped down to what the notification graph engine needs: per-graph
// correlation and a handful of named levels. It is a side channel only --
// nothing in notifgraph/behaviors depends on log output for correctness.
package notiflog

import "github.com/sirupsen/logrus"

// Logger is the package-wide logrus instance. Callers embedding this module
// in a larger service may reconfigure its level/output/hooks; the default
// matches logrus' own default (info level, text formatter to stderr).
var Logger = logrus.New()

// ForGraph returns a logrus.Entry tagged with the given graph's correlation
// ID, ready for Tracef/Debugf/Warnf/Errorf calls.
func ForGraph(graphID string) *logrus.Entry {
	return Logger.WithField("graph", graphID)
}

// ForItem returns a logrus.Entry tagged with both a graph and an item
// correlation ID, used by Subscribe/Unsubscribe for their per-edge trace
// lines.
func ForItem(graphID, itemID string) *logrus.Entry {
	return Logger.WithField("graph", graphID).WithField("item", itemID)
}
