// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

// Package behaviors provides the two built-in notifgraph.Behavior
// implementations: NotifySubscribers, a sticky boolean-OR propagator, and
// CountAttribute, an additive counter that can observe writes made through
// an unrelated behavior via the interest-dispatch mechanism. Both are
// grounded in, and should remain behaviorally identical to, the reference
// propagation logic they were ported from.
package behaviors
