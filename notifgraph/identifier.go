// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package notifgraph

// Identifier names a NotificationType. It must be comparable (usable as a
// map key) -- strings and small value types are the common case, mirroring
// how the source keys notification types by plain hashable values.
//
// Passing a non-comparable value (a slice, map, or function) will panic the
// first time it is used as a map key, the same way it would panic anywhere
// else in Go; this package does not attempt to detect that ahead of time.
type Identifier = any
