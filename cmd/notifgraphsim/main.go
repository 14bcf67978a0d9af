// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

// Command notifgraphsim loads a YAML scenario file describing a small
// notification graph and either validates it or builds and prints it. It
// exists as a demo/debug surface over the notifgraph and behaviors
// packages; it holds no state across invocations.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
