// Copyright (c) 2024 The IF-ACT Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "notifgraphsim",
		Short:         "Replay notification-graph scenarios described in a YAML file",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newValidateCommand())
	return root
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Build the graph described by a scenario and print the resulting attribute state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			if err := validateScenario(s); err != nil {
				return err
			}
			items, order, err := buildGraph(s)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderGraph(s, items, order))
			return nil
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file for structural errors without building a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			if err := validateScenario(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "scenario is valid")
			return nil
		},
	}
}
