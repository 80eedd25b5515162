// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
pep508check is a small demonstration CLI for the marker engine: it parses
PEP 508 environment markers and runs the canonical operations (and, or,
disjointness, extras projection) against them, printing a one-line verdict
for each result.
*/
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"pep508.dev/marker/marker"
	"pep508.dev/marker/marker/parse"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pep508check",
		Short:         "Inspect PEP 508 environment markers through the canonical decision engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newAndCmd())
	root.AddCommand(newOrCmd())
	root.AddCommand(newDisjointCmd())
	root.AddCommand(newExtrasCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <marker>",
		Short: "Report whether a marker is satisfiable, a tautology, or a contradiction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := marker.NewInterner()
			id, err := parse.Parse(in, args[0])
			if err != nil {
				return err
			}
			printVerdict(cmd, id)
			return nil
		},
	}
}

func newAndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "and <marker> <marker>",
		Short: "Report whether the conjunction of two markers is satisfiable, a tautology, or a contradiction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := marker.NewInterner()
			x, y, err := parsePair(in, args[0], args[1])
			if err != nil {
				return err
			}
			printVerdict(cmd, in.And(x, y))
			return nil
		},
	}
}

func newOrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "or <marker> <marker>",
		Short: "Report whether the disjunction of two markers is satisfiable, a tautology, or a contradiction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := marker.NewInterner()
			x, y, err := parsePair(in, args[0], args[1])
			if err != nil {
				return err
			}
			printVerdict(cmd, in.Or(x, y))
			return nil
		},
	}
}

func newDisjointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disjoint <marker> <marker>",
		Short: "Report whether two markers share no satisfying environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := marker.NewInterner()
			x, y, err := parsePair(in, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), in.IsDisjoint(x, y))
			return nil
		},
	}
}

func newExtrasCmd() *cobra.Command {
	var without, only bool
	cmd := &cobra.Command{
		Use:   "extras <marker>",
		Short: "Project a marker without or onto its extra decisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if without == only {
				return fmt.Errorf("exactly one of --without or --only must be set")
			}
			in := marker.NewInterner()
			id, err := parse.Parse(in, args[0])
			if err != nil {
				return err
			}
			if without {
				printVerdict(cmd, in.WithoutExtras(id))
			} else {
				printVerdict(cmd, in.OnlyExtras(id))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&without, "without", false, "eliminate extra decisions")
	cmd.Flags().BoolVar(&only, "only", false, "keep only extra decisions")
	return cmd
}

func parsePair(in *marker.Interner, a, b string) (marker.NodeId, marker.NodeId, error) {
	x, err := parse.Parse(in, a)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing %q: %w", a, err)
	}
	y, err := parse.Parse(in, b)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing %q: %w", b, err)
	}
	return x, y, nil
}

func printVerdict(cmd *cobra.Command, id marker.NodeId) {
	w := cmd.OutOrStdout()
	switch {
	case id.IsTrue():
		fmt.Fprintln(w, "always true")
	case id.IsFalse():
		fmt.Fprintln(w, "always false (unsatisfiable)")
	default:
		fmt.Fprintln(w, "satisfiable")
	}
}
