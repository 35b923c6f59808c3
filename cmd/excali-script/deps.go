package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lonelycodes/excali-script/internal/graph"
)

// newDepsCmd queries a graph persisted with --graph-db.
func newDepsCmd(flags *rootFlags) *cobra.Command {
	var upstream bool
	var depth int

	cmd := &cobra.Command{
		Use:   "deps <file>",
		Short: "Print the dependency chains of a file from a graph persisted with --graph-db",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.GraphDB == "" {
				return fmt.Errorf("--graph-db is required")
			}
			ctx := cmd.Context()

			store, err := openGraphDB(flags.GraphDB)
			if err != nil {
				return err
			}
			defer store.Close()

			nodeID := args[0]
			f, err := store.GetFile(ctx, nodeID)
			if err != nil {
				return err
			}
			if f == nil {
				if abs, err := graph.NewResolver(nil).Canonicalize(filepath.Clean(nodeID)); err == nil {
					nodeID = abs
				}
			}

			direction := graph.DirectionDownstream
			if upstream {
				direction = graph.DirectionUpstream
			}
			chains, err := store.GetDependencies(ctx, nodeID, direction, depth)
			if err != nil {
				return fmt.Errorf("get dependencies: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, c := range chains {
				fmt.Fprintf(out, "%d  %s\n", c.Depth, strings.Join(c.Nodes, " -> "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&upstream, "upstream", false, "list importers instead of imports")
	cmd.Flags().IntVar(&depth, "depth", 5, "maximum traversal depth")
	return cmd
}
