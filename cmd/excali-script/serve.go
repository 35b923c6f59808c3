package main

import (
	"github.com/spf13/cobra"

	"github.com/lonelycodes/excali-script/internal/mcptools"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio by default, HTTP with --http)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(".", *flags)
			if err != nil {
				return err
			}

			newStore := mcptools.MemStoreFactory
			if flags.GraphDB != "" {
				newStore = graphDBFactory(flags.GraphDB)
			}

			svc := mcptools.NewDiagramService(cfg.Options(), newStore, logger)
			defer svc.Close()

			if addr != "" {
				logger.Info("serving MCP over HTTP", "addr", addr)
				return mcptools.RunMCPServer(ctx, svc, addr)
			}
			logger.Debug("serving MCP over stdio")
			return mcptools.RunMCPServerStdio(ctx, svc)
		},
	}
	cmd.Flags().StringVar(&addr, "http", "", "listen address for the streamable HTTP transport (e.g. :8080)")
	return cmd
}
