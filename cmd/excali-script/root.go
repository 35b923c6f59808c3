package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lonelycodes/excali-script/internal/config"
	"github.com/lonelycodes/excali-script/internal/export"
	"github.com/lonelycodes/excali-script/internal/graph"
)

// rootFlags are the flags shared by every command.
type rootFlags struct {
	Output      string
	ConfigPath  string
	Format      string
	Strict      bool
	Concurrency int
	Exclude     []string
	GraphDB     string
	Verbose     bool
	FailFast    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "excali-script [flags] <dir>",
		Short:         "Draw the import graph of a JavaScript/TypeScript project as an Excalidraw diagram",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := log.InfoLevel
			if flags.Verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], flags, cmd.OutOrStdout())
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default: <dir>/excali.yml)")
	pf.StringVar(&flags.GraphDB, "graph-db", "", "persist the dependency graph to a KuzuDB database at this path")
	pf.BoolVar(&flags.Strict, "strict", false, "resolve relative imports by exact path only")
	pf.IntVar(&flags.Concurrency, "concurrency", 0, "files parsed in parallel (default: GOMAXPROCS)")
	pf.StringSliceVar(&flags.Exclude, "exclude", nil, "directory names to skip (default: .git,node_modules)")

	f := root.Flags()
	f.StringVarP(&flags.Output, "output", "o", "", `output file, "-" for stdout (default: <dir-name>.excalidraw)`)
	f.StringVar(&flags.Format, "format", "", "output format: excalidraw, mermaid or json")
	f.BoolVar(&flags.FailFast, "fail-fast", false, "exit with an error if any file is skipped")

	root.AddCommand(newServeCmd(&flags))
	root.AddCommand(newDepsCmd(&flags))
	return root
}

// loadConfig reads the config named by --config, or the one in dir, and
// applies the command-line overrides.
func loadConfig(dir string, flags rootFlags) (*config.ProjectConfig, error) {
	var cfg *config.ProjectConfig
	var err error
	if flags.ConfigPath != "" {
		cfg, err = config.LoadFile(flags.ConfigPath)
	} else {
		cfg, err = config.Load(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.Format != "" {
		cfg.Format = flags.Format
	}
	if flags.Strict {
		cfg.Strict = true
	}
	if flags.Concurrency > 0 {
		cfg.Concurrency = flags.Concurrency
	}
	if len(flags.Exclude) > 0 {
		cfg.ExcludeDirs = flags.Exclude
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRender(ctx context.Context, dir string, flags rootFlags, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(dir, flags)
	if err != nil {
		return err
	}

	opts := cfg.Options()
	opts.Logger = logger
	opts.OnProgress = func(ev graph.ProgressEvent) {
		logger.Debug("file processed", "path", ev.Path, "status", ev.Status, "done", ev.Done, "total", ev.Total)
	}

	prog := newProgress(logger)
	res, err := export.Render(ctx, dir, opts)
	if err != nil {
		return err
	}
	reportBuild(logger, res)

	if flags.FailFast && len(res.Build.Diagnostics) > 0 {
		return fmt.Errorf("%d file(s) skipped", len(res.Build.Diagnostics))
	}

	out := cfg.OutputPath(dir)
	if flags.Output != "" {
		out = flags.Output
	}
	if out == export.Stdout {
		err = export.Encode(stdout, cfg.OutputFormat(), res)
	} else {
		err = export.WriteFile(out, cfg.OutputFormat(), res)
	}
	if err != nil {
		return err
	}

	if flags.GraphDB != "" {
		if err := persistGraph(ctx, flags.GraphDB, res.Graph()); err != nil {
			return fmt.Errorf("persist graph: %w", err)
		}
		logger.Info("graph persisted", "path", flags.GraphDB)
	}

	if out != export.Stdout {
		prog.done(fmt.Sprintf("Wrote %s", out))
	}
	return nil
}

// reportBuild logs graph statistics and every skipped file.
func reportBuild(logger *log.Logger, res *export.Result) {
	for _, d := range res.Build.Diagnostics {
		logger.Warn("skipped file", "path", d.Path, "kind", d.Kind, "err", d.Err)
	}
	stats := res.Stats()
	logger.Info("dependency graph built",
		"files", stats.FileCount,
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"unresolved", stats.UnresolvedCount,
		"skipped", len(res.Build.Diagnostics),
	)
}
