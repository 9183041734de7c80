package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/config"
	"github.com/meikuraledutech/flow/stores"
)

// env is what every subcommand needs once flags are parsed.
type env struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     flow.Store
	snapshots *flow.Snapshots
	themes    *flow.Themes
	close     func()
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
		e          = &env{close: func() {}}
	)

	root := &cobra.Command{
		Use:          "flowctl",
		Short:        "Inspect and manage saved chatbot flows",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			logger, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			store, closeStore, err := stores.Open(cmd.Context(), cfg.Store, logger)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = logger
			e.store = store
			e.close = closeStore
			e.snapshots = flow.NewSnapshots(store,
				flow.WithSnapshotKey(cfg.SnapshotKey),
				flow.WithSnapshotLogger(logger),
			)
			e.themes = flow.NewThemes(store, cfg.ThemeKey)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	for _, cmd := range []*cobra.Command{
		newValidateCmd(e),
		newExportCmd(e),
		newImportCmd(e),
		newResetCmd(e),
		newThemeCmd(e),
	} {
		cmd.RunE = e.run(cmd.RunE)
		root.AddCommand(cmd)
	}

	return root
}

// run wraps a RunE so the store is closed and the logger synced whether
// or not the command fails.
func (e *env) run(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer e.finish()
		return fn(cmd, args)
	}
}

func (e *env) finish() {
	e.close()
	e.close = func() {}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
