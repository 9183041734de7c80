package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meikuraledutech/flow"
)

func newValidateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a snapshot file, or the stored flow when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				g   *flow.Graph
				err error
			)
			if len(args) == 1 {
				g, err = readSnapshot(args[0])
			} else {
				g, err = e.snapshots.Load(cmd.Context())
				if err == nil && g == nil {
					return fmt.Errorf("no saved flow under %q", e.snapshots.Key())
				}
			}
			if err != nil {
				return err
			}
			if err := flow.Validate(*g); err != nil {
				return fmt.Errorf("%s", flow.SaveOutcome(err))
			}
			printf(cmd, "ok: %d nodes, %d edges, entry point %s\n",
				len(g.Nodes), len(g.Edges), entryPoint(*g))
			return nil
		},
	}
}

func newExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored flow as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := e.snapshots.Load(cmd.Context())
			if err != nil {
				return err
			}
			if g == nil {
				return fmt.Errorf("no saved flow under %q", e.snapshots.Key())
			}
			b, err := flow.EncodeSnapshot(*g)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(b, '\n'))
			return err
		},
	}
}

func newImportCmd(e *env) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate a snapshot file and store it, replacing the saved flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			if err := flow.Validate(*g); err != nil && !force {
				return fmt.Errorf("%s", flow.SaveOutcome(err))
			}
			if err := e.snapshots.Save(cmd.Context(), *g); err != nil {
				return err
			}
			e.logger.Debug("imported", zap.String("file", args[0]), zap.Int("nodes", len(g.Nodes)))
			printf(cmd, "imported %d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "store the flow even if it has more than one entry point")
	return cmd
}

func newResetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved flow so editors start from the welcome flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.snapshots.Clear(cmd.Context()); err != nil {
				return err
			}
			printf(cmd, "cleared %q\n", e.snapshots.Key())
			return nil
		},
	}
}

func newThemeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the stored theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				th  flow.Theme
				err error
			)
			switch {
			case len(args) == 0:
				th, err = e.themes.Get(ctx)
			case args[0] == "toggle":
				th, err = e.themes.Toggle(ctx)
			default:
				th, err = flow.ParseTheme(args[0])
				if err == nil {
					err = e.themes.Set(ctx, th)
				}
			}
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", th)
			return nil
		},
	}
}

func readSnapshot(path string) (*flow.Graph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return flow.DecodeSnapshot(b)
}

func entryPoint(g flow.Graph) string {
	entries := flow.EntryPoints(g)
	if len(entries) == 0 {
		return "(none)"
	}
	return entries[0]
}
