// Command vi-sketch is a terminal geometric construction editor.
//
// Points, lines and circles are defined in terms of each other; moving a point
// recomputes everything built on it, and every edit can be undone.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-sketch/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:          "vi-sketch",
		Short:        "Terminal geometric construction editor",
		Long:         `vi-sketch edits ruler-and-compass constructions in the terminal. Derived objects follow their parents as they move, and every edit is undoable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := cfg.LogLevel()
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newDemoCmd())
	root.AddCommand(newGraphCmd())
	return root
}
