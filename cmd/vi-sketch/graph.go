package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-sketch/depgraph"
	"github.com/lixenwraith/vi-sketch/document"
)

func newGraphCmd() *cobra.Command {
	var (
		svg    bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the reference construction's dependency graph",
		Long:  `graph builds the reference construction and writes its dependency graph as Graphviz DOT, or as SVG with --svg.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			d := document.New(configFromContext(ctx), logger)
			c, err := buildConstruction(d)
			if err != nil {
				return err
			}

			dot := depgraph.ToDOT(d.Dependency.Graph(), c.label(d))
			data := []byte(dot)
			if svg {
				if data, err = depgraph.RenderSVG(ctx, dot); err != nil {
					return err
				}
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("graph written", "path", output, "nodes", d.Dependency.Graph().Len(), "bytes", len(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
