package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autolink/pkg/render"
)

// graphCommand renders the workspace dependency graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format    string
		output    string
		highlight []string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the local dependency graph as DOT or SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(format); err != nil {
				return err
			}

			s, err := c.newSession(cmd.Context())
			if err != nil {
				return err
			}
			res, err := s.resolve(cmd.Context())
			if err != nil {
				return err
			}

			data, err := render.Render(cmd.Context(), res.Graph, format, render.Options{
				Order:     res.Order,
				Highlight: highlight,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err := stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %d packages", res.Stats.PackageCount)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringSliceVar(&highlight, "highlight", nil, "packages to highlight")
	_ = cmd.RegisterFlagCompletionFunc("highlight", c.completePackages)

	return cmd
}
