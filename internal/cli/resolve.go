package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// resolveCommand prints the resolution order without running any command.
func (c *CLI) resolveCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the order packages are linked in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newSession(cmd.Context())
			if err != nil {
				return err
			}
			res, err := s.resolve(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(res.Records, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, string(data))
				return nil
			}

			printInfo("%s", StyleTitle.Render("Resolution order"))
			printStats(res.Stats.PackageCount, res.Stats.EdgeCount)
			for i, r := range res.Records {
				printOrderEntry(i+1, r.Name, r.Dependencies)
			}
			for _, d := range res.Dropped {
				printDetail("%s: %s is not a local package", d.Package, d.Dependency)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print resolution records as JSON")
	return cmd
}
