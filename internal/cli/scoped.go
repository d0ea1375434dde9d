package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/autolink/pkg/orchestrator"
)

// execCommand creates the exec command running a script of one package.
func (c *CLI) execCommand() *cobra.Command {
	var scope, script string

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Run a package.json script in one package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSchedule(cmd.Context(), orchestrator.Command{
				Mode:   orchestrator.ModeExec,
				Scope:  scope,
				Script: script,
			})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "package to run the script in (required)")
	cmd.Flags().StringVar(&script, "script", "", "script name (required)")
	_ = cmd.MarkFlagRequired("scope")
	_ = cmd.MarkFlagRequired("script")
	_ = cmd.RegisterFlagCompletionFunc("scope", c.completePackages)

	return cmd
}

// dependencyCommand creates the add or remove command.
func (c *CLI) dependencyCommand(mode orchestrator.Mode, short string) *cobra.Command {
	var (
		scope string
		dev   bool
	)

	cmd := &cobra.Command{
		Use:   mode.String() + " <dependency>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSchedule(cmd.Context(), orchestrator.Command{
				Mode:       mode,
				Scope:      scope,
				Dependency: args[0],
				Dev:        dev,
			})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "package to modify (required)")
	_ = cmd.MarkFlagRequired("scope")
	_ = cmd.RegisterFlagCompletionFunc("scope", c.completePackages)
	cmd.Flags().BoolVar(&dev, "dev", false, "development dependency (remove ignores it)")

	return cmd
}
