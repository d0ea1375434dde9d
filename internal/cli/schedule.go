package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autolink/pkg/errors"
	"github.com/matzehuels/autolink/pkg/orchestrator"
)

// scheduleCommand creates one of the workspace-wide commands: bootstrap,
// install, link or clean.
func (c *CLI) scheduleCommand(mode orchestrator.Mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   mode.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSchedule(cmd.Context(), orchestrator.Command{Mode: mode})
		},
	}
}

// runSchedule resolves the workspace and runs command over it. Tolerated
// failures are listed but do not fail the invocation.
func (c *CLI) runSchedule(ctx context.Context, command orchestrator.Command) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	res, err := s.resolve(ctx)
	if err != nil {
		return err
	}
	orch, err := c.orchestrator(s)
	if err != nil {
		return err
	}

	prog := newProgress(s.logger)
	report, err := orch.Run(ctx, command, res)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("%s finished", command.Mode))

	if report.OK() {
		printSuccess("%s: %d commands across %d packages", command.Mode, report.Commands, len(res.Order))
		if path := s.artifactPath(); path != "" && writesSnapshot(command.Mode) {
			printFile(path)
		}
		return nil
	}

	printWarning("%s: %d of %d commands failed", command.Mode, len(report.Failures), report.Commands)
	for _, f := range report.Failures {
		printError("%s: %s", f.Package, errors.UserMessage(f.Err))
		if f.Args != nil {
			printDetail("%s %s", s.cfg.Tool, strings.Join(f.Args, " "))
		}
	}
	return nil
}

func writesSnapshot(mode orchestrator.Mode) bool {
	return mode == orchestrator.ModeLink || mode == orchestrator.ModeBootstrap
}
