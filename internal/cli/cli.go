package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autolink/pkg/buildinfo"
	"github.com/matzehuels/autolink/pkg/executor"
	"github.com/matzehuels/autolink/pkg/observability"
	"github.com/matzehuels/autolink/pkg/orchestrator"
	"github.com/matzehuels/autolink/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "autolink"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	root       string // invocation root, --root
	configPath string // explicit config file, --config
	verbose    bool

	// newExecutor builds the executor for the configured tool.
	newExecutor func(tool string, verbose bool) executor.Executor
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		newExecutor: processExecutor,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Invoking autolink without a subcommand, or with one it does not know,
// prints usage and succeeds.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Autolink installs and links the packages of a monorepo",
		Long:          `Autolink resolves the local dependencies between the packages of a monorepo and drives yarn (or npm) to install them and link them into each other in dependency order.`,
		Version:       buildinfo.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)

			logger := c.Logger.With("run", uuid.NewString()[:8])
			observability.SetScheduleHooks(&logHooks{logger: logger})
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.root, "root", ".", "monorepo root directory")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default <root>/"+configFile+")")

	// Register all subcommands
	root.AddCommand(c.scheduleCommand(orchestrator.ModeBootstrap, "Install all packages, then link them in dependency order"))
	root.AddCommand(c.scheduleCommand(orchestrator.ModeInstall, "Install the external dependencies of every package"))
	root.AddCommand(c.scheduleCommand(orchestrator.ModeLink, "Link local packages into each other in dependency order"))
	root.AddCommand(c.scheduleCommand(orchestrator.ModeClean, "Unlink every package and remove its node_modules"))
	root.AddCommand(c.execCommand())
	root.AddCommand(c.dependencyCommand(orchestrator.ModeAdd, "Add a dependency to a package"))
	root.AddCommand(c.dependencyCommand(orchestrator.ModeRemove, "Remove a dependency from a package"))
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session - Per-Invocation State
// =============================================================================

// session bundles what a command needs after config loading.
type session struct {
	root   string
	cfg    Config
	logger *log.Logger
}

// newSession resolves the root directory and loads its config.
func (c *CLI) newSession(ctx context.Context) (*session, error) {
	root, err := filepath.Abs(c.root)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(root, c.configPath)
	if err != nil {
		return nil, err
	}
	return &session{root: root, cfg: cfg, logger: loggerFromContext(ctx)}, nil
}

// resolve runs the resolution pipeline over the session's workspace.
func (s *session) resolve(ctx context.Context) (*pipeline.Resolution, error) {
	return pipeline.NewRunner(s.logger).Resolve(ctx, pipeline.Options{
		PackagesDir: filepath.Join(s.root, s.cfg.PackagesDir),
		Exclude:     s.cfg.Exclude,
		Strict:      s.cfg.Strict,
		Logger:      s.logger,
	})
}

// artifactPath returns the absolute snapshot path, or "" when disabled.
func (s *session) artifactPath() string {
	if s.cfg.Artifact == "" {
		return ""
	}
	return filepath.Join(s.root, s.cfg.Artifact)
}

// orchestrator creates an orchestrator from the session's config.
func (c *CLI) orchestrator(s *session) (*orchestrator.Orchestrator, error) {
	dialect, err := orchestrator.DialectFor(s.cfg.Tool)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(c.newExecutor(s.cfg.Tool, c.verbose), orchestrator.Options{
		Dialect:     dialect,
		Artifact:    s.artifactPath(),
		Concurrency: s.cfg.Concurrency,
		Logger:      s.logger,
	}), nil
}

// processExecutor forwards child output only in verbose mode; stderr is
// always captured for error reports.
func processExecutor(tool string, verbose bool) executor.Executor {
	if verbose {
		return executor.NewProcess(tool, os.Stderr, os.Stderr)
	}
	return executor.NewProcess(tool, nil, nil)
}
