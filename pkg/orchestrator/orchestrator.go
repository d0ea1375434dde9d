// Package orchestrator turns a resolution into a schedule of package
// manager commands.
//
// # Schedules
//
//   - Install: one install command per package, all started concurrently,
//     joined before the schedule returns.
//   - Link: the snapshot artifact is written, then for each package in
//     resolution order a publish command followed by one consume command
//     per local dependency. Commands run one at a time across the whole
//     schedule because the tool's link registry is shared.
//   - Clean: per package an unlink command, then removal of node_modules.
//     Packages are processed concurrently.
//   - Bootstrap: Install followed by Link.
//   - Exec, Add, Remove: a single command in the scoped package.
//
// # Failures
//
// A missing tool (EXTERNAL_TOOL_MISSING) aborts every schedule: commands
// already running are waited for, nothing new is issued. A non-zero exit
// (EXTERNAL_COMMAND_FAILED) is recorded in the [Report] and tolerated by
// Install and Clean; it aborts Link and the scoped modes. No command is
// retried and nothing is rolled back.
//
// Cancelling the context stops the schedule from issuing further commands.
// It never kills a command in flight.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/autolink/pkg/errors"
	"github.com/matzehuels/autolink/pkg/executor"
	autolinkio "github.com/matzehuels/autolink/pkg/io"
	"github.com/matzehuels/autolink/pkg/observability"
	"github.com/matzehuels/autolink/pkg/pipeline"
	"github.com/matzehuels/autolink/pkg/workspace"
)

// installDir is the per-package directory removed by Clean.
const installDir = "node_modules"

// Options configures an Orchestrator.
type Options struct {
	Dialect     Dialect // Argument vocabulary; Yarn when zero
	Artifact    string  // Snapshot path written by Link; skipped when empty
	Concurrency int     // Limit for Install and Clean; 0 means unbounded
	Logger      *log.Logger
}

// Orchestrator drives an Executor through schedules.
type Orchestrator struct {
	exec executor.Executor
	opts Options
}

// New creates an Orchestrator running commands through exec.
func New(exec executor.Executor, opts Options) *Orchestrator {
	if opts.Dialect.Name == "" {
		opts.Dialect = Yarn
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Orchestrator{exec: exec, opts: opts}
}

// Failure is a tolerated command failure.
type Failure struct {
	Package string
	Args    []string
	Err     error
}

// Report summarizes a schedule.
type Report struct {
	Commands int       // External commands issued
	Failures []Failure // Tolerated failures in completion order

	mu sync.Mutex
}

// OK reports whether every command succeeded.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

func (r *Report) issued() {
	r.mu.Lock()
	r.Commands++
	r.mu.Unlock()
}

func (r *Report) fail(pkg string, args []string, err error) {
	r.mu.Lock()
	r.Failures = append(r.Failures, Failure{Package: pkg, Args: args, Err: err})
	r.mu.Unlock()
}

// Run executes the schedule for cmd over res. The report is returned even
// when err is non-nil.
func (o *Orchestrator) Run(ctx context.Context, cmd Command, res *pipeline.Resolution) (*Report, error) {
	report := &Report{}
	if err := cmd.Validate(); err != nil {
		return report, err
	}

	var err error
	switch cmd.Mode {
	case ModeInstall:
		err = o.install(ctx, res, report)
	case ModeLink:
		err = o.link(ctx, res, report)
	case ModeClean:
		err = o.clean(ctx, res, report)
	case ModeBootstrap:
		if err = o.install(ctx, res, report); err == nil {
			err = o.link(ctx, res, report)
		}
	case ModeExec, ModeAdd, ModeRemove:
		err = o.scoped(ctx, cmd, res, report)
	}
	return report, err
}

func (o *Orchestrator) install(ctx context.Context, res *pipeline.Resolution, report *Report) error {
	pkgs := res.Ordered()
	return o.phase(ctx, ModeInstall, len(pkgs), func() error {
		return o.fanOut(ctx, pkgs, func(p *workspace.Package, _ func() bool) error {
			o.opts.Logger.Info("installing dependencies", "package", p.Name)
			return o.tolerant(ctx, p, o.opts.Dialect.Install, report)
		})
	})
}

func (o *Orchestrator) clean(ctx context.Context, res *pipeline.Resolution, report *Report) error {
	pkgs := res.Ordered()
	return o.phase(ctx, ModeClean, len(pkgs), func() error {
		return o.fanOut(ctx, pkgs, func(p *workspace.Package, abort func() bool) error {
			o.opts.Logger.Info("cleaning", "package", p.Name)
			if err := o.tolerant(ctx, p, o.opts.Dialect.Unlink, report); err != nil {
				return err
			}
			if abort() {
				return nil
			}
			target := filepath.Join(p.Dir, installDir)
			if err := os.RemoveAll(target); err != nil {
				o.opts.Logger.Warn("remove failed", "package", p.Name, "path", target, "err", err)
				report.fail(p.Name, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "remove %s", target))
			}
			return nil
		})
	})
}

// link never runs two commands at once. Every result is inspected before
// the next command is issued.
func (o *Orchestrator) link(ctx context.Context, res *pipeline.Resolution, report *Report) error {
	if o.opts.Artifact != "" {
		if err := autolinkio.ExportSnapshot(res.Graph, o.opts.Artifact); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", o.opts.Artifact)
		}
		o.opts.Logger.Debug("wrote resolution snapshot", "path", o.opts.Artifact)
	}

	pkgs := res.Ordered()
	return o.phase(ctx, ModeLink, len(pkgs)+res.Graph.EdgeCount(), func() error {
		for _, p := range pkgs {
			o.opts.Logger.Info("creating link", "package", p.Name)
			if err := o.run(ctx, p, o.opts.Dialect.Publish, report); err != nil {
				return fmt.Errorf("link %s: %w", p.Name, err)
			}
			for _, dep := range res.Graph.Dependencies(p.Name) {
				o.opts.Logger.Info("adding link", "package", p.Name, "dependency", dep)
				if err := o.run(ctx, p, o.opts.Dialect.Consume(dep), report); err != nil {
					return fmt.Errorf("link %s into %s: %w", dep, p.Name, err)
				}
			}
		}
		return nil
	})
}

func (o *Orchestrator) scoped(ctx context.Context, cmd Command, res *pipeline.Resolution, report *Report) error {
	p, ok := res.Package(cmd.Scope)
	if !ok {
		return errors.New(errors.ErrCodePackageNotFound, "no local package named %s", cmd.Scope)
	}

	var args []string
	switch cmd.Mode {
	case ModeExec:
		if !p.Manifest.HasScript(cmd.Script) {
			return errors.New(errors.ErrCodeInvalidInput, "%s has no script named %s", p.Name, cmd.Script)
		}
		args = o.opts.Dialect.Run(cmd.Script)
	case ModeAdd:
		args = o.opts.Dialect.Add(cmd.Dependency, cmd.Dev)
	case ModeRemove:
		args = o.opts.Dialect.Remove(cmd.Dependency)
	}

	return o.phase(ctx, cmd.Mode, 1, func() error {
		return o.run(ctx, p, args, report)
	})
}

// fanOut runs fn for every package concurrently. The first error returned by
// fn is fatal: packages not yet started are skipped and abort reports true
// from then on.
func (o *Orchestrator) fanOut(ctx context.Context, pkgs []*workspace.Package, fn func(*workspace.Package, func() bool) error) error {
	var (
		g       errgroup.Group
		aborted atomic.Bool
	)
	if o.opts.Concurrency > 0 {
		g.SetLimit(o.opts.Concurrency)
	}
	abort := func() bool { return aborted.Load() || ctx.Err() != nil }

	for _, p := range pkgs {
		g.Go(func() error {
			if abort() {
				return nil
			}
			if err := fn(p, abort); err != nil {
				aborted.Store(true)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// tolerant runs a command whose non-zero exit is recorded instead of
// returned. Only schedule-fatal errors are returned.
func (o *Orchestrator) tolerant(ctx context.Context, p *workspace.Package, args []string, report *Report) error {
	err := o.run(ctx, p, args, report)
	if err == nil {
		return nil
	}
	if errors.IsFatalForSchedule(err) {
		return err
	}
	if ctx.Err() != nil && err == ctx.Err() {
		return nil
	}
	o.opts.Logger.Warn("command failed", "package", p.Name, "err", errors.UserMessage(err))
	report.fail(p.Name, args, err)
	return nil
}

func (o *Orchestrator) run(ctx context.Context, p *workspace.Package, args []string, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	args = slices.Clone(args)
	hooks := observability.Schedule()

	start := time.Now()
	hooks.OnCommandStart(ctx, p.Name, args)
	report.issued()
	err := o.exec.Run(ctx, p.Dir, args...)
	hooks.OnCommandComplete(ctx, p.Name, args, time.Since(start), err)
	return err
}

func (o *Orchestrator) phase(ctx context.Context, mode Mode, commands int, fn func() error) error {
	hooks := observability.Schedule()
	start := time.Now()
	hooks.OnPhaseStart(ctx, mode.String(), commands)
	err := fn()
	hooks.OnPhaseComplete(ctx, mode.String(), time.Since(start), err)
	return err
}
