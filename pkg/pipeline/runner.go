package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolink/pkg/dag"
	"github.com/matzehuels/autolink/pkg/observability"
	"github.com/matzehuels/autolink/pkg/workspace"
)

// Runner executes resolution runs.
//
// The Runner is stateless except for the logger; multiple goroutines can use
// the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Resolve loads the workspace and computes its resolution order.
func (r *Runner) Resolve(ctx context.Context, opts Options) (res *Resolution, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	start := time.Now()
	observability.Resolve().OnResolveStart(ctx, opts.PackagesDir)
	defer func() {
		var pkgs, edges int
		if res != nil {
			pkgs, edges = res.Stats.PackageCount, res.Stats.EdgeCount
		}
		observability.Resolve().OnResolveComplete(ctx, opts.PackagesDir, pkgs, edges, time.Since(start), err)
	}()

	pkgs, err := workspace.Load(opts.PackagesDir, workspace.Options{Exclude: opts.Exclude})
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded workspace", "dir", opts.PackagesDir, "packages", len(pkgs))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, dropped, err := dag.Build(Declarations(pkgs), dag.BuildOptions{Strict: opts.Strict})
	if err != nil {
		return nil, err
	}
	for _, d := range dropped {
		logger.Debug("treating dependency as external", "package", d.Package, "dependency", d.Dependency)
	}

	if err := dag.DetectCycles(g); err != nil {
		return nil, err
	}

	order, err := dag.Sort(g)
	if err != nil {
		return nil, err
	}

	res = &Resolution{
		Packages: pkgs,
		Graph:    g,
		Order:    order,
		Records:  g.Records(order),
		Dropped:  dropped,
		index:    workspace.Index(pkgs),
		Stats: Stats{
			PackageCount: g.Len(),
			EdgeCount:    g.EdgeCount(),
			Duration:     time.Since(start),
		},
	}
	logger.Info("resolved dependencies",
		"packages", res.Stats.PackageCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.Duration)
	return res, nil
}
