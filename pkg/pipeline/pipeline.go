// Package pipeline resolves a monorepo workspace into a dependency order.
//
// The pipeline chains the four resolution stages so the CLI and tests share
// one code path:
//
//  1. Load: discover packages and validate their manifests
//  2. Build: filter declared local dependencies to known packages
//  3. Detect: reject circular dependencies
//  4. Sort: produce the deterministic resolution order
//
// Any failure aborts before an external command could be scheduled.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	res, err := runner.Resolve(ctx, pipeline.Options{PackagesDir: "packages"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Order)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolink/pkg/dag"
	"github.com/matzehuels/autolink/pkg/errors"
	"github.com/matzehuels/autolink/pkg/workspace"
)

// DefaultPackagesDir is the packages directory used when none is configured.
const DefaultPackagesDir = "packages"

// Options configures a resolution run.
type Options struct {
	PackagesDir string   // Directory holding the local packages
	Exclude     []string // doublestar globs relative to PackagesDir
	Strict      bool     // Reject declared dependencies that are not local packages

	Logger *log.Logger
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// PackagesDir may be absolute; configured values are validated by the caller
// before they are joined to the invocation root.
func (o *Options) ValidateAndSetDefaults() error {
	if o.PackagesDir == "" {
		o.PackagesDir = DefaultPackagesDir
	}
	if strings.ContainsRune(o.PackagesDir, 0) {
		return errors.New(errors.ErrCodeInvalidPath, "packages directory contains invalid characters")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Resolution is the write-once output of a resolution run.
type Resolution struct {
	// Packages lists the workspace packages in discovery order.
	Packages []*workspace.Package

	// Graph maps each package to its local dependencies.
	Graph *dag.Graph

	// Order is the resolution order: dependencies before dependents.
	Order []string

	// Records pairs each package with its dependencies, in Order.
	Records []dag.Record

	// Dropped lists declared dependencies that did not name a local package.
	Dropped []dag.Dropped

	Stats Stats

	index map[string]*workspace.Package
}

// Stats contains resolution statistics.
type Stats struct {
	PackageCount int
	EdgeCount    int
	Duration     time.Duration
}

// Package returns the workspace package with the given name.
func (r *Resolution) Package(name string) (*workspace.Package, bool) {
	if r.index != nil {
		p, ok := r.index[name]
		return p, ok
	}
	for _, p := range r.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Ordered returns the packages in resolution order.
func (r *Resolution) Ordered() []*workspace.Package {
	out := make([]*workspace.Package, 0, len(r.Order))
	for _, name := range r.Order {
		if p, ok := r.Package(name); ok {
			out = append(out, p)
		}
	}
	return out
}

// Declarations converts workspace packages into graph declarations using
// each manifest's local dependency list.
func Declarations(pkgs []*workspace.Package) []dag.Declaration {
	decls := make([]dag.Declaration, len(pkgs))
	for i, p := range pkgs {
		decls[i] = dag.Declaration{Name: p.Name, Dependencies: p.Manifest.LocalDependencies}
	}
	return decls
}
