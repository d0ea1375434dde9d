package dag

import (
	"github.com/matzehuels/autolink/pkg/errors"
)

// Declaration is a package's raw dependency declaration as read from its
// manifest, before filtering.
type Declaration struct {
	Name         string
	Dependencies []string
}

// Dropped records a declared dependency that did not match any local package.
type Dropped struct {
	Package    string
	Dependency string
}

// BuildOptions configures graph construction.
type BuildOptions struct {
	// Strict rejects declared dependencies that are not local packages
	// instead of assuming they resolve from a registry.
	Strict bool
}

// Build constructs the dependency graph from declarations in order.
// Each package keeps only the dependencies that name another declared
// package. The filtered-out names are returned as Dropped entries; under
// BuildOptions.Strict the first of them is an UNKNOWN_DEPENDENCY error.
func Build(decls []Declaration, opts BuildOptions) (*Graph, []Dropped, error) {
	known := make(map[string]bool, len(decls))
	for _, d := range decls {
		if known[d.Name] {
			return nil, nil, errors.New(errors.ErrCodeInvalidManifest, "package %s is declared more than once", d.Name)
		}
		known[d.Name] = true
	}

	g := New()
	var dropped []Dropped
	for _, d := range decls {
		local := make([]string, 0, len(d.Dependencies))
		for _, dep := range d.Dependencies {
			if known[dep] {
				local = append(local, dep)
				continue
			}
			if opts.Strict {
				return nil, nil, errors.New(errors.ErrCodeUnknownDependency,
					"%s depends on %s, which is not a local package", d.Name, dep)
			}
			dropped = append(dropped, Dropped{Package: d.Name, Dependency: dep})
		}
		if err := g.Add(d.Name, local...); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "add %s", d.Name)
		}
	}
	return g, dropped, nil
}
