package dag

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.Add] when the package name is empty.
	ErrInvalidNodeID = errors.New("package name must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.Add] when a package with the
	// same name already exists. Package names must be unique.
	ErrDuplicateNodeID = errors.New("duplicate package name")

	// ErrUnknownTargetNode is returned by [Graph.Validate] when a dependency
	// names a package that is not a key of the graph.
	ErrUnknownTargetNode = errors.New("unknown dependency target")
)

// Graph maps package names to the ordered set of local packages they depend
// on. Keys keep insertion order and each dependency list keeps declaration
// order with duplicates removed.
//
// The zero value is not usable - use New to create a Graph.
type Graph struct {
	order []string
	index map[string]int
	deps  [][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// Add inserts a package with its local dependencies. A package without
// dependencies maps to an empty, non-nil set. Dependencies are not required
// to exist yet; use Validate once the graph is complete.
func (g *Graph) Add(name string, deps ...string) error {
	if name == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, name)
	}

	set := make([]string, 0, len(deps))
	for _, d := range deps {
		if !slices.Contains(set, d) {
			set = append(set, d)
		}
	}

	g.index[name] = len(g.order)
	g.order = append(g.order, name)
	g.deps = append(g.deps, set)
	return nil
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int { return len(g.order) }

// Has reports whether name is a key of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Packages returns the package names in insertion order.
func (g *Graph) Packages() []string { return slices.Clone(g.order) }

// Dependencies returns the local dependencies of name in declaration order.
// Returns nil if the package is unknown.
func (g *Graph) Dependencies(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return slices.Clone(g.deps[i])
}

// EdgeCount returns the total number of dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, d := range g.deps {
		n += len(d)
	}
	return n
}

// Validate checks that every dependency refers to a package of the graph.
// Self-loops are structural cycles and are reported by DetectCycles instead.
func (g *Graph) Validate() error {
	for i, name := range g.order {
		for _, d := range g.deps[i] {
			if !g.Has(d) {
				return fmt.Errorf("%w: %s depends on %s", ErrUnknownTargetNode, name, d)
			}
		}
	}
	return nil
}

// Record pairs a package with its local dependency set.
type Record struct {
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies"`
}

// Records returns one Record per package following order. Names missing from
// the graph are skipped.
func (g *Graph) Records(order []string) []Record {
	out := make([]Record, 0, len(order))
	for _, name := range order {
		i, ok := g.index[name]
		if !ok {
			continue
		}
		out = append(out, Record{Name: name, Dependencies: slices.Clone(g.deps[i])})
	}
	return out
}
