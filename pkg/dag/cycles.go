package dag

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/autolink/pkg/errors"
)

// CycleError describes a dependency cycle. Path starts and ends with the same
// package, e.g. [a b a] for a depending on b and b depending on a.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return strings.Join(e.Path, " -> ")
}

// Packages returns the distinct packages on the cycle.
func (e *CycleError) Packages() []string {
	if len(e.Path) < 2 {
		return slices.Clone(e.Path)
	}
	return slices.Clone(e.Path[:len(e.Path)-1])
}

// DetectCycles reports the first dependency cycle found in g, or nil.
//
// DetectCycles uses depth-first search with white/gray/black coloring over
// every package in insertion order, following dependencies in declaration
// order. Meeting a gray node closes a cycle; the returned error has code
// CIRCULAR_DEPENDENCY and wraps a *CycleError with the full path. Direct
// two-package cycles, longer cycles and self-loops are all reported.
//
// The graph is only read. Time complexity is O(V + E).
func DetectCycles(g *Graph) error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, g.Len())
	var stack []int
	var cycle []string

	var dfs func(i int) bool
	dfs = func(i int) bool {
		color[i] = gray
		stack = append(stack, i)
		for _, dep := range g.deps[i] {
			j, ok := g.index[dep]
			if !ok {
				continue
			}
			switch color[j] {
			case white:
				if dfs(j) {
					return true
				}
			case gray:
				start := slices.Index(stack, j)
				for _, k := range stack[start:] {
					cycle = append(cycle, g.order[k])
				}
				cycle = append(cycle, g.order[j])
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[i] = black
		return false
	}

	for i := range g.order {
		if color[i] == white && dfs(i) {
			return cycleErr(cycle)
		}
	}
	return nil
}

func cycleErr(path []string) error {
	ce := &CycleError{Path: path}
	pkgs := ce.Packages()
	var msg string
	switch len(pkgs) {
	case 1:
		msg = fmt.Sprintf("%s depends on itself", pkgs[0])
	case 2:
		msg = fmt.Sprintf("circular dependency found between %s and %s", pkgs[0], pkgs[1])
	default:
		msg = fmt.Sprintf("circular dependency found between %s", strings.Join(pkgs, ", "))
	}
	return errors.Wrap(errors.ErrCodeCircularDependency, ce, "%s", msg)
}
