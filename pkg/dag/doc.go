// Package dag models the local dependency graph of a monorepo and the
// algorithms that turn it into a safe linking order.
//
// # Overview
//
// A [Graph] maps each local package name to the ordered set of local packages
// it depends on. Insertion order is significant: it is the iteration order
// every algorithm in this package uses, which makes results deterministic for
// a given workspace scan.
//
// The resolution flow is:
//
//  1. [Build] filters each package's declared dependencies down to the names
//     of known local packages. Everything else is assumed to come from a
//     registry and is reported back as [Dropped].
//  2. [DetectCycles] walks the whole graph depth-first with white/gray/black
//     coloring and fails on the first cycle it finds, of any length,
//     reporting the full path in a [CycleError].
//  3. [Sort] produces the resolution order with an index-based variant of
//     Kahn's algorithm. Among the packages whose dependencies are all
//     resolved, the one inserted first is always taken next.
//
// # Basic Usage
//
//	g, dropped, err := dag.Build([]dag.Declaration{
//	    {Name: "a"},
//	    {Name: "b", Dependencies: []string{"a", "lodash"}},
//	}, dag.BuildOptions{})
//	if err := dag.DetectCycles(g); err != nil {
//	    return err
//	}
//	order, err := dag.Sort(g) // ["a", "b"]
//
// # Concurrency
//
// A Graph is built once and then only read. Concurrent readers are safe;
// [Graph.Add] must not race with anything.
package dag
