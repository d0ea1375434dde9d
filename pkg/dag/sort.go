package dag

import (
	"container/heap"
	"strings"

	"github.com/matzehuels/autolink/pkg/errors"
)

// Sort returns the resolution order of g: every package appears after all of
// its local dependencies.
//
// # Algorithm
//
// Sort keeps a remaining-dependency count per package, a reverse adjacency
// list (dependency -> dependents) and a work-queue of ready packages. The
// queue is a min-heap keyed on insertion index, so at every step the ready
// package that was inserted first is taken; this equals repeatedly scanning
// the graph in iteration order for the first package with nothing left to
// wait on. Ties are never broken by name.
//
// If packages remain but none is ready the graph has a cycle the caller did
// not reject, and Sort fails with UNRESOLVABLE_GRAPH naming the stuck
// packages. Dependencies on names that are not keys are ignored.
//
// Sort does not modify g and is deterministic. Time complexity is
// O((V + E) log V).
func Sort(g *Graph) ([]string, error) {
	n := g.Len()
	remaining := make([]int, n)
	dependents := make([][]int, n)
	for i := range g.order {
		for _, dep := range g.deps[i] {
			j, ok := g.index[dep]
			if !ok {
				continue
			}
			remaining[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	ready := &indexHeap{}
	for i := range n {
		if remaining[i] == 0 {
			heap.Push(ready, i)
		}
	}

	order := make([]string, 0, n)
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		order = append(order, g.order[i])
		for _, d := range dependents[i] {
			remaining[d]--
			if remaining[d] == 0 {
				heap.Push(ready, d)
			}
		}
	}

	if len(order) != n {
		var stuck []string
		for i, r := range remaining {
			if r > 0 {
				stuck = append(stuck, g.order[i])
			}
		}
		return nil, errors.New(errors.ErrCodeUnresolvableGraph,
			"no package can be resolved next; remaining: %s", strings.Join(stuck, ", "))
	}
	return order, nil
}

// indexHeap is a min-heap of insertion indices.
type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *indexHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}
