package dag

import (
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/autolink/pkg/errors"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		adj  [][]string
		want []string
	}{
		{
			name: "chain",
			adj:  [][]string{{"a"}, {"b", "a"}, {"c", "a", "b"}},
			want: []string{"a", "b", "c"},
		},
		{
			name: "reverse insertion",
			adj:  [][]string{{"c", "a", "b"}, {"b", "a"}, {"a"}},
			want: []string{"a", "b", "c"},
		},
		{
			name: "ties follow insertion order not name",
			adj:  [][]string{{"zeta"}, {"alpha"}, {"mid"}},
			want: []string{"zeta", "alpha", "mid"},
		},
		{
			name: "first resolvable in iteration order",
			// After a resolves, c (inserted first) wins over b.
			adj:  [][]string{{"c", "a"}, {"a"}, {"b"}},
			want: []string{"a", "c", "b"},
		},
		{
			name: "diamond",
			adj:  [][]string{{"d", "b", "c"}, {"c", "a"}, {"b", "a"}, {"a"}},
			want: []string{"a", "c", "b", "d"},
		},
		{
			name: "empty",
			adj:  nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.adj...)
			got, err := Sort(g)
			if err != nil {
				t.Fatalf("Sort() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSort_LongCycleIsUnresolvable(t *testing.T) {
	g := mustGraph(t, []string{"root"}, []string{"a", "b"}, []string{"b", "c"}, []string{"c", "a"})

	_, err := Sort(g)
	if !errors.Is(err, errors.ErrCodeUnresolvableGraph) {
		t.Fatalf("Sort() error = %v, want UNRESOLVABLE_GRAPH", err)
	}
	if msg := errors.UserMessage(err); msg != "no package can be resolved next; remaining: a, b, c" {
		t.Errorf("message = %q", msg)
	}
}

func TestSort_SelfLoopIsUnresolvable(t *testing.T) {
	g := mustGraph(t, []string{"a", "a"})
	if _, err := Sort(g); !errors.Is(err, errors.ErrCodeUnresolvableGraph) {
		t.Errorf("Sort() error = %v, want UNRESOLVABLE_GRAPH", err)
	}
}

func TestSort_DoesNotMutate(t *testing.T) {
	g := mustGraph(t, []string{"a"}, []string{"b", "a"})
	if _, err := Sort(g); err != nil {
		t.Fatal(err)
	}
	if got := g.Dependencies("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("graph mutated: Dependencies(b) = %v", got)
	}
	if g.Len() != 2 {
		t.Errorf("graph mutated: Len() = %d", g.Len())
	}
}

// acyclicGraph draws a random DAG. Edges only point to lower ranks, and the
// insertion order is an independent permutation of the ranks.
func acyclicGraph(rt *rapid.T) *Graph {
	n := rapid.IntRange(0, 25).Draw(rt, "n")
	ranks := rapid.Permutation(seq(n)).Draw(rt, "insertion")

	g := New()
	for _, r := range ranks {
		var deps []string
		for d := 0; d < r; d++ {
			if rapid.Bool().Draw(rt, fmt.Sprintf("edge-%d-%d", r, d)) {
				deps = append(deps, fmt.Sprintf("p%d", d))
			}
		}
		if err := g.Add(fmt.Sprintf("p%d", r), deps...); err != nil {
			rt.Fatalf("Add error: %v", err)
		}
	}
	return g
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func TestSort_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := acyclicGraph(rt)

		if err := DetectCycles(g); err != nil {
			rt.Fatalf("DetectCycles() on acyclic graph: %v", err)
		}

		order, err := Sort(g)
		if err != nil {
			rt.Fatalf("Sort() error: %v", err)
		}

		if len(order) != g.Len() {
			rt.Fatalf("len(order) = %d, want %d", len(order), g.Len())
		}
		pos := make(map[string]int, len(order))
		for i, name := range order {
			if _, dup := pos[name]; dup {
				rt.Fatalf("%s appears twice", name)
			}
			pos[name] = i
		}
		for _, name := range g.Packages() {
			p, ok := pos[name]
			if !ok {
				rt.Fatalf("%s missing from order", name)
			}
			for _, dep := range g.Dependencies(name) {
				if pos[dep] >= p {
					rt.Fatalf("%s at %d precedes its dependency %s at %d", name, p, dep, pos[dep])
				}
			}
		}

		again, err := Sort(g)
		if err != nil || !slices.Equal(order, again) {
			rt.Fatalf("Sort() is not deterministic: %v vs %v (%v)", order, again, err)
		}
	})
}

func TestDetectCycles_DirectCycleProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := acyclicGraph(rt)
		names := g.Packages()
		if len(names) < 2 {
			return
		}
		i := rapid.IntRange(0, len(names)-1).Draw(rt, "i")
		j := rapid.IntRange(0, len(names)-1).Filter(func(v int) bool { return v != i }).Draw(rt, "j")

		// Rebuild with a <-> b added on top.
		a, b := names[i], names[j]
		cyc := New()
		for _, name := range names {
			deps := g.Dependencies(name)
			switch name {
			case a:
				deps = append(deps, b)
			case b:
				deps = append(deps, a)
			}
			_ = cyc.Add(name, deps...)
		}

		err := DetectCycles(cyc)
		if !errors.Is(err, errors.ErrCodeCircularDependency) {
			rt.Fatalf("DetectCycles() error = %v, want CIRCULAR_DEPENDENCY", err)
		}
		if _, err := Sort(cyc); !errors.Is(err, errors.ErrCodeUnresolvableGraph) {
			rt.Fatalf("Sort() error = %v, want UNRESOLVABLE_GRAPH", err)
		}
	})
}
