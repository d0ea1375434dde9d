package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestGraph_Add(t *testing.T) {
	g := New()
	if err := g.Add("a"); err != nil {
		t.Fatalf("Add(a) error: %v", err)
	}
	if err := g.Add("b", "a", "a", "c"); err != nil {
		t.Fatalf("Add(b) error: %v", err)
	}

	if got := g.Dependencies("b"); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Dependencies(b) = %v, want [a c]", got)
	}
	if got := g.Dependencies("a"); got == nil || len(got) != 0 {
		t.Errorf("Dependencies(a) = %#v, want empty non-nil", got)
	}
	if got := g.Dependencies("missing"); got != nil {
		t.Errorf("Dependencies(missing) = %v, want nil", got)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestGraph_AddErrors(t *testing.T) {
	g := New()
	if err := g.Add(""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("Add(\"\") error = %v, want ErrInvalidNodeID", err)
	}
	_ = g.Add("a")
	if err := g.Add("a"); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("Add(a) twice error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestGraph_PackagesInsertionOrder(t *testing.T) {
	g := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_ = g.Add(name)
	}
	if got := g.Packages(); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Packages() = %v, want insertion order", got)
	}
}

func TestGraph_DependenciesReturnsCopy(t *testing.T) {
	g := New()
	_ = g.Add("a")
	_ = g.Add("b", "a")

	deps := g.Dependencies("b")
	deps[0] = "mutated"

	if got := g.Dependencies("b"); got[0] != "a" {
		t.Errorf("graph was mutated through Dependencies: %v", got)
	}
}

func TestGraph_Validate(t *testing.T) {
	g := New()
	_ = g.Add("a")
	_ = g.Add("b", "a")
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	_ = g.Add("c", "ghost")
	if err := g.Validate(); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("Validate() error = %v, want ErrUnknownTargetNode", err)
	}
}

func TestGraph_Records(t *testing.T) {
	g := New()
	_ = g.Add("a")
	_ = g.Add("b", "a")

	recs := g.Records([]string{"a", "b", "missing"})
	if len(recs) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(recs))
	}
	if recs[1].Name != "b" || !slices.Equal(recs[1].Dependencies, []string{"a"}) {
		t.Errorf("Records()[1] = %+v", recs[1])
	}
}
