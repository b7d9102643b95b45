package derive_test

import (
	"reflect"
	"testing"

	"github.com/monitoradlo/monitoradlo-go/internal/derive"
)

func TestViewComputesOnRegistration(t *testing.T) {
	g := derive.NewGraph()
	a := derive.NewCell(g, 2)
	double := derive.NewView(g, "double", func() int { return a.Get() * 2 }, a)

	if double.Computes() != 1 {
		t.Fatalf("computes = %d, want 1", double.Computes())
	}
	if got := double.Get(); got != 4 {
		t.Errorf("Get() = %d, want 4", got)
	}
	if double.Computes() != 1 {
		t.Errorf("Get on a fresh view recomputed it")
	}
}

func TestPropagateRecomputesOnlyChangedInputs(t *testing.T) {
	g := derive.NewGraph()
	a := derive.NewCell(g, 1)
	b := derive.NewCell(g, 10)
	fromA := derive.NewView(g, "fromA", func() int { return a.Get() + 1 }, a)
	fromB := derive.NewView(g, "fromB", func() int { return b.Get() + 1 }, b)
	both := derive.NewView(g, "both", func() int { return fromA.Get() + fromB.Get() }, fromA, fromB)

	b.Set(20)
	ran := g.Propagate()

	if want := []string{"fromB", "both"}; !reflect.DeepEqual(ran, want) {
		t.Errorf("Propagate ran %v, want %v", ran, want)
	}
	if fromA.Computes() != 1 {
		t.Errorf("fromA recomputed %d times, want 1", fromA.Computes())
	}
	if got := both.Get(); got != 2+21 {
		t.Errorf("both = %d, want 23", got)
	}

	if ran := g.Propagate(); len(ran) != 0 {
		t.Errorf("second Propagate ran %v, want nothing", ran)
	}
}

func TestGetPullsStaleUpstream(t *testing.T) {
	g := derive.NewGraph()
	a := derive.NewCell(g, "x")
	upper := derive.NewView(g, "upper", func() string { return a.Get() + "!" }, a)
	outer := derive.NewView(g, "outer", func() string { return "<" + upper.Get() + ">" }, upper)

	a.Set("y")
	if got := outer.Get(); got != "<y!>" {
		t.Errorf("outer = %q, want <y!>", got)
	}
}

func TestWithEqualStopsPropagation(t *testing.T) {
	g := derive.NewGraph()
	n := derive.NewCell(g, 3)
	parity := derive.NewView(g, "parity", func() int { return n.Get() % 2 }, n).
		WithEqual(func(a, b int) bool { return a == b })
	label := derive.NewView(g, "label", func() string {
		if parity.Get() == 0 {
			return "even"
		}
		return "odd"
	}, parity)

	n.Set(5)
	ran := g.Propagate()
	if want := []string{"parity"}; !reflect.DeepEqual(ran, want) {
		t.Errorf("Propagate ran %v, want %v", ran, want)
	}
	if label.Computes() != 1 {
		t.Errorf("label recomputed although parity did not change")
	}

	n.Set(6)
	g.Propagate()
	if got := label.Get(); got != "even" {
		t.Errorf("label = %q, want even", got)
	}
}

func TestSetAlwaysCountsAsChange(t *testing.T) {
	g := derive.NewGraph()
	a := derive.NewCell(g, 1)
	v := derive.NewView(g, "v", func() int { return a.Get() }, a)

	before := a.Version()
	a.Set(1)
	if a.Version() == before {
		t.Error("Set with the same value did not bump the version")
	}
	g.Propagate()
	if v.Computes() != 2 {
		t.Errorf("computes = %d, want 2", v.Computes())
	}
}

func TestUnregisteredInputPanics(t *testing.T) {
	g := derive.NewGraph()
	other := derive.NewGraph()
	foreign := derive.NewCell(other, 0)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for an input registered on another graph")
		}
	}()
	derive.NewView(g, "bad", func() int { return foreign.Get() }, foreign)
}
