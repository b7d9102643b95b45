// Package derive implements a small dependency-tracked memoization layer.
//
// Source cells hold plain values and carry a version that is bumped on every
// Set. Views declare the exact nodes they read; each view remembers the input
// versions it was last computed against and recomputes only when one of them
// moved. Views must be registered after all of their inputs, so registration
// order is a topological order of the graph.
//
// A Graph is not safe for concurrent use; callers serialize access.
package derive

import "fmt"

// Node is anything a view can depend on.
type Node interface {
	// Version changes whenever the node's value may have changed.
	Version() uint64
}

type refresher interface {
	Node
	refresh() bool
	viewName() string
}

// Graph owns a set of cells and views.
type Graph struct {
	known map[Node]bool
	views []refresher
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{known: make(map[Node]bool)}
}

// Cell is a settable source value.
type Cell[T any] struct {
	value   T
	version uint64
}

// NewCell registers a source cell holding initial.
func NewCell[T any](g *Graph, initial T) *Cell[T] {
	c := &Cell[T]{value: initial, version: 1}
	g.known[c] = true
	return c
}

// Get returns the current value.
func (c *Cell[T]) Get() T { return c.value }

// Set replaces the value and bumps the version. There is no equality check:
// every Set counts as a change.
func (c *Cell[T]) Set(v T) {
	c.value = v
	c.version++
}

// Version implements Node.
func (c *Cell[T]) Version() uint64 { return c.version }

// View is a memoized value computed from declared inputs.
type View[T any] struct {
	name     string
	inputs   []Node
	compute  func() T
	equal    func(a, b T) bool
	seen     []uint64
	value    T
	version  uint64
	computes int
}

// NewView registers a view computed by fn from inputs and computes it once.
// It panics if an input has not been registered with g, which would make the
// graph's evaluation order ambiguous.
func NewView[T any](g *Graph, name string, fn func() T, inputs ...Node) *View[T] {
	for _, in := range inputs {
		if !g.known[in] {
			panic(fmt.Sprintf("derive: view %q depends on an unregistered node", name))
		}
	}
	v := &View[T]{
		name:    name,
		inputs:  inputs,
		compute: fn,
		seen:    make([]uint64, len(inputs)),
	}
	v.refresh()
	g.known[v] = true
	g.views = append(g.views, v)
	return v
}

// WithEqual installs an equality check. When a recomputation yields a value
// equal to the cached one the view keeps its version, so dependents are not
// recomputed.
func (v *View[T]) WithEqual(eq func(a, b T) bool) *View[T] {
	v.equal = eq
	return v
}

// Get returns the view's value, recomputing it first if any input changed.
func (v *View[T]) Get() T {
	v.refresh()
	return v.value
}

// Version implements Node.
func (v *View[T]) Version() uint64 {
	v.refresh()
	return v.version
}

// Computes reports how many times the view's function has run.
func (v *View[T]) Computes() int { return v.computes }

// Name returns the name the view was registered with.
func (v *View[T]) Name() string { return v.name }

func (v *View[T]) viewName() string { return v.name }

// refresh brings upstream views up to date, then recomputes v if its input
// fingerprint moved. It reports whether fn ran.
func (v *View[T]) refresh() bool {
	stale := v.computes == 0
	for i, in := range v.inputs {
		if up, ok := in.(refresher); ok {
			up.refresh()
		}
		if in.Version() != v.seen[i] {
			stale = true
		}
	}
	if !stale {
		return false
	}
	for i, in := range v.inputs {
		v.seen[i] = in.Version()
	}
	next := v.compute()
	v.computes++
	if v.version != 0 && v.equal != nil && v.equal(v.value, next) {
		return true
	}
	v.value = next
	v.version++
	return true
}

// Propagate walks all views in registration order and recomputes the stale
// ones. It returns the names of the views whose function ran.
func (g *Graph) Propagate() []string {
	var ran []string
	for _, v := range g.views {
		if v.refresh() {
			ran = append(ran, v.viewName())
		}
	}
	return ran
}
