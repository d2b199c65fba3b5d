package diagram

import (
	"context"
	"iter"
)

// frame is one level of the search: a graph and the next pool position to
// try against its pivot.
type frame struct {
	g    *Graph
	via  int // pool position in the parent that produced g; -1 at the root
	scan int
}

// Enumerator lazily yields every fully connected completion of a graph,
// each exactly once. It holds an explicit frame stack, so the search
// suspends between calls to Next and resumes where it stopped.
//
// An Enumerator cannot be rewound. Call Enumerate again on the original
// graph for a fresh traversal.
type Enumerator struct {
	root     *Graph
	stack    []frame
	attempts int
}

// Enumerate returns an enumerator over the completions of g. No search work
// happens until the first call to Next.
func Enumerate(g *Graph) *Enumerator {
	return &Enumerator{
		root:  g,
		stack: []frame{{g: g, via: -1, scan: len(g.pool) - 2}},
	}
}

// Next returns the next completion. It returns false once the sequence is
// exhausted, and keeps returning false afterwards.
//
// If g has no unpaired legs at all, the only candidate is g itself, which is
// yielded iff it is fully connected.
func (e *Enumerator) Next() (*Graph, bool) {
	for len(e.stack) > 0 {
		top := &e.stack[len(e.stack)-1]
		g := top.g

		if len(g.pool) == 0 {
			e.pop()
			if g.IsFullyConnected() {
				return g, true
			}
			continue
		}
		if top.scan < 0 {
			e.pop()
			continue
		}

		pos := top.scan
		top.scan--
		if !g.IsCompatiblePair(g.pool[len(g.pool)-1], g.pool[pos]) {
			continue
		}
		child := g.branch(pos)
		e.attempts++
		e.stack = append(e.stack, frame{g: child, via: pos, scan: len(child.pool) - 2})
	}
	return nil, false
}

func (e *Enumerator) pop() {
	e.stack[len(e.stack)-1] = frame{}
	e.stack = e.stack[:len(e.stack)-1]
}

// Root returns the graph the enumerator was started from.
func (e *Enumerator) Root() *Graph { return e.root }

// Done reports whether the search has nothing left to explore.
func (e *Enumerator) Done() bool { return len(e.stack) == 0 }

// Attempts returns the number of pairings made so far.
func (e *Enumerator) Attempts() int { return e.attempts }

// All returns the remaining completions as an iterator. Breaking out of the
// loop leaves the enumerator positioned after the last completion seen.
func (e *Enumerator) All() iter.Seq[*Graph] {
	return func(yield func(*Graph) bool) {
		for g, ok := e.Next(); ok; g, ok = e.Next() {
			if !yield(g) {
				return
			}
		}
	}
}

// Take pulls at most n completions.
func (e *Enumerator) Take(n int) []*Graph {
	out := make([]*Graph, 0, max(n, 0))
	for len(out) < n {
		g, ok := e.Next()
		if !ok {
			break
		}
		out = append(out, g)
	}
	return out
}

// Count exhausts a fresh enumerator over g and returns the number of
// completions. The context is checked between pulls.
func Count(ctx context.Context, g *Graph) (int, error) {
	e := Enumerate(g)
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, ok := e.Next(); !ok {
			return n, nil
		}
		n++
	}
}
