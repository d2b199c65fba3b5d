// Package diagram enumerates the Feynman diagrams of a toy QED model.
//
// # Overview
//
// A diagram starts as a set of unpaired legs: the incoming and outgoing
// particles named by the caller, plus three legs (electron, positron,
// photon) for every named vertex. The engine wires legs together two at a
// time until none are left, and keeps only the wirings that form a single
// connected diagram.
//
// Two rules decide whether legs i and j may be wired:
//
//   - the kind of i is the antiparticle of the kind of j, and
//   - i and j do not belong to the same group.
//
// All incoming legs share one group and all outgoing legs share another, so
// two compatible incoming legs may be wired to each other. Legs of one
// vertex share the vertex's group and never pair with each other.
//
// # Basic Usage
//
//	g, err := diagram.Construct(
//	    diagram.Externals{Electrons: []string{"i1"}, Positrons: []string{"i2"}},
//	    diagram.Externals{Photons: []string{"o1"}},
//	    []string{"v1", "v2", "v3"},
//	)
//	if err != nil {
//	    return err
//	}
//	e := diagram.Enumerate(g)
//	for d, ok := e.Next(); ok; d, ok = e.Next() {
//	    fmt.Println(diagram.ConnectionsOf(d, particle.Electron))
//	}
//
// # Search
//
// [Enumerator] is a depth-first backtracking search over the unpaired pool.
// The pivot of every step is the highest unpaired leg, and candidates are
// scanned from the second highest down, so each perfect matching is reached
// by exactly one path and no deduplication is needed. Connectivity is only
// checked once a graph is fully paired.
//
// The search is pull-driven. Each call to [Enumerator.Next] resumes an
// explicit frame stack where the previous call stopped. [Enumerator.Cursor]
// captures that stack as plain data, and [Resume] rebuilds it against the
// original graph, so progress can be parked between independent requests.
//
// # Memory
//
// Every graph derived during search shares the leg arena of its root. Each
// branch owns its unpaired pool and extends an immutable, parent-linked wire
// list, so a branch never sees a sibling's pairings and graphs handed to the
// caller stay valid for as long as they are referenced.
//
// # Concurrency
//
// Pairings never change once a graph is built, but a Graph fills a partner
// lookup table on first use, so neither Graph nor Enumerator is safe for
// concurrent use without external synchronization.
package diagram
