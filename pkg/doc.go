// Package pkg provides the core libraries for Autofeyn diagram enumeration.
//
// # Overview
//
// Autofeyn completes partial Feynman diagrams of a toy quantum
// electrodynamics. A request names the external electrons, positrons and
// photons and a set of vertices, each of which has one electron, one
// positron and one photon leg. Every way of pairing all legs into
// particle/antiparticle wires that leaves the diagram in one piece is a
// result. The pkg directory is organized into three areas:
//
//  1. Domain logic ([particle], [diagram])
//  2. Request handling ([io], [pager])
//  3. Infrastructure ([session], [cache], [config], [observability], [errors])
//
// # Architecture
//
// The typical data flow:
//
//	Request (flags, JSON or YAML)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [diagram] package (construct, enumerate lazily)
//	         ↓
//	    [pager] package (pages of 9, cursor saved in a [session])
//	         ↓
//	    Connection lists (terminal table or JSON)
//
// # Quick Start
//
//	g, _ := diagram.Construct(
//	    diagram.Externals{Electrons: []string{"i1"}, Positrons: []string{"i2"}},
//	    diagram.Externals{Photons: []string{"o1"}},
//	    []string{"v1", "v2", "v3"},
//	)
//	for d := range diagram.Enumerate(g).All() {
//	    fmt.Println(diagram.WiresOf(d, particle.Electron))
//	}
//
// # Main Packages
//
// [particle] - The particle catalogue: kinds, antiparticles, families, spin,
// and the interactions a vertex can be built from.
//
// [diagram] - Leg graphs, the depth-first pairing search, the connectivity
// filter and resumable cursors.
//
// [io] - Request decoding and diagram export.
//
// [pager] - Session-keyed paging and cached diagram counts.
//
// [session] - Browsing session storage: memory, file, Redis and MongoDB.
//
// [cache] - Byte caches (file, Redis, null) and key derivation.
//
// # Testing
//
//	go test ./...                       # All tests
//	go test -run Example ./pkg/...      # Examples only
//	go test -tags integration ./pkg/... # Include Redis and MongoDB tests
//
// [particle]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/particle
// [diagram]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/diagram
// [io]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/io
// [pager]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/pager
// [session]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/session
// [cache]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/autofeyn/pkg/errors
package pkg
