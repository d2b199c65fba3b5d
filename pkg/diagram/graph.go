package diagram

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/matzehuels/autofeyn/pkg/errors"
	"github.com/matzehuels/autofeyn/pkg/particle"
)

// Group tags for external legs. Vertex legs use their vertex index (>= 0).
const (
	Incoming = -2
	Outgoing = -1
)

// Externals names the external legs on one side of a diagram, by kind.
type Externals struct {
	Electrons []string `json:"electrons,omitempty" yaml:"electrons,omitempty"`
	Positrons []string `json:"positrons,omitempty" yaml:"positrons,omitempty"`
	Photons   []string `json:"photons,omitempty" yaml:"photons,omitempty"`
}

// Len returns the number of legs named.
func (x Externals) Len() int {
	return len(x.Electrons) + len(x.Positrons) + len(x.Photons)
}

type namedKind struct {
	kind  particle.Kind
	names []string
}

func (x Externals) byKind() []namedKind {
	return []namedKind{
		{particle.Electron, x.Electrons},
		{particle.Positron, x.Positrons},
		{particle.Photon, x.Photons},
	}
}

// Leg is one endpoint of a particle line.
type Leg struct {
	Name  string        // Leg name; the three legs of a vertex share the vertex name
	Kind  particle.Kind // Particle kind
	Group int           // Incoming, Outgoing, or the vertex index
}

// IsExternal reports whether the leg is an incoming or outgoing particle.
func (l Leg) IsExternal() bool { return l.Group < 0 }

// arena holds the immutable legs shared by every graph of one enumeration.
type arena struct {
	legs        []Leg
	firstVertex int
	vertices    []string
}

// wire is one pairing in a persistent list; next points at older pairings.
type wire struct {
	a, b int
	next *wire
}

// Graph is an endpoint graph: a fixed sequence of legs plus the pairings
// made so far. Legs are ordered incoming, outgoing, then three legs per
// vertex (electron, positron, photon).
//
// The zero value is not usable. Use Construct.
type Graph struct {
	arena *arena
	wires *wire
	pool  []int // unpaired leg indices, ascending
	table []int // partner per leg, built on first lookup
}

// Construct builds an unpaired graph. Every external leg name and every
// vertex name must be valid and distinct; violations are reported as
// errors.ErrCodeInvalidInput.
func Construct(in, out Externals, vertices []string) (*Graph, error) {
	shape := particle.Electromagnetic.Legs()
	size := in.Len() + out.Len() + len(shape)*len(vertices)

	a := &arena{
		legs:        make([]Leg, 0, size),
		firstVertex: in.Len() + out.Len(),
		vertices:    append([]string(nil), vertices...),
	}
	seen := make(map[string]string, size)
	claim := func(name, role string) error {
		if err := errors.ValidateName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", role)
		}
		if prev, dup := seen[name]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate name %q (%s and %s)", name, prev, role)
		}
		seen[name] = role
		return nil
	}

	sides := []struct {
		group int
		label string
		legs  Externals
	}{
		{Incoming, "incoming", in},
		{Outgoing, "outgoing", out},
	}
	for _, side := range sides {
		for _, set := range side.legs.byKind() {
			for _, name := range set.names {
				if err := claim(name, fmt.Sprintf("%s %s", side.label, set.kind)); err != nil {
					return nil, err
				}
				a.legs = append(a.legs, Leg{Name: name, Kind: set.kind, Group: side.group})
			}
		}
	}
	for v, name := range vertices {
		if err := claim(name, "vertex"); err != nil {
			return nil, err
		}
		for _, kind := range shape {
			a.legs = append(a.legs, Leg{Name: name, Kind: kind, Group: v})
		}
	}

	pool := make([]int, len(a.legs))
	for i := range pool {
		pool[i] = i
	}
	return &Graph{arena: a, pool: pool}, nil
}

// Size returns the number of legs.
func (g *Graph) Size() int { return len(g.arena.legs) }

// Leg returns the leg at index i.
func (g *Graph) Leg(i int) Leg { return g.arena.legs[i] }

// Vertices returns the vertex names in construction order.
func (g *Graph) Vertices() []string { return append([]string(nil), g.arena.vertices...) }

// Unpaired returns the indices of unpaired legs in ascending order.
func (g *Graph) Unpaired() []int { return append([]int(nil), g.pool...) }

// Complete reports whether every leg is paired.
func (g *Graph) Complete() bool { return len(g.pool) == 0 }

// Partner returns the leg paired with i, if any.
func (g *Graph) Partner(i int) (int, bool) {
	p := g.partners()[i]
	return p, p >= 0
}

func (g *Graph) partners() []int {
	if g.table != nil {
		return g.table
	}
	t := make([]int, g.Size())
	for i := range t {
		t[i] = -1
	}
	for w := g.wires; w != nil; w = w.next {
		t[w.a] = w.b
		t[w.b] = w.a
	}
	g.table = t
	return t
}

// PeersAtVertex returns the other legs of i's vertex in ascending order.
// External legs have no peers.
func (g *Graph) PeersAtVertex(i int) []int {
	leg := g.arena.legs[i]
	if leg.IsExternal() {
		return nil
	}
	base := g.arena.firstVertex + 3*leg.Group
	peers := make([]int, 0, 2)
	for j := base; j < base+3; j++ {
		if j != i {
			peers = append(peers, j)
		}
	}
	return peers
}

// IsCompatiblePair reports whether legs i and j may be wired: the kind of i
// is the antiparticle of the kind of j and the legs carry different group
// tags.
func (g *Graph) IsCompatiblePair(i, j int) bool {
	if i == j {
		return false
	}
	a, b := g.arena.legs[i], g.arena.legs[j]
	return a.Kind == particle.Anti(b.Kind) && a.Group != b.Group
}

// Pair returns a new graph with legs i and j wired together. The receiver is
// not modified. Both legs must be unpaired and compatible; otherwise Pair
// returns an errors.ErrCodeIllegalPair error.
func (g *Graph) Pair(i, j int) (*Graph, error) {
	pi, pj := -1, -1
	for pos, leg := range g.pool {
		switch leg {
		case i:
			pi = pos
		case j:
			pj = pos
		}
	}
	if pi < 0 || pj < 0 || !g.IsCompatiblePair(i, j) {
		return nil, errors.New(errors.ErrCodeIllegalPair, "cannot pair legs %d and %d", i, j)
	}
	return g.derive(pi, pj), nil
}

// branch pairs the pool's highest leg with the leg at pool position pos.
// Proposing an illegal pair is a programming error and panics.
func (g *Graph) branch(pos int) *Graph {
	last := len(g.pool) - 1
	if pos < 0 || pos >= last || !g.IsCompatiblePair(g.pool[last], g.pool[pos]) {
		panic(errors.New(errors.ErrCodeIllegalPair, "pool position %d cannot pair with pivot", pos))
	}
	return g.derive(pos, last)
}

// derive returns a child sharing g's arena and wire history, with the legs
// at pool positions p and q wired and removed from its own pool.
func (g *Graph) derive(p, q int) *Graph {
	a, b := g.pool[p], g.pool[q]
	pool := make([]int, 0, len(g.pool)-2)
	for pos, leg := range g.pool {
		if pos != p && pos != q {
			pool = append(pool, leg)
		}
	}
	return &Graph{
		arena: g.arena,
		wires: &wire{a: min(a, b), b: max(a, b), next: g.wires},
		pool:  pool,
	}
}

// IsFullyConnected reports whether every leg is paired and the legs form a
// single component, following pairing edges and same-vertex edges. A graph
// with no legs is not a diagram and reports false.
func (g *Graph) IsFullyConnected() bool {
	n := g.Size()
	if n == 0 || len(g.pool) != 0 {
		return false
	}
	partner := g.partners()
	visited := make([]bool, n)

	pending := arraystack.New()
	pending.Push(0)
	for _, p := range g.PeersAtVertex(0) {
		pending.Push(p)
	}
	for !pending.Empty() {
		top, _ := pending.Pop()
		i := top.(int)
		if visited[i] {
			continue
		}
		j := partner[i]
		visited[i], visited[j] = true, true
		for _, p := range g.PeersAtVertex(j) {
			pending.Push(p)
		}
	}

	for _, v := range visited {
		if !v {
			return false
		}
	}
	return true
}

// Wire is a pairing between two legs, A < B.
type Wire struct {
	A, B int
}

// Wires returns every pairing ordered by the lower leg index.
func (g *Graph) Wires() []Wire {
	partner := g.partners()
	wires := make([]Wire, 0, (g.Size()-len(g.pool))/2)
	for i, p := range partner {
		if p > i {
			wires = append(wires, Wire{A: i, B: p})
		}
	}
	return wires
}

// String renders each leg as name{kind}, followed by (partner) once paired.
func (g *Graph) String() string {
	var b strings.Builder
	b.WriteString("Nodes: [")
	for i, leg := range g.arena.legs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s{%s}", leg.Name, leg.Kind)
		if p, ok := g.Partner(i); ok {
			fmt.Fprintf(&b, "(%s)", g.arena.legs[p].Name)
		}
	}
	b.WriteString("]")
	return b.String()
}
