package diagram

import "github.com/matzehuels/autofeyn/pkg/particle"

// NamedWire is a wire seen from a leg of a requested kind.
type NamedWire struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// String renders the wire as "from-to".
func (w NamedWire) String() string { return w.From + "-" + w.To }

// WiresOf lists, in leg order, every paired leg of the given kind together
// with its partner. Each physical wire appears once: for a self-conjugate
// kind only the lower-indexed end emits; otherwise every leg of the kind
// emits, since its partner is the conjugate kind.
func WiresOf(g *Graph, kind particle.Kind) []NamedWire {
	self := particle.IsSelfConjugate(kind)
	partner := g.partners()
	var wires []NamedWire
	for i, leg := range g.arena.legs {
		p := partner[i]
		if p < 0 || leg.Kind != kind {
			continue
		}
		if self && p < i {
			continue
		}
		wires = append(wires, NamedWire{From: leg.Name, To: g.arena.legs[p].Name})
	}
	return wires
}

// ConnectionsOf returns the wires of the given kind as a name-to-name map,
// following the same one-entry-per-wire rule as WiresOf.
func ConnectionsOf(g *Graph, kind particle.Kind) map[string]string {
	wires := WiresOf(g, kind)
	m := make(map[string]string, len(wires))
	for _, w := range wires {
		m[w.From] = w.To
	}
	return m
}
