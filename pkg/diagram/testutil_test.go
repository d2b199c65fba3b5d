package diagram

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/autofeyn/pkg/particle"
)

// oracleGraph is e- e+ -> γ through three vertices.
func oracleGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := Construct(
		Externals{Electrons: []string{"i1"}, Positrons: []string{"i2"}},
		Externals{Photons: []string{"o1"}},
		[]string{"v1", "v2", "v3"},
	)
	require.NoError(t, err)
	return g
}

func formatMap(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + m[k]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// signature renders the electron and photon wiring of a completion.
func signature(g *Graph) string {
	return fmt.Sprintf("Electrons:%s, Photons:%s",
		formatMap(ConnectionsOf(g, particle.Electron)),
		formatMap(ConnectionsOf(g, particle.Photon)))
}

func signatures(gs []*Graph) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = signature(g)
	}
	return out
}

func drain(e *Enumerator) []*Graph {
	var out []*Graph
	for g := range e.All() {
		out = append(out, g)
	}
	return out
}

// wireSet is an order-independent key for a completion's pairings.
func wireSet(g *Graph) string {
	return fmt.Sprint(g.Wires())
}
