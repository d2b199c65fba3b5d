package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/particle"
)

// Diagram is the exported form of one completed diagram.
type Diagram struct {
	ElectronConnections []string `json:"electronConnections"`
	PositronConnections []string `json:"positronConnections"`
	PhotonConnections   []string `json:"photonConnections"`
}

// Export converts a completed graph into its connection lists.
func Export(g *diagram.Graph) Diagram {
	return Diagram{
		ElectronConnections: wireStrings(diagram.WiresOf(g, particle.Electron)),
		PositronConnections: []string{},
		PhotonConnections:   wireStrings(diagram.WiresOf(g, particle.Photon)),
	}
}

// ExportAll converts a batch of completed graphs.
func ExportAll(gs []*diagram.Graph) []Diagram {
	out := make([]Diagram, len(gs))
	for i, g := range gs {
		out[i] = Export(g)
	}
	return out
}

func wireStrings(ws []diagram.NamedWire) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes v as JSON to a file at path.
func ExportJSON(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, v)
}
