package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/errors"
)

// Format is a request encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Request describes an incomplete diagram: named external legs and the
// vertices available to connect them.
type Request struct {
	IncomingElectrons []string `json:"incomingElectrons,omitempty" yaml:"incomingElectrons,omitempty"`
	IncomingPositrons []string `json:"incomingPositrons,omitempty" yaml:"incomingPositrons,omitempty"`
	IncomingPhotons   []string `json:"incomingPhotons,omitempty" yaml:"incomingPhotons,omitempty"`
	OutgoingElectrons []string `json:"outgoingElectrons,omitempty" yaml:"outgoingElectrons,omitempty"`
	OutgoingPositrons []string `json:"outgoingPositrons,omitempty" yaml:"outgoingPositrons,omitempty"`
	OutgoingPhotons   []string `json:"outgoingPhotons,omitempty" yaml:"outgoingPhotons,omitempty"`
	Interactions      []string `json:"interactions,omitempty" yaml:"interactions,omitempty"`
}

// Incoming returns the incoming legs by kind.
func (r Request) Incoming() diagram.Externals {
	return diagram.Externals{Electrons: r.IncomingElectrons, Positrons: r.IncomingPositrons, Photons: r.IncomingPhotons}
}

// Outgoing returns the outgoing legs by kind.
func (r Request) Outgoing() diagram.Externals {
	return diagram.Externals{Electrons: r.OutgoingElectrons, Positrons: r.OutgoingPositrons, Photons: r.OutgoingPhotons}
}

// Empty reports whether the request names no legs at all.
func (r Request) Empty() bool {
	return r.Incoming().Len() == 0 && r.Outgoing().Len() == 0 && len(r.Interactions) == 0
}

// Graph builds the unpaired graph for the request.
func (r Request) Graph() (*diagram.Graph, error) {
	return diagram.Construct(r.Incoming(), r.Outgoing(), r.Interactions)
}

// Canonical returns a stable encoding of the request, suitable as a cache key
// input. Requests that differ only in JSON layout encode identically.
func (r Request) Canonical() []byte {
	data, _ := json.Marshal(r)
	return data
}

// ReadRequest decodes a request from r. Unknown fields are rejected so that
// typos in leg lists are not silently ignored. Decoding failures are reported
// as errors.ErrCodeInvalidInput.
func ReadRequest(r io.Reader, format Format) (Request, error) {
	var req Request
	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil && err != io.EOF {
			return Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
		}
	default:
		return Request{}, errors.New(errors.ErrCodeInvalidInput, "unsupported request format %q", format)
	}
	return req, nil
}

// ParseRequest decodes a request held in memory.
func ParseRequest(data []byte, format Format) (Request, error) {
	return ReadRequest(bytes.NewReader(data), format)
}

// ImportRequest reads a request file. Files ending in .yaml or .yml are read
// as YAML, anything else as JSON.
func ImportRequest(path string) (Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return Request{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	req, err := ReadRequest(f, FormatOf(path))
	if err != nil {
		return Request{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// FormatOf infers a request format from a file name.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
