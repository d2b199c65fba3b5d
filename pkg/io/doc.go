// Package io reads diagram requests and writes enumerated diagrams.
//
// # Request Format
//
// A request names the external legs on each side of the process and the
// interaction vertices to wire them through. It can be written as JSON:
//
//	{
//	  "incomingElectrons": ["i1"],
//	  "incomingPositrons": ["i2"],
//	  "outgoingPhotons": ["o1"],
//	  "interactions": ["v1", "v2", "v3"]
//	}
//
// or with the same keys as YAML. Every list is optional. Use [ReadRequest] to
// decode from an io.Reader or [ImportRequest] to read a file; the format of a
// file is taken from its extension.
//
// [Request.Graph] validates the names and builds the unpaired
// [diagram.Graph].
//
// # Diagram Format
//
// Each completed diagram is exported as three lists of "from-to" strings,
// one entry per wire:
//
//	{
//	  "electronConnections": ["i1-v2", "v1-i2", "v2-v3", "v3-v1"],
//	  "positronConnections": [],
//	  "photonConnections": ["o1-v1", "v2-v3"]
//	}
//
// Every fermion line is listed once, from its electron end, so the positron
// list is always empty. Lists follow leg order, so repeated exports of the
// same diagram are identical.
package io
