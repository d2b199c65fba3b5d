// Package particle is the static Standard Model catalogue used by the
// diagram engine.
//
// # Kinds
//
// Every [Kind] has a declared antiparticle ([Anti]) and belongs to a [Group].
// The relation is an involution: Anti(Anti(k)) == k for every kind. Photon,
// gluon and Z boson are their own antiparticles; the W boson pair maps to
// each other; quarks and leptons map to their conjugates.
//
//	particle.Anti(particle.Electron)  // AntiElectron
//	particle.Anti(particle.Photon)    // Photon
//	particle.IsAnti(particle.Photon)  // false
//
// # Interactions
//
// An [Interaction] lists the legs that meet at a vertex. Only
// [Electromagnetic] (electron, positron, photon) is defined, and it is the
// shape every named vertex takes when a diagram is constructed.
package particle
