package particle

import (
	"fmt"
	"strings"
)

// Spin distinguishes matter particles from force carriers.
type Spin int

const (
	Fermion Spin = iota
	Boson
)

func (s Spin) String() string {
	if s == Boson {
		return "boson"
	}
	return "fermion"
}

// Group is the Standard Model family a kind belongs to.
type Group int

const (
	Quark Group = iota
	Lepton
	GaugeBoson
)

// Spin returns the spin type shared by every member of the group.
func (g Group) Spin() Spin {
	if g == GaugeBoson {
		return Boson
	}
	return Fermion
}

func (g Group) String() string {
	switch g {
	case Quark:
		return "quark"
	case Lepton:
		return "lepton"
	case GaugeBoson:
		return "gauge boson"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// Kind is a particle species. The zero value is [Up].
type Kind uint8

const (
	// Quarks
	Up Kind = iota
	Down
	Charm
	Strange
	Top
	Bottom
	// Leptons
	Electron
	Muon
	Tau
	ElectronNeutrino
	MuonNeutrino
	TauNeutrino
	// Gauge bosons
	Gluon
	Photon
	ZBoson
	WBoson
	// Anti quarks
	AntiUp
	AntiDown
	AntiCharm
	AntiStrange
	AntiTop
	AntiBottom
	// Anti leptons
	AntiElectron
	AntiMuon
	AntiTau
	AntiElectronNeutrino
	AntiMuonNeutrino
	AntiTauNeutrino
	// Anti gauge bosons
	AntiWBoson

	numKinds
)

// Positron is the conventional name for the anti-electron.
const Positron = AntiElectron

type info struct {
	name  string
	group Group
	anti  bool
	conj  Kind
}

var catalog = [numKinds]info{
	Up:                   {"up", Quark, false, AntiUp},
	Down:                 {"down", Quark, false, AntiDown},
	Charm:                {"charm", Quark, false, AntiCharm},
	Strange:              {"strange", Quark, false, AntiStrange},
	Top:                  {"top", Quark, false, AntiTop},
	Bottom:               {"bottom", Quark, false, AntiBottom},
	Electron:             {"electron", Lepton, false, AntiElectron},
	Muon:                 {"muon", Lepton, false, AntiMuon},
	Tau:                  {"tau", Lepton, false, AntiTau},
	ElectronNeutrino:     {"electron-neutrino", Lepton, false, AntiElectronNeutrino},
	MuonNeutrino:         {"muon-neutrino", Lepton, false, AntiMuonNeutrino},
	TauNeutrino:          {"tau-neutrino", Lepton, false, AntiTauNeutrino},
	Gluon:                {"gluon", GaugeBoson, false, Gluon},
	Photon:               {"photon", GaugeBoson, false, Photon},
	ZBoson:               {"z-boson", GaugeBoson, false, ZBoson},
	WBoson:               {"w-boson", GaugeBoson, false, AntiWBoson},
	AntiUp:               {"anti-up", Quark, true, Up},
	AntiDown:             {"anti-down", Quark, true, Down},
	AntiCharm:            {"anti-charm", Quark, true, Charm},
	AntiStrange:          {"anti-strange", Quark, true, Strange},
	AntiTop:              {"anti-top", Quark, true, Top},
	AntiBottom:           {"anti-bottom", Quark, true, Bottom},
	AntiElectron:         {"positron", Lepton, true, Electron},
	AntiMuon:             {"anti-muon", Lepton, true, Muon},
	AntiTau:              {"anti-tau", Lepton, true, Tau},
	AntiElectronNeutrino: {"anti-electron-neutrino", Lepton, true, ElectronNeutrino},
	AntiMuonNeutrino:     {"anti-muon-neutrino", Lepton, true, MuonNeutrino},
	AntiTauNeutrino:      {"anti-tau-neutrino", Lepton, true, TauNeutrino},
	AntiWBoson:           {"anti-w-boson", GaugeBoson, true, WBoson},
}

// All returns every kind in declaration order.
func All() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k is a catalogued kind.
func (k Kind) Valid() bool { return k < numKinds }

// Group returns the family of k.
func (k Kind) Group() Group { return catalog[k].group }

// Spin returns the spin type of k.
func (k Kind) Spin() Spin { return catalog[k].group.Spin() }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return catalog[k].name
}

// Anti returns the antiparticle of k. It is total and involutive.
func Anti(k Kind) Kind { return catalog[k].conj }

// IsAnti reports whether k is an antiparticle. Self-conjugate kinds
// report false.
func IsAnti(k Kind) bool { return catalog[k].anti }

// IsSelfConjugate reports whether k is its own antiparticle.
func IsSelfConjugate(k Kind) bool { return Anti(k) == k }

// ParseKind resolves a kind by name, case-insensitively. "anti-electron"
// and "e+" are accepted for the positron, "e-" for the electron and
// "gamma" for the photon.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "anti-electron", "e+":
		return AntiElectron, nil
	case "e-":
		return Electron, nil
	case "gamma":
		return Photon, nil
	}
	for k, in := range catalog {
		if in.name == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown particle kind %q", s)
}
