package particle

// Interaction is a Standard Model vertex shape: the kinds of the legs that
// meet at one interaction point.
type Interaction int

const (
	// Electromagnetic couples an electron, a positron and a photon.
	Electromagnetic Interaction = iota
)

// Legs returns the leg kinds of the interaction in construction order.
func (i Interaction) Legs() []Kind {
	switch i {
	case Electromagnetic:
		return []Kind{Electron, AntiElectron, Photon}
	default:
		return nil
	}
}

func (i Interaction) String() string {
	if i == Electromagnetic {
		return "electromagnetic"
	}
	return "unknown"
}
