package particle

import "testing"

func TestAntiIsInvolution(t *testing.T) {
	for _, k := range All() {
		if got := Anti(Anti(k)); got != k {
			t.Errorf("Anti(Anti(%s)) = %s", k, got)
		}
		if Anti(k).Group() != k.Group() {
			t.Errorf("%s and %s are in different groups", k, Anti(k))
		}
	}
}

func TestSelfConjugate(t *testing.T) {
	want := map[Kind]bool{Photon: true, Gluon: true, ZBoson: true}
	for _, k := range All() {
		if got := IsSelfConjugate(k); got != want[k] {
			t.Errorf("IsSelfConjugate(%s) = %v, want %v", k, got, want[k])
		}
		if IsSelfConjugate(k) && IsAnti(k) {
			t.Errorf("self-conjugate %s reports IsAnti", k)
		}
	}
	if Anti(WBoson) != AntiWBoson || Anti(AntiWBoson) != WBoson {
		t.Error("W boson pair should map to each other")
	}
}

func TestIsAnti(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{Electron, false},
		{Positron, true},
		{Photon, false},
		{AntiTop, true},
		{TauNeutrino, false},
	}
	for _, tt := range tests {
		if got := IsAnti(tt.kind); got != tt.want {
			t.Errorf("IsAnti(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestSpin(t *testing.T) {
	if Photon.Spin() != Boson {
		t.Errorf("photon spin = %s", Photon.Spin())
	}
	if Electron.Spin() != Fermion || AntiCharm.Spin() != Fermion {
		t.Error("leptons and quarks should be fermions")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"electron", Electron, false},
		{"Positron", Positron, false},
		{"anti-electron", Positron, false},
		{"e+", Positron, false},
		{" gamma ", Photon, false},
		{"w-boson", WBoson, false},
		{"graviton", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseKind(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range All() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
}

func TestElectromagneticLegs(t *testing.T) {
	legs := Electromagnetic.Legs()
	if len(legs) != 3 {
		t.Fatalf("expected 3 legs, got %d", len(legs))
	}
	if legs[0] != Electron || legs[1] != Positron || legs[2] != Photon {
		t.Errorf("unexpected leg order %v", legs)
	}
}
