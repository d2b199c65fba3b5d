package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stdio "io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autofeyn/pkg/errors"
	"github.com/matzehuels/autofeyn/pkg/io"
	"github.com/matzehuels/autofeyn/pkg/pager"
)

var annihilationArgs = []string{
	"--in-electron", "i1",
	"--in-positron", "i2",
	"--out-photon", "o1",
	"--vertex", "v1,v2,v3",
}

// testRoot builds the root command with its output captured in out and
// logging discarded.
func testRoot(out stdio.Writer) *cobra.Command {
	c := New(stdio.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(out)
	root.SetErr(stdio.Discard)
	root.SetContext(context.Background())
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := testRoot(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(stdio.Discard, LogInfo).RootCommand()

	want := []string{"browse", "cache", "completion", "count", "enumerate", "particles", "serve", "sessions"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q (have %v)", name, got)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(stdio.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestEnumerateJSON(t *testing.T) {
	out, err := run(t, append([]string{"enumerate", "--format", "json"}, annihilationArgs...)...)
	if err != nil {
		t.Fatal(err)
	}

	var ds []io.Diagram
	if err := json.Unmarshal([]byte(out), &ds); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(ds) != 24 {
		t.Fatalf("got %d diagrams, want 24", len(ds))
	}
	first := ds[0]
	if want := []string{"i1-v2", "v1-i2", "v2-v3", "v3-v1"}; !reflect.DeepEqual(first.ElectronConnections, want) {
		t.Errorf("electrons = %v, want %v", first.ElectronConnections, want)
	}
	if want := []string{"o1-v1", "v2-v3"}; !reflect.DeepEqual(first.PhotonConnections, want) {
		t.Errorf("photons = %v, want %v", first.PhotonConnections, want)
	}
	if first.PositronConnections == nil || len(first.PositronConnections) != 0 {
		t.Errorf("positrons = %#v, want empty list", first.PositronConnections)
	}
}

func TestEnumerateLimit(t *testing.T) {
	out, err := run(t, append([]string{"enumerate", "--format", "json", "-n", "5"}, annihilationArgs...)...)
	if err != nil {
		t.Fatal(err)
	}
	var ds []io.Diagram
	if err := json.Unmarshal([]byte(out), &ds); err != nil {
		t.Fatal(err)
	}
	if len(ds) != 5 {
		t.Errorf("got %d diagrams, want 5", len(ds))
	}
}

func TestEnumerateText(t *testing.T) {
	out, err := run(t, append([]string{"enumerate"}, annihilationArgs...)...)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Electrons", "Photons", "i1-v2", "o1-v1", "24"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestEnumerateFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "annihilation.yaml")
	doc := `incomingElectrons: [i1]
incomingPositrons: [i2]
outgoingPhotons: [o1]
interactions: [v1, v2, v3]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "diagrams.json")

	if _, err := run(t, "enumerate", "-f", path, "-o", outPath); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var ds []io.Diagram
	if err := json.Unmarshal(data, &ds); err != nil {
		t.Fatal(err)
	}
	if len(ds) != 24 {
		t.Errorf("file holds %d diagrams, want 24", len(ds))
	}
}

func TestEnumerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no legs", []string{"enumerate"}, errors.ErrCodeInvalidInput},
		{"file and flags", []string{"enumerate", "-f", "x.json", "--vertex", "v1"}, errors.ErrCodeInvalidInput},
		{"duplicate names", []string{"enumerate", "--in-electron", "a", "--vertex", "a"}, errors.ErrCodeInvalidInput},
		{"bad format", append([]string{"enumerate", "--format", "svg"}, annihilationArgs...), ""},
		{"negative limit", append([]string{"enumerate", "--limit", "-1"}, annihilationArgs...), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("error %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCountJSON(t *testing.T) {
	out, err := run(t, append([]string{"count", "--json", "--no-cache"}, annihilationArgs...)...)
	if err != nil {
		t.Fatal(err)
	}
	var res pager.CountResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if res.Diagrams != 24 || res.Cached {
		t.Errorf("count = %+v, want 24 fresh", res)
	}
	if res.Attempts == 0 {
		t.Error("attempts should be reported")
	}
}

func TestCountUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	args := append([]string{"count", "--json"}, annihilationArgs...)
	if _, err := run(t, args...); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	var res pager.CountResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Cached || res.Diagrams != 24 {
		t.Errorf("second count = %+v, want cached 24", res)
	}

	out, err = run(t, append(args, "--refresh")...)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Error("--refresh should recount")
	}
}

func TestParticles(t *testing.T) {
	out, err := run(t, "particles")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"electron", "positron", "photon", "gluon", "electromagnetic"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	out, err = run(t, "particles", "--group", "gauge-boson")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "muon") {
		t.Error("--group gauge-boson should not list leptons")
	}
	if !strings.Contains(out, "gluon") {
		t.Error("--group gauge-boson should list the gluon")
	}

	if _, err := run(t, "particles", "--group", "meson"); err == nil {
		t.Error("unknown group should fail")
	}
}

func TestSessionsCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "sessions", "path", "--dir", dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("sessions path = %q, want %q", out, dir)
	}

	if err := os.WriteFile(filepath.Join(dir, "abc.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "sessions", "clear", "--dir", dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "abc.json")); !os.IsNotExist(err) {
		t.Error("session file should be removed")
	}

	if _, err := run(t, "sessions", "prune", "--dir", dir); err != nil {
		t.Fatal(err)
	}
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "autofeyn") {
		t.Error("bash completion should mention the program name")
	}
}
