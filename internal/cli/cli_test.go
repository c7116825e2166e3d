package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/scene"
)

const testSceneYAML = `width: 600
height: 200
config:
  duration: 0s
items:
  - label: Alpha
    width: 100
    height: 80
  - label: Beta
    width: 100
    height: 80
  - label: Gamma
    width: 100
    height: 80
  - label: Delta
    width: 100
    height: 80
`

// writeTestScene writes a four-item scene and points the file cache at a
// temporary directory.
func writeTestScene(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("CAROUSEL_REDIS_URL", "")
	t.Setenv("CAROUSEL_MONGO_URL", "")
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(testSceneYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "svg,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	tests := []struct {
		name    string
		formats []string
		input   string
		output  string
		want    []string
	}{
		{"derived from input", []string{"svg"}, "scene.yaml", "", []string{"scene.svg"}},
		{"explicit single output", []string{"svg"}, "scene.yaml", "out.svg", []string{"out.svg"}},
		{"output as base", []string{"svg", "json"}, "scene.yaml", "snap.svg", []string{"snap.svg", "snap.json"}},
		{"never overwrites json scene", []string{"json"}, "scene.json", "", []string{"scene.snapshot.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := filepath.Join(dir, tt.input)
			output := ""
			if tt.output != "" {
				output = filepath.Join(dir, tt.output)
			}
			paths, err := writeArtifacts(artifacts, tt.formats, input, output)
			if err != nil {
				t.Fatalf("writeArtifacts: %v", err)
			}
			if len(paths) != len(tt.want) {
				t.Fatalf("got %d paths, want %d", len(paths), len(tt.want))
			}
			for i, p := range paths {
				if p != filepath.Join(dir, tt.want[i]) {
					t.Errorf("paths[%d] = %s, want %s", i, p, tt.want[i])
				}
				data, err := os.ReadFile(p)
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(data, artifacts[tt.formats[i]]) {
					t.Errorf("%s: unexpected contents %q", p, data)
				}
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	path := writeTestScene(t)
	out := filepath.Join(filepath.Dir(path), "out.svg")

	if err := runCommand(t, "render", path, "-o", out, "--active", "2"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("output is not an svg: %.40s", data)
	}
	if !bytes.Contains(data, []byte("Gamma")) {
		t.Error("svg should contain the item labels")
	}
}

func TestLayoutCommandWritesJSON(t *testing.T) {
	path := writeTestScene(t)
	out := filepath.Join(filepath.Dir(path), "layout.json")

	if err := runCommand(t, "layout", path, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"targets"`)) {
		t.Errorf("layout output missing targets: %s", data)
	}
}

func TestTapCommandWrite(t *testing.T) {
	path := writeTestScene(t)

	// right, right, left
	if err := runCommand(t, "tap", path, "--x", "500", "--x", "500", "--x", "10", "--write"); err != nil {
		t.Fatalf("tap: %v", err)
	}
	sc, err := scene.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Config.ActiveItem == nil || *sc.Config.ActiveItem != 1 {
		t.Errorf("stored active item = %v, want 1", sc.Config.ActiveItem)
	}
}

func TestUnknownSceneFile(t *testing.T) {
	writeTestScene(t)
	if err := runCommand(t, "layout", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing scene file")
	}
}

func TestPlayModel(t *testing.T) {
	path := writeTestScene(t)
	sc, err := scene.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := sc.LayoutConfig()
	if err != nil {
		t.Fatal(err)
	}
	sprites := sc.Sprites()
	ctrl := carousel.New(scene.AsItems(sprites), carousel.WithConfig(cfg))

	var m tea.Model = newPlayModel(ctrl, sprites, sc)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !ctrl.Ready() {
		t.Fatal("window size should load the carousel")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := ctrl.ActiveItem(); got != 1 {
		t.Errorf("after right: active = %d, want 1", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := ctrl.ActiveItem(); got != 3 {
		t.Errorf("after two lefts: active = %d, want 3", got)
	}

	view := m.View()
	if !strings.Contains(view, "Delta") {
		t.Errorf("view should name the active item:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"completion", shell})
		if err := root.Execute(); err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out.String(), "carousel") {
			t.Errorf("completion %s script does not mention carousel", shell)
		}
	}
	if err := runCommand(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}
