package pipeline

import (
	"context"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/render/sink"
	"github.com/matzehuels/carousel/pkg/scene"
)

func testScene(n int) *scene.Scene {
	sc := &scene.Scene{Width: 600, Height: 200}
	for i := 0; i < n; i++ {
		w := 100.0
		sc.Items = append(sc.Items, scene.Item{Label: string(rune('A' + i)), Width: &w, Height: 80})
	}
	sc.Normalize()
	return sc
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"ring.svg", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForRender(&scene.Scene{}); err != nil {
		t.Fatalf("ValidateForRender() error: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}

	opts = Options{}
	if err := opts.ValidateForLayout(testScene(1)); err != nil {
		t.Fatalf("ValidateForLayout() error: %v", err)
	}
	if opts.Width != 600 || opts.Height != 200 {
		t.Errorf("size = %vx%v, want scene size 600x200", opts.Width, opts.Height)
	}
}

func TestOptionsRejects(t *testing.T) {
	neg := -1
	tests := []struct {
		name string
		opts Options
	}{
		{"negative width", Options{Width: -1}},
		{"negative active", Options{ActiveItem: &neg}},
		{"negative at", Options{At: -time.Second}},
		{"negative from", Options{From: &neg}},
		{"bad format", Options{Formats: []string{"gif"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateForRender(testScene(2)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	active := 6
	result, err := r.Execute(context.Background(), testScene(5), Options{
		ActiveItem: &active,
		Formats:    []string{"svg", "json"},
		Labels:     true,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Config.ActiveItem != 1 {
		t.Errorf("ActiveItem = %d, want 1 (wrapped)", result.Config.ActiveItem)
	}
	if len(result.Targets) != 5 {
		t.Fatalf("Targets = %d, want 5", len(result.Targets))
	}
	active1 := result.Targets[1]
	if active1.X != 300 || active1.Y != 100 || active1.ZIndex != 5 {
		t.Errorf("active target = %+v", active1)
	}
	if !strings.Contains(string(result.Artifacts["svg"]), "<svg") {
		t.Error("missing svg artifact")
	}
	var out map[string]any
	if err := json.Unmarshal(result.Artifacts["json"], &out); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if result.SceneHash == "" || result.Stats.ItemCount != 5 {
		t.Errorf("result = %+v", result.Stats)
	}
}

func TestExecuteUnmeasured(t *testing.T) {
	sc := testScene(3)
	sc.Items[1].Width = nil

	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), sc, Options{})
	if !errors.IsConfiguration(err) {
		t.Errorf("Execute() error = %v, want configuration error", err)
	}
}

func TestExecuteCaches(t *testing.T) {
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	sc := testScene(4)

	first, err := r.Execute(ctx, sc, Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, sc, Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs")
	}

	refreshed, err := r.Execute(ctx, sc, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass cache: %+v", refreshed.CacheInfo)
	}

	sc.Items[0].Label = "changed"
	changed, err := r.Execute(ctx, sc, Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if changed.CacheInfo.LayoutHit {
		t.Error("changed scene should miss")
	}
}

func TestBuildSnapshotAt(t *testing.T) {
	sc := testScene(5)
	one := 1
	lr, err := GenerateLayout(context.Background(), sc, Options{ActiveItem: &one})
	if err != nil {
		t.Fatalf("GenerateLayout() error: %v", err)
	}

	settled, err := BuildSnapshot(sc, lr, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if settled.Frames[1].X != 300 {
		t.Errorf("settled active X = %v, want 300", settled.Frames[1].X)
	}

	from := layout.DefaultConfig()
	fromTargets, err := layout.Compute(sc.Measurables(), from, 600, 200)
	if err != nil {
		t.Fatal(err)
	}

	mid, err := BuildSnapshot(sc, lr, Options{At: 400 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if mid.At != 400*time.Millisecond {
		t.Errorf("At = %v", mid.At)
	}
	got := mid.Frames[1].X
	lo, hi := math.Min(fromTargets[1].X, 300), math.Max(fromTargets[1].X, 300)
	if got <= lo || got >= hi {
		t.Errorf("mid-transition X = %v, want strictly between %v and %v", got, lo, hi)
	}

	end, err := BuildSnapshot(sc, lr, Options{At: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	if end.Frames[1].X != 300 {
		t.Errorf("finished X = %v, want 300", end.Frames[1].X)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	lr, err := GenerateLayout(context.Background(), testScene(3), Options{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := MarshalLayout(lr)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Targets) != 3 || got.Targets[0] != lr.Targets[0] || got.Config.Duration != lr.Config.Duration {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestRenderSnapshotRing(t *testing.T) {
	sc := testScene(3)
	cfg := layout.DefaultConfig()
	targets, err := layout.Compute(sc.Measurables(), cfg, 600, 200)
	if err != nil {
		t.Fatal(err)
	}
	snap := sink.NewSnapshot(600, 200, sink.Items(sc), targets)

	out, err := RenderSnapshot(snap, cfg, Options{Formats: []string{FormatDOT}, Labels: true})
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	dot := string(out[FormatDOT])
	if !strings.Contains(dot, "graph carousel") || !strings.Contains(dot, `label="B"`) {
		t.Errorf("unexpected DOT output:\n%s", dot)
	}
}
