package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/render/sink"
)

func testSnapshot(n int) sink.Snapshot {
	items := make([]sink.Item, n)
	for i := range items {
		items[i] = sink.Item{ID: string(rune('a' + i)), Label: "Item " + string(rune('A'+i)), Width: 100, Height: 80}
	}
	boxes := make([]layout.Measurable, n)
	for i := range boxes {
		boxes[i] = layout.Box{W: 100, H: 80}
	}
	targets, err := layout.Compute(boxes, layout.DefaultConfig(), 600, 200)
	if err != nil {
		panic(err)
	}
	return sink.NewSnapshot(600, 200, items, targets)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testSnapshot(4), Options{Labels: true})

	for _, want := range []string{
		"graph carousel {",
		"layout=neato;",
		`"a" -- "b";`,
		`"d" -- "a";`,
		`label="Item A"`,
		`pos="300.00,100.00!"`,
		`fillcolor="#fde68a"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTIndexLabels(t *testing.T) {
	dot := ToDOT(testSnapshot(3), Options{})
	if strings.Contains(dot, "Item A") {
		t.Error("labels disabled: DOT should not contain item labels")
	}
	if !strings.Contains(dot, `label="0"`) {
		t.Errorf("expected index label:\n%s", dot)
	}
}

func TestToDOTEdges(t *testing.T) {
	tests := []struct {
		n     int
		edges int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{5, 5},
	}
	for _, tt := range tests {
		dot := ToDOT(testSnapshot(tt.n), Options{})
		if got := strings.Count(dot, " -- "); got != tt.edges {
			t.Errorf("%d items: got %d edges, want %d", tt.n, got, tt.edges)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(testSnapshot(3), Options{Labels: true}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("root element not normalized: %.200s", svg)
	}
	if !bytes.Contains(svg, []byte("Item B")) {
		t.Error("svg should contain labels")
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG("graph {"); err == nil {
		t.Error("expected an error for malformed DOT")
	}
}
