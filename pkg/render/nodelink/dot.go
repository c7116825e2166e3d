package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/render/sink"
)

// pointsPerInch converts snapshot units to Graphviz node sizes.
const pointsPerInch = 72.0

// Options configures ring diagram generation.
type Options struct {
	// Labels shows item labels inside the boxes. When false, only the item
	// index is shown.
	Labels bool
}

// ToDOT converts a snapshot to Graphviz DOT source. Positions are pinned in
// points with the y axis flipped, so the neato engine reproduces the
// snapshot's arrangement.
func ToDOT(s sink.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph carousel {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontsize=12];\n")
	buf.WriteString("  edge [color=\"#94a3b8\"];\n")
	buf.WriteString("\n")

	for _, f := range s.Frames {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(f), strings.Join(fmtAttrs(f, s.Height, opts), ", "))
	}

	buf.WriteString("\n")
	n := len(s.Frames)
	switch {
	case n == 2:
		fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(s.Frames[0]), nodeID(s.Frames[1]))
	case n > 2:
		for i, f := range s.Frames {
			fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(f), nodeID(s.Frames[(i+1)%n]))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(f sink.Frame) string {
	if f.ID != "" {
		return f.ID
	}
	return strconv.Itoa(f.Index)
}

func fmtAttrs(f sink.Frame, height float64, opts Options) []string {
	label := strconv.Itoa(f.Index)
	if opts.Labels && f.Label != "" {
		label = f.Label
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", f.X, height-f.Y),
		fmt.Sprintf("width=%.4f", f.Width*f.Scale/pointsPerInch),
		fmt.Sprintf("height=%.4f", f.Height*f.Scale/pointsPerInch),
	}
	switch {
	case f.Placement == layout.PlacementActive:
		attrs = append(attrs, "fillcolor=\"#fde68a\"", "penwidth=2")
	case f.Placement.Parked():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element, which sizes the
// document in pt, with a plain pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
