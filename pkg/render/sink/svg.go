package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/carousel/pkg/layout"
)

const (
	defaultFill       = "#e8eef7"
	defaultActiveFill = "#7aa2f7"
	defaultStroke     = "#2e3440"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	fill       string
	activeFill string
	stroke     string
	background string
}

// WithLabels draws each item's label, or its index when it has none.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithFill sets the fill color of inactive items.
func WithFill(color string) SVGOption { return func(r *svgRenderer) { r.fill = color } }

// WithActiveFill sets the fill color of the active item.
func WithActiveFill(color string) SVGOption { return func(r *svgRenderer) { r.activeFill = color } }

// WithBackground fills the container with color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG draws the snapshot as a standalone SVG document.
func RenderSVG(s Snapshot, opts ...SVGOption) []byte {
	r := svgRenderer{fill: defaultFill, activeFill: defaultActiveFill, stroke: defaultStroke}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}
	for _, f := range s.Stacked() {
		r.renderFrame(&buf, f)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderFrame(buf *bytes.Buffer, f Frame) {
	fill := r.fill
	if f.Placement == layout.PlacementActive {
		fill = r.activeFill
	}
	fmt.Fprintf(buf, `  <g class="item %s" data-index="%d" data-z="%d" transform="translate(%.2f %.2f) rotate(%.2f) scale(%.4f)">`+"\n",
		f.Placement, f.Index, f.ZIndex, f.X, f.Y, f.Rotation, f.Scale)
	if f.ID != "" {
		fmt.Fprintf(buf, `    <title>%s</title>`+"\n", html.EscapeString(f.ID))
	}
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		-f.Width/2, -f.Height/2, f.Width, f.Height, html.EscapeString(fill), html.EscapeString(r.stroke))
	if r.labels {
		label := f.Label
		if label == "" {
			label = strconv.Itoa(f.Index)
		}
		fmt.Fprintf(buf, `    <text x="0" y="0" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="14">%s</text>`+"\n",
			html.EscapeString(label))
	}
	buf.WriteString("  </g>\n")
}
