// Package nodelink renders a carousel snapshot as a node-link ring diagram.
//
// # Overview
//
// Every item becomes a box pinned at its snapshot position and scaled by its
// snapshot scale. Neighbouring items are joined by edges in item order, and
// the last item is joined back to the first, so the diagram shows the ring
// that [carousel] stepping walks around. The active item is highlighted.
//
// # Usage
//
//	dot := nodelink.ToDOT(snap, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering with the neato engine, which honours pinned node positions. No
// Graphviz installation is needed.
//
// [carousel]: github.com/matzehuels/carousel/pkg/carousel
package nodelink
