// Package render groups the output renderers for carousel snapshots.
//
// # Snapshots
//
// The [sink] subpackage turns layout targets into a [sink.Snapshot] and
// draws it as a standalone SVG document or as JSON. Snapshots can be sampled
// part-way through a transition.
//
//	snap := sink.NewSnapshot(600, 200, sink.Items(sc), targets)
//	svg := sink.RenderSVG(snap, sink.WithLabels())
//
// # Ring Diagrams
//
// The [nodelink] subpackage draws the same snapshot as a node-link diagram
// whose edges follow the item order around the ring, rendered in-process
// with Graphviz.
//
//	dot := nodelink.ToDOT(snap, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// [sink]: github.com/matzehuels/carousel/pkg/render/sink
// [sink.Snapshot]: github.com/matzehuels/carousel/pkg/render/sink#Snapshot
// [nodelink]: github.com/matzehuels/carousel/pkg/render/nodelink
package render
