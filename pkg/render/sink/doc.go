// Package sink renders snapshots of a carousel layout pass.
//
// A [Snapshot] is the visual state of every item at one moment: either the
// final targets of a pass, or a moment inside the transition from one pass to
// the next as produced by [Sample].
//
//	targets, _ := layout.Compute(items, cfg, 600, 200)
//	snap := sink.NewSnapshot(600, 200, sink.Items(sc), targets)
//	svg := sink.RenderSVG(snap, sink.WithLabels())
//
// Output formats:
//   - SVG: one group per item, stacked by z-index, with the translate,
//     rotate and scale transforms applied around the item center
//   - JSON: the frame list plus optional configuration, for tooling
package sink
