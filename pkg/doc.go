// Package pkg provides the core libraries of carousel.
//
// # Overview
//
// Carousel arranges a row of items on a 3D-style wheel: one active item in
// the center, a wing of progressively smaller and rotated items on either
// side, and every remaining item parked off-canvas. Moving to another item
// animates every item from its old transform to its new one.
//
// # Architecture
//
// The typical data flow:
//
//	Scene file (JSON, YAML, TOML)
//	         ↓
//	    [scene] package (decode, validate, resolve the configuration)
//	         ↓
//	    [carousel] package (events → one layout pass)
//	         ↓
//	    [layout] package (targets)   →   [animate] package (per-item requests)
//	         ↓
//	    [render/sink] package (SVG/JSON snapshots, sampled mid-transition)
//
// # Quick Start
//
//	sc, _ := scene.Load("carousel.yaml")
//	cfg, _ := sc.LayoutConfig()
//
//	ctrl := carousel.New(scene.AsItems(sc.Sprites()),
//	    carousel.WithConfig(cfg),
//	    carousel.WithSize(600, 200))
//	ctrl.Load()
//	ctrl.Tap(&carousel.Point{X: 450, Y: 100}) // next item
//
// # Main Packages
//
// [layout] - The pure layout computation: placement, position, scale,
// rotation and stacking order of every item for a given active item.
//
// [animate] - Transitions, easing lookup, and the [animate.Item] interface
// with two implementations: tweened sprites and request recorders.
//
// [carousel] - The control: holds items and configuration, runs one layout
// pass per event, and maps taps to previous/next.
//
// [scene] - Scene files and their configuration block.
//
// [render/sink] - Snapshot rendering to SVG and JSON.
//
// [render/nodelink] - Ring diagrams rendered in-process with Graphviz.
//
// [pipeline] - Scene → layout → render orchestration with caching, shared by
// the CLI and the HTTP server.
//
// [cache] - File, Redis, MongoDB and null cache backends with content-hash keys.
//
// [errors], [observability] and [buildinfo] carry error codes, hooks and
// version metadata.
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/layout
// [animate]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/animate
// [animate.Item]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/animate#Item
// [carousel]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/carousel
// [scene]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/buildinfo
package pkg
