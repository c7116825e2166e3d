// Package carousel implements the carousel control: it owns the item
// sequence, the configuration surface and the container geometry, and runs a
// layout pass whenever any of them changes.
//
// # Lifecycle
//
// A [Carousel] starts inert. Layout requests are ignored until [Carousel.Load]
// is called once; after that every event triggers exactly one pass:
//
//	c := carousel.New(items, carousel.WithLogger(logger))
//	c.Resize(400, 100)     // ignored: not loaded yet
//	c.Load()               // ready, first pass
//	c.SetActiveItem(3)     // second pass
//	c.Tap(&carousel.Point{X: 50, Y: 20}) // previous item, third pass
//
// A pass snapshots configuration and geometry, computes all targets with
// [layout.Compute], and hands each one to [animate.Apply] without waiting for
// the animations. The returned [Pass] can be waited on when determinism is
// needed. If the layout fails (an unmeasured item) no item is touched.
//
// # Interaction
//
// [Carousel.Tap] moves to the previous item when the tap lands on the left
// half of the container and to the next one otherwise, wrapping around at
// both ends. A nil point means the gesture had no position and is ignored.
package carousel
