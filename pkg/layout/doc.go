// Package layout computes carousel arrangements.
//
// # Overview
//
// A carousel shows one active item centered at full scale and two "wings" of
// smaller, optionally rotated items extending to the left and right. Items
// further than [Config.TakeChildren] positions from the active item are
// "parked" just outside the container so they can slide in later.
//
// [Compute] is the whole engine: a pure function from the item sequence,
// a [Config] snapshot and the container size to one [Target] per item. It
// never mutates its inputs and holds no state, so calling it twice with the
// same arguments yields identical results.
//
//	targets, err := layout.Compute(items, layout.DefaultConfig(), 400, 100)
//	if err != nil {
//	    // errors.ErrCodeConfiguration: an item has no resolved width yet
//	}
//
// # Geometry
//
// All coordinates are item centers in container space. For an item at
// distance d from the active item:
//
//	wingOffset = WingLength * (d-1) / TakeChildren   (0 when TakeChildren == 0)
//	wingScale  = InactiveScale - (d-1) * WingScaleStep
//	wingStart  = WingStart, or 25% of the active item's width
//
// Left-wing items sit at cx - wingStart - wingOffset with rotation
// +InactiveRotation; right-wing items mirror them. Z-index is n for the
// active item and n-d inside the wings; parked items get [ParkedZIndex].
package layout
