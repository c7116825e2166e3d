package layout

import (
	"math"

	"github.com/matzehuels/carousel/pkg/errors"
)

// ParkedZIndex is the stacking index given to parked items. Wing items always
// have a z-index of at least 1, so parked items render beneath them.
const ParkedZIndex = 0

// Placement tells where an item ended up in a layout pass.
type Placement string

// Placements produced by [Compute].
const (
	PlacementActive      Placement = "active"
	PlacementLeftWing    Placement = "left-wing"
	PlacementRightWing   Placement = "right-wing"
	PlacementParkedLeft  Placement = "parked-left"
	PlacementParkedRight Placement = "parked-right"
)

// Parked reports whether the placement is off-canvas.
func (p Placement) Parked() bool {
	return p == PlacementParkedLeft || p == PlacementParkedRight
}

// Measurable is anything that reports a resolved width. A NaN or infinite
// width means the item has not been measured yet.
type Measurable interface {
	Width() float64
}

// Box is a fixed-size Measurable.
type Box struct {
	W, H float64
}

// Width returns the box width.
func (b Box) Width() float64 { return b.W }

// Height returns the box height.
func (b Box) Height() float64 { return b.H }

// Target is the transform an item should animate towards.
// X and Y are the item's center in container coordinates.
type Target struct {
	Index     int
	Distance  int
	Placement Placement
	X, Y      float64
	Rotation  float64
	Scale     float64
	ZIndex    int
}

// Compute lays out items around cfg.ActiveItem inside a width×height
// container. ActiveItem is wrapped into range first. Compute fails with an
// ErrCodeConfiguration error, and returns no targets, if any item reports a
// width that is NaN or infinite.
func Compute(items []Measurable, cfg Config, width, height float64) ([]Target, error) {
	n := len(items)
	if n == 0 {
		return nil, nil
	}
	for i, it := range items {
		if w := it.Width(); math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.New(errors.ErrCodeConfiguration,
				"all items must have a resolved width (item %d is unmeasured)", i)
		}
	}

	active := Wrap(cfg.ActiveItem, n)
	take := cfg.TakeChildren
	wingStart := cfg.ResolveWingStart(items[active].Width())

	cx := width * 0.5
	cy := height * 0.5

	targets := make([]Target, n)
	for i := range items {
		d := distance(active, i)
		t := Target{Index: i, Distance: d, Y: cy}

		wingOffset := cfg.WingLength * float64(d-1) / float64(take)
		if math.IsInf(wingOffset, 0) || math.IsNaN(wingOffset) {
			wingOffset = 0
		}
		wingScale := cfg.InactiveScale - float64(d-1)*cfg.WingScaleStep

		switch {
		case i < active:
			t.Rotation = cfg.InactiveRotation
			if i < active-take {
				t.Placement = PlacementParkedLeft
				t.X = -cx
				t.Scale = cfg.InactiveScale
				t.ZIndex = ParkedZIndex
				break
			}
			t.Placement = PlacementLeftWing
			t.X = cx - wingStart - wingOffset
			t.Scale = wingScale
			t.ZIndex = n - d

		case i > active:
			t.Rotation = -cfg.InactiveRotation
			if i > active+take {
				t.Placement = PlacementParkedRight
				t.X = width + cx
				t.Scale = cfg.InactiveScale
				t.ZIndex = ParkedZIndex
				break
			}
			t.Placement = PlacementRightWing
			t.X = cx + wingStart + wingOffset
			t.Scale = wingScale
			t.ZIndex = n - d

		default:
			t.Placement = PlacementActive
			t.X = cx
			t.Rotation = 0
			t.Scale = 1
			t.ZIndex = n
		}
		targets[i] = t
	}
	return targets, nil
}

// Wrap maps any index onto [0, n) with wraparound. It returns 0 when n <= 0.
func Wrap(index, n int) int {
	if n <= 0 {
		return 0
	}
	index %= n
	if index < 0 {
		index += n
	}
	return index
}

// Boxes adapts a slice of widths to Measurables with zero height.
func Boxes(widths ...float64) []Measurable {
	items := make([]Measurable, len(widths))
	for i, w := range widths {
		items[i] = Box{W: w}
	}
	return items
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
