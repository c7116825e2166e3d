package sink

import (
	"cmp"
	"slices"
	"time"

	"github.com/matzehuels/carousel/pkg/animate"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/scene"
)

// Item describes the static properties of a rendered item.
type Item struct {
	ID     string
	Label  string
	Width  float64
	Height float64
}

// Frame is the visual state of one item. X and Y are the item center.
type Frame struct {
	Item
	Index     int
	Placement layout.Placement
	X, Y      float64
	Rotation  float64
	Scale     float64
	ZIndex    int
}

// Snapshot is the visual state of a whole carousel.
type Snapshot struct {
	Width  float64
	Height float64
	// At is the time into the transition; zero for a settled snapshot.
	At     time.Duration
	Frames []Frame
}

// Items converts scene items for rendering. Unmeasured items get width 0.
func Items(s *scene.Scene) []Item {
	out := make([]Item, len(s.Items))
	for i, it := range s.Items {
		out[i] = Item{ID: it.ID, Label: it.Label, Height: it.Height}
		if it.Width != nil {
			out[i].Width = *it.Width
		}
	}
	return out
}

// NewSnapshot pairs items with their targets. Both slices are indexed by
// item position; extra entries on either side are ignored.
func NewSnapshot(width, height float64, items []Item, targets []layout.Target) Snapshot {
	n := min(len(items), len(targets))
	snap := Snapshot{Width: width, Height: height, Frames: make([]Frame, n)}
	for i := range n {
		t := targets[i]
		snap.Frames[i] = Frame{
			Item:      items[i],
			Index:     t.Index,
			Placement: t.Placement,
			X:         t.X,
			Y:         t.Y,
			Rotation:  t.Rotation,
			Scale:     t.Scale,
			ZIndex:    t.ZIndex,
		}
	}
	return snap
}

// Sample returns the targets at time at into a transition from one pass to
// the next. Position, scale and rotation are eased independently with the
// transition's easing; z-indices switch to the new values immediately. A nil
// from means the transition starts at the final targets.
func Sample(from, to []layout.Target, t animate.Transition, at time.Duration) ([]layout.Target, error) {
	p := 1.0
	if t.Duration > 0 {
		p = float64(at) / float64(t.Duration)
	}
	eased, err := animate.Progress(t.Easing, p)
	if err != nil {
		return nil, err
	}

	out := make([]layout.Target, len(to))
	copy(out, to)
	if from == nil {
		return out, nil
	}
	for i := range out {
		if i >= len(from) {
			break
		}
		a := from[i]
		out[i].X = lerp(a.X, to[i].X, eased)
		out[i].Y = lerp(a.Y, to[i].Y, eased)
		out[i].Scale = lerp(a.Scale, to[i].Scale, eased)
		out[i].Rotation = lerp(a.Rotation, to[i].Rotation, eased)
	}
	return out, nil
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

// Stacked returns the frames in paint order: ascending z-index, ties broken
// by item index.
func (s Snapshot) Stacked() []Frame {
	frames := slices.Clone(s.Frames)
	slices.SortStableFunc(frames, func(a, b Frame) int {
		if c := cmp.Compare(a.ZIndex, b.ZIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return frames
}
