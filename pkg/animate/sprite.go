package animate

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/tanema/gween"
)

type field int

const (
	fieldPosition field = iota
	fieldScale
	fieldRotation
	numFields
)

// track is one running request on a field. Position tracks carry two tweens.
type track struct {
	tweens []*gween.Tween
	ends   []float64
	done   chan struct{}
}

func (t *track) finish() {
	close(t.done)
}

// State is a snapshot of a sprite's current transform.
type State struct {
	X, Y     float64 // top-left corner
	Scale    float64
	Rotation float64
	ZIndex   int
}

// Sprite is an in-process [Item] whose fields are animated by gween tweens.
// Time only moves when the owner calls [Sprite.Tick]. It is safe for
// concurrent use.
type Sprite struct {
	mu     sync.Mutex
	w, h   float64
	state  State
	tracks [numFields]*track
}

// NewSprite returns a sprite of the given size at the origin with scale 1.
// Pass math.NaN() as the width for an item that has not been measured.
func NewSprite(w, h float64) *Sprite {
	return &Sprite{w: w, h: h, state: State{Scale: 1}}
}

// Width returns the measured width.
func (s *Sprite) Width() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w
}

// Height returns the measured height.
func (s *Sprite) Height() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h
}

// Measure records a new size for the sprite.
func (s *Sprite) Measure(w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = w, h
}

// State returns the current transform.
func (s *Sprite) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetZIndex assigns the stacking index immediately.
func (s *Sprite) SetZIndex(z int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ZIndex = z
}

// TranslateTo animates the top-left corner to (x, y).
func (s *Sprite) TranslateTo(ctx context.Context, x, y float64, t Transition) Wait {
	return s.start(ctx, fieldPosition, t, x, y)
}

// ScaleTo animates the scale factor.
func (s *Sprite) ScaleTo(ctx context.Context, scale float64, t Transition) Wait {
	return s.start(ctx, fieldScale, t, scale)
}

// RotateTo animates the rotation in degrees.
func (s *Sprite) RotateTo(ctx context.Context, degrees float64, t Transition) Wait {
	return s.start(ctx, fieldRotation, t, degrees)
}

// Animating reports whether any field still has a running tween.
func (s *Sprite) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tr := range s.tracks {
		if tr != nil {
			return true
		}
	}
	return false
}

// Tick advances every running tween by dt and reports whether any tween is
// still running afterwards.
func (s *Sprite) Tick(dt time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := float32(dt.Seconds())
	running := false
	for f, tr := range s.tracks {
		if tr == nil {
			continue
		}
		values := make([]float64, len(tr.tweens))
		finished := true
		for i, tw := range tr.tweens {
			v, done := tw.Update(step)
			values[i] = float64(v)
			finished = finished && done
		}
		if finished {
			values = tr.ends
			tr.finish()
			s.tracks[f] = nil
		} else {
			running = true
		}
		s.set(field(f), values)
	}
	return running
}

// start replaces the running track on f with a new one heading to ends.
// The track is installed before start returns; the returned Wait blocks
// until it finishes, is superseded, or ctx is done.
func (s *Sprite) start(ctx context.Context, f field, t Transition, ends ...float64) Wait {
	fn, err := Lookup(t.Easing)
	if err != nil {
		return settled(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev := s.tracks[f]; prev != nil {
		prev.finish()
		s.tracks[f] = nil
	}
	if t.Duration <= 0 {
		s.set(f, ends)
		return settled(nil)
	}

	begins := s.get(f)
	tr := &track{ends: ends, done: make(chan struct{})}
	for i, end := range ends {
		tr.tweens = append(tr.tweens,
			gween.New(float32(begins[i]), float32(end), float32(t.Duration.Seconds()), fn))
	}
	s.tracks[f] = tr

	return func() error {
		select {
		case <-tr.done:
			return nil
		case <-ctx.Done():
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.tracks[f] == tr {
				s.tracks[f] = nil
				tr.finish()
			}
			return ctx.Err()
		}
	}
}

func (s *Sprite) get(f field) []float64 {
	switch f {
	case fieldPosition:
		return []float64{s.state.X, s.state.Y}
	case fieldScale:
		return []float64{s.state.Scale}
	default:
		return []float64{s.state.Rotation}
	}
}

func (s *Sprite) set(f field, v []float64) {
	switch f {
	case fieldPosition:
		s.state.X, s.state.Y = v[0], v[1]
	case fieldScale:
		s.state.Scale = v[0]
	default:
		s.state.Rotation = v[0]
	}
}

// Center returns the current center of the sprite in container coordinates.
func (s *Sprite) Center() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.w, s.h
	if math.IsNaN(w) {
		w = 0
	}
	if math.IsNaN(h) {
		h = 0
	}
	return s.state.X + w*0.5, s.state.Y + h*0.5
}
