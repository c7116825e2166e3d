package animate

import (
	"context"
	"sync"
)

// Request kinds recorded by [Recorder].
const (
	KindTranslate = "translate"
	KindScale     = "scale"
	KindRotate    = "rotate"
)

// Request is one recorded animation request.
type Request struct {
	Kind       string
	X, Y       float64
	Value      float64
	Transition Transition
}

// Recorder is an [Item] that completes every request instantly and keeps a
// log of them. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	w, h     float64
	state    State
	requests []Request
}

// NewRecorder returns a recorder of the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h, state: State{Scale: 1}}
}

// Width returns the recorder's width.
func (r *Recorder) Width() float64 { return r.w }

// Height returns the recorder's height.
func (r *Recorder) Height() float64 { return r.h }

// TranslateTo records a translate request and applies it.
func (r *Recorder) TranslateTo(_ context.Context, x, y float64, t Transition) Wait {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.X, r.state.Y = x, y
	r.requests = append(r.requests, Request{Kind: KindTranslate, X: x, Y: y, Transition: t})
	return settled(nil)
}

// ScaleTo records a scale request and applies it.
func (r *Recorder) ScaleTo(_ context.Context, scale float64, t Transition) Wait {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Scale = scale
	r.requests = append(r.requests, Request{Kind: KindScale, Value: scale, Transition: t})
	return settled(nil)
}

// RotateTo records a rotate request and applies it.
func (r *Recorder) RotateTo(_ context.Context, degrees float64, t Transition) Wait {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Rotation = degrees
	r.requests = append(r.requests, Request{Kind: KindRotate, Value: degrees, Transition: t})
	return settled(nil)
}

// SetZIndex records the stacking index.
func (r *Recorder) SetZIndex(z int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.ZIndex = z
}

// State returns the transform after all recorded requests.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Requests returns a copy of the recorded requests.
func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.requests...)
}

// Reset clears the request log.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = nil
}
