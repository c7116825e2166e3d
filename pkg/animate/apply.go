package animate

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/carousel/pkg/layout"
)

// Transition describes how long a request takes and how it is eased.
type Transition struct {
	Duration time.Duration
	Easing   string
}

// DefaultTransition returns the 800ms cubic-out transition.
func DefaultTransition() Transition {
	return Transition{Duration: layout.DefaultDuration, Easing: DefaultEasing}
}

// TransitionFor extracts the transition settings from a layout config,
// falling back to the defaults for an empty easing name.
func TransitionFor(cfg layout.Config) Transition {
	t := Transition{Duration: cfg.Duration, Easing: cfg.Easing}
	if t.Easing == "" {
		t.Easing = DefaultEasing
	}
	return t
}

// Wait blocks until one animation request completes, is superseded by a
// newer request on the same field, or its context is done. A superseded
// request reports nil.
type Wait func() error

// Animator is the per-item animation capability provided by the host.
//
// Each method registers its request before returning, so of two requests on
// the same field the one issued later is the one that wins. The returned
// Wait only observes completion. TranslateTo receives the item's top-left
// corner.
type Animator interface {
	TranslateTo(ctx context.Context, x, y float64, t Transition) Wait
	ScaleTo(ctx context.Context, scale float64, t Transition) Wait
	RotateTo(ctx context.Context, degrees float64, t Transition) Wait
	SetZIndex(z int)
}

func settled(err error) Wait { return func() error { return err } }

// Item is a measurable visual that can be animated.
type Item interface {
	layout.Measurable
	Height() float64
	Animator
}

// Pending joins the three animation requests issued by [Apply].
type Pending struct {
	done chan struct{}
	err  error
}

// Wait blocks until translate, scale and rotate have all finished and
// returns the first error among them.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// Done is closed once all three requests have finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Apply moves item towards target. The z-index, translate, scale and rotate
// are issued synchronously in that order; Apply returns without waiting for
// the animations to finish.
//
// Target coordinates are item centers while the animator works with the
// item's top-left corner, so the translation is shifted by half the item's
// size.
func Apply(ctx context.Context, item Item, target layout.Target, t Transition) *Pending {
	item.SetZIndex(target.ZIndex)

	x := target.X - item.Width()*0.5
	y := target.Y - item.Height()*0.5

	waits := [...]Wait{
		item.TranslateTo(ctx, x, y, t),
		item.ScaleTo(ctx, target.Scale, t),
		item.RotateTo(ctx, target.Rotation, t),
	}

	var g errgroup.Group
	for _, w := range waits {
		g.Go(w)
	}

	p := &Pending{done: make(chan struct{})}
	go func() {
		p.err = g.Wait()
		close(p.done)
	}()
	return p
}

// WaitAll waits for every handle and returns the first error.
func WaitAll(pending []*Pending) error {
	var first error
	for _, p := range pending {
		if p == nil {
			continue
		}
		if err := p.Wait(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
