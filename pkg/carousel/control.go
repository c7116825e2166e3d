package carousel

import (
	"time"

	"github.com/matzehuels/carousel/pkg/animate"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/observability"
)

// =============================================================================
// Configuration setters
// =============================================================================

// Update applies fn to a copy of the configuration, validates the result and,
// when valid, stores it and runs a pass. An invalid update leaves the
// configuration unchanged.
func (c *Carousel) Update(fn func(*layout.Config)) (*Pass, error) {
	c.mu.Lock()
	next := c.cfg.Clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if err := animate.ValidateEasing(next.Easing); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.cfg = next
	c.mu.Unlock()
	return c.Measure()
}

// SetConfig replaces the whole configuration.
func (c *Carousel) SetConfig(cfg layout.Config) (*Pass, error) {
	return c.Update(func(cur *layout.Config) { *cur = cfg.Clone() })
}

// SetActiveItem moves the active index. Indices outside the item range wrap.
func (c *Carousel) SetActiveItem(index int) (*Pass, error) {
	n := c.Len()
	return c.Update(func(cfg *layout.Config) { cfg.ActiveItem = layout.Wrap(index, n) })
}

// SetTakeChildren sets the number of visible items per wing.
func (c *Carousel) SetTakeChildren(n int) (*Pass, error) {
	return c.Update(func(cfg *layout.Config) { cfg.TakeChildren = n })
}

// SetWingStart sets the wing start distance. Nil restores the default
// derived from the active item's width.
func (c *Carousel) SetWingStart(v *float64) (*Pass, error) {
	return c.Update(func(cfg *layout.Config) {
		if v == nil {
			cfg.WingStart = nil
			return
		}
		*cfg = cfg.WithWingStart(*v)
	})
}

// SetWingLength sets the distance spanned by a wing.
func (c *Carousel) SetWingLength(v float64) (*Pass, error) {
	return c.Update(func(cfg *layout.Config) { cfg.WingLength = v })
}

// SetInactiveScale sets the scale of the first wing item.
func (c *Carousel) SetInactiveScale(v float64) (*Pass, error) {
	return c.Update(func(cfg *layout.Config) { cfg.InactiveScale = v })
}

// SetWingScaleStep sets the per-position scale decrement.
func (c *Carousel) SetWingScaleStep(v float64) (*Pass, error) {
	return c.Update(func(cfg *layout.Config) { cfg.WingScaleStep = v })
}

// SetInactiveRotation sets the wing rotation in degrees.
func (c *Carousel) SetInactiveRotation(v float64) (*Pass, error) {
	return c.Update(func(cfg *layout.Config) { cfg.InactiveRotation = v })
}

// SetTransition sets the animation duration and easing.
func (c *Carousel) SetTransition(d time.Duration, easing string) (*Pass, error) {
	return c.Update(func(cfg *layout.Config) {
		cfg.Duration = d
		cfg.Easing = easing
	})
}

// =============================================================================
// Interaction
// =============================================================================

// Tap handles a tap at p. A tap on the left half of the container selects
// the previous item, anything else selects the next one. A nil point is
// ignored. It returns the active index after the tap.
func (c *Carousel) Tap(p *Point) (int, error) {
	if p == nil {
		c.logger.Debug("tap without position ignored")
		return c.ActiveItem(), nil
	}
	c.mu.Lock()
	width := c.width
	c.mu.Unlock()

	if p.X < width/2 {
		return c.step(-1)
	}
	return c.step(1)
}

// Next selects the following item, wrapping to the first.
func (c *Carousel) Next() (int, error) {
	return c.step(1)
}

// Previous selects the preceding item, wrapping to the last.
func (c *Carousel) Previous() (int, error) {
	return c.step(-1)
}

func (c *Carousel) step(delta int) (int, error) {
	c.mu.Lock()
	n := len(c.items)
	from := c.cfg.ActiveItem
	c.mu.Unlock()
	if n == 0 {
		return from, nil
	}

	to := layout.Wrap(from+delta, n)
	observability.Carousel().OnTap(c.ctx, from, to)
	c.logger.Debug("active item changed", "from", from, "to", to)

	if _, err := c.SetActiveItem(to); err != nil {
		if !errors.IsConfiguration(err) {
			return from, err
		}
		// The index is stored even if the pass cannot place the items.
		return to, err
	}
	return to, nil
}
