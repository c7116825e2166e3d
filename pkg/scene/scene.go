package scene

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/carousel/internal/validate"
	"github.com/matzehuels/carousel/pkg/animate"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/layout"
)

// Scene is the decoded contents of a scene file.
type Scene struct {
	Width  float64 `json:"width" yaml:"width" toml:"width" validate:"gte=0"`
	Height float64 `json:"height" yaml:"height" toml:"height" validate:"gte=0"`
	Config Config  `json:"config" yaml:"config" toml:"config"`
	Items  []Item  `json:"items" yaml:"items" toml:"items" validate:"dive"`
}

// Config is the configuration block of a scene. Nil fields take defaults.
type Config struct {
	ActiveItem       *int     `json:"active_item,omitempty" yaml:"active_item,omitempty" toml:"active_item,omitempty"`
	TakeChildren     *int     `json:"take_children,omitempty" yaml:"take_children,omitempty" toml:"take_children,omitempty"`
	WingStart        *float64 `json:"wing_start,omitempty" yaml:"wing_start,omitempty" toml:"wing_start,omitempty"`
	WingLength       *float64 `json:"wing_length,omitempty" yaml:"wing_length,omitempty" toml:"wing_length,omitempty"`
	InactiveScale    *float64 `json:"inactive_scale,omitempty" yaml:"inactive_scale,omitempty" toml:"inactive_scale,omitempty"`
	WingScaleStep    *float64 `json:"wing_scale_step,omitempty" yaml:"wing_scale_step,omitempty" toml:"wing_scale_step,omitempty"`
	InactiveRotation *float64 `json:"inactive_rotation,omitempty" yaml:"inactive_rotation,omitempty" toml:"inactive_rotation,omitempty"`
	Duration         string   `json:"duration,omitempty" yaml:"duration,omitempty" toml:"duration,omitempty"`
	Easing           string   `json:"easing,omitempty" yaml:"easing,omitempty" toml:"easing,omitempty"`
}

// Merge returns c with every field set in o overriding it.
func (c Config) Merge(o Config) Config {
	if o.ActiveItem != nil {
		c.ActiveItem = o.ActiveItem
	}
	if o.TakeChildren != nil {
		c.TakeChildren = o.TakeChildren
	}
	if o.WingStart != nil {
		c.WingStart = o.WingStart
	}
	if o.WingLength != nil {
		c.WingLength = o.WingLength
	}
	if o.InactiveScale != nil {
		c.InactiveScale = o.InactiveScale
	}
	if o.WingScaleStep != nil {
		c.WingScaleStep = o.WingScaleStep
	}
	if o.InactiveRotation != nil {
		c.InactiveRotation = o.InactiveRotation
	}
	if o.Duration != "" {
		c.Duration = o.Duration
	}
	if o.Easing != "" {
		c.Easing = o.Easing
	}
	return c
}

// Item is one carousel item. Width is nil for an unmeasured item.
type Item struct {
	ID     string   `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Width  *float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty" validate:"omitempty,gte=0"`
	Height float64  `json:"height" yaml:"height" toml:"height" validate:"gte=0"`
}

// MeasuredWidth returns the item width, or NaN when the item is unmeasured.
func (it Item) MeasuredWidth() float64 {
	if it.Width == nil {
		return math.NaN()
	}
	return *it.Width
}

// itemNamespace seeds the name-based ids of items without one.
var itemNamespace = uuid.MustParse("3f0c8f2e-6a55-4d53-9a8e-2f4b7c1d9e10")

// Normalize assigns ids to items that have none. Generated ids are UUIDs
// derived from the item position and label, so loading the same file twice
// yields the same ids.
func (s *Scene) Normalize() {
	for i := range s.Items {
		if s.Items[i].ID == "" {
			name := strconv.Itoa(i) + ":" + s.Items[i].Label
			s.Items[i].ID = uuid.NewSHA1(itemNamespace, []byte(name)).String()
		}
	}
}

// Validate checks the scene structure, item labels, id uniqueness and the
// resolved configuration.
func (s *Scene) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.New(errors.ErrCodeInvalidScene, "%s", validate.Describe(err))
	}
	seen := make(map[string]int, len(s.Items))
	for i, it := range s.Items {
		if err := errors.ValidateLabel(it.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "item %d", i)
		}
		if it.ID == "" {
			continue
		}
		if j, dup := seen[it.ID]; dup {
			return errors.New(errors.ErrCodeInvalidScene, "items %d and %d share id %q", j, i, it.ID)
		}
		seen[it.ID] = i
	}
	_, err := s.LayoutConfig()
	return err
}

// LayoutConfig resolves the configuration block against the defaults and
// validates the result.
func (s *Scene) LayoutConfig() (layout.Config, error) {
	cfg := layout.DefaultConfig()
	c := s.Config
	if c.ActiveItem != nil {
		cfg.ActiveItem = *c.ActiveItem
	}
	if c.TakeChildren != nil {
		cfg.TakeChildren = *c.TakeChildren
	}
	if c.WingStart != nil {
		cfg = cfg.WithWingStart(*c.WingStart)
	}
	if c.WingLength != nil {
		cfg.WingLength = *c.WingLength
	}
	if c.InactiveScale != nil {
		cfg.InactiveScale = *c.InactiveScale
	}
	if c.WingScaleStep != nil {
		cfg.WingScaleStep = *c.WingScaleStep
	}
	if c.InactiveRotation != nil {
		cfg.InactiveRotation = *c.InactiveRotation
	}
	if c.Duration != "" {
		d, err := time.ParseDuration(c.Duration)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid duration %q", c.Duration)
		}
		cfg.Duration = d
	}
	if c.Easing != "" {
		cfg.Easing = c.Easing
	}

	if n := len(s.Items); n > 0 && cfg.ActiveItem >= n {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "active item %d out of range (scene has %d items)", cfg.ActiveItem, n)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if err := animate.ValidateEasing(cfg.Easing); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SetLayoutConfig stores cfg as the scene's configuration block. Every field
// is written explicitly.
func (s *Scene) SetLayoutConfig(cfg layout.Config) {
	active, take := cfg.ActiveItem, cfg.TakeChildren
	length, scale, step, rot := cfg.WingLength, cfg.InactiveScale, cfg.WingScaleStep, cfg.InactiveRotation
	s.Config = Config{
		ActiveItem:       &active,
		TakeChildren:     &take,
		WingLength:       &length,
		InactiveScale:    &scale,
		WingScaleStep:    &step,
		InactiveRotation: &rot,
		Duration:         cfg.Duration.String(),
		Easing:           cfg.Easing,
	}
	if cfg.WingStart != nil {
		v := *cfg.WingStart
		s.Config.WingStart = &v
	}
}

// Sprites returns one tweened sprite per item, in item order.
func (s *Scene) Sprites() []*animate.Sprite {
	out := make([]*animate.Sprite, len(s.Items))
	for i, it := range s.Items {
		out[i] = animate.NewSprite(it.MeasuredWidth(), it.Height)
	}
	return out
}

// Recorders returns one instantly-completing item per item, in item order.
func (s *Scene) Recorders() []*animate.Recorder {
	out := make([]*animate.Recorder, len(s.Items))
	for i, it := range s.Items {
		out[i] = animate.NewRecorder(it.MeasuredWidth(), it.Height)
	}
	return out
}

// Measurables returns the items as layout inputs.
func (s *Scene) Measurables() []layout.Measurable {
	out := make([]layout.Measurable, len(s.Items))
	for i, it := range s.Items {
		out[i] = layout.Box{W: it.MeasuredWidth(), H: it.Height}
	}
	return out
}

// AsItems converts a typed item slice to the animate.Item interface.
func AsItems[T animate.Item](in []T) []animate.Item {
	out := make([]animate.Item, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
