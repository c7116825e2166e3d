package layout

import (
	"time"

	"github.com/matzehuels/carousel/internal/validate"
	"github.com/matzehuels/carousel/pkg/errors"
)

// Default values for the carousel configuration surface.
const (
	DefaultWingLength       = 50.0
	DefaultTakeChildren     = 2
	DefaultInactiveScale    = 0.80
	DefaultWingScaleStep    = 0.05
	DefaultInactiveRotation = 0.0
	DefaultDuration         = 800 * time.Millisecond
	DefaultEasing           = "cubic-out"

	// wingStartRatio derives the wing start from the active item's width
	// when WingStart is unset.
	wingStartRatio = 0.25
)

// Config is the carousel configuration snapshot read by one layout pass.
type Config struct {
	// ActiveItem is the index of the centered item.
	ActiveItem int `validate:"gte=0"`

	// TakeChildren is the number of items shown on each side before the
	// remaining ones are parked off-canvas.
	TakeChildren int `validate:"gte=0"`

	// WingStart is the distance in pixels from the center to the first wing
	// item. Nil means 25% of the active item's width.
	WingStart *float64

	// WingLength is the distance in pixels spanned by a wing.
	WingLength float64

	// InactiveScale is the scale of the first wing item.
	InactiveScale float64 `validate:"gt=0,lte=1"`

	// WingScaleStep is subtracted from InactiveScale per extra position.
	WingScaleStep float64 `validate:"gte=0"`

	// InactiveRotation is the rotation in degrees of wing items; the right
	// wing uses the negated value.
	InactiveRotation float64

	// Duration and Easing describe the transition towards new targets.
	// They are not read by Compute.
	Duration time.Duration `validate:"gte=0"`
	Easing   string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TakeChildren:     DefaultTakeChildren,
		WingLength:       DefaultWingLength,
		InactiveScale:    DefaultInactiveScale,
		WingScaleStep:    DefaultWingScaleStep,
		InactiveRotation: DefaultInactiveRotation,
		Duration:         DefaultDuration,
		Easing:           DefaultEasing,
	}
}

// Validate checks the numeric ranges of the configuration.
// Easing names are validated by the animate package, which owns the table.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "%s", validate.Describe(err))
	}
	return nil
}

// ResolveWingStart returns the configured wing start or the default derived
// from the active item's width.
func (c Config) ResolveWingStart(activeWidth float64) float64 {
	if c.WingStart != nil {
		return *c.WingStart
	}
	return wingStartRatio * activeWidth
}

// WithWingStart returns a copy of c with WingStart set to v.
func (c Config) WithWingStart(v float64) Config {
	c.WingStart = &v
	return c
}

// Clone returns a deep copy of c; the WingStart pointer is not shared.
func (c Config) Clone() Config {
	if c.WingStart != nil {
		v := *c.WingStart
		c.WingStart = &v
	}
	return c
}
