package animate

import (
	"slices"

	"github.com/tanema/gween/ease"

	"github.com/matzehuels/carousel/pkg/errors"
)

// DefaultEasing is used when a transition names no easing.
const DefaultEasing = "cubic-out"

var easings = map[string]ease.TweenFunc{
	"linear":        ease.Linear,
	"quad-in":       ease.InQuad,
	"quad-out":      ease.OutQuad,
	"quad-in-out":   ease.InOutQuad,
	"cubic-in":      ease.InCubic,
	"cubic-out":     ease.OutCubic,
	"cubic-in-out":  ease.InOutCubic,
	"sine-in":       ease.InSine,
	"sine-out":      ease.OutSine,
	"sine-in-out":   ease.InOutSine,
	"bounce-in":     ease.InBounce,
	"bounce-out":    ease.OutBounce,
	"bounce-in-out": ease.InOutBounce,
}

// Lookup returns the easing function registered under name.
// An empty name resolves to [DefaultEasing].
func Lookup(name string) (ease.TweenFunc, error) {
	if name == "" {
		name = DefaultEasing
	}
	fn, ok := easings[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown easing %q", name)
	}
	return fn, nil
}

// ValidateEasing reports whether name is a known easing.
func ValidateEasing(name string) error {
	_, err := Lookup(name)
	return err
}

// Names returns the registered easing names in sorted order.
func Names() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Progress maps linear progress p in [0,1] through the named easing.
// Values outside [0,1] are clamped.
func Progress(name string, p float64) (float64, error) {
	fn, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	switch {
	case p <= 0:
		return 0, nil
	case p >= 1:
		return 1, nil
	}
	return float64(fn(float32(p), 0, 1, 1)), nil
}
