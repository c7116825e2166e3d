package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/scene"
)

// LayoutResult is the cached output of the layout stage.
type LayoutResult struct {
	Config  layout.Config   `json:"config"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Targets []layout.Target `json:"targets"`
}

// ResolveConfig returns the scene configuration with the option overrides
// applied. An overridden active item wraps into the item range.
func ResolveConfig(sc *scene.Scene, opts Options) (layout.Config, error) {
	cfg, err := sc.LayoutConfig()
	if err != nil {
		return cfg, err
	}
	if opts.ActiveItem != nil {
		cfg.ActiveItem = layout.Wrap(*opts.ActiveItem, len(sc.Items))
	}
	return cfg, nil
}

// GenerateLayout runs one carousel layout pass over the scene items and
// waits for it. Items complete their transforms instantly.
func GenerateLayout(ctx context.Context, sc *scene.Scene, opts Options) (*LayoutResult, error) {
	if err := opts.ValidateForLayout(sc); err != nil {
		return nil, err
	}
	cfg, err := ResolveConfig(sc, opts)
	if err != nil {
		return nil, err
	}
	targets, err := runPass(ctx, sc, cfg, opts.Width, opts.Height, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &LayoutResult{Config: cfg, Width: opts.Width, Height: opts.Height, Targets: targets}, nil
}

func runPass(ctx context.Context, sc *scene.Scene, cfg layout.Config, width, height float64, logger *log.Logger) ([]layout.Target, error) {
	c := carousel.New(scene.AsItems(sc.Recorders()),
		carousel.WithConfig(cfg),
		carousel.WithSize(width, height),
		carousel.WithLogger(logger),
		carousel.WithContext(ctx))
	pass, err := c.Load()
	if err != nil {
		return nil, err
	}
	if err := pass.Wait(); err != nil {
		return nil, fmt.Errorf("wait for layout pass: %w", err)
	}
	return pass.Targets, nil
}

// MarshalLayout serializes a layout result for caching.
func MarshalLayout(lr *LayoutResult) ([]byte, error) {
	return json.Marshal(lr)
}

// UnmarshalLayout decodes a cached layout result.
func UnmarshalLayout(data []byte) (*LayoutResult, error) {
	var lr LayoutResult
	if err := json.Unmarshal(data, &lr); err != nil {
		return nil, err
	}
	return &lr, nil
}
