// Package pipeline provides the scene → layout → render pipeline shared by
// the CLI commands and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and validate a scene file (JSON, YAML or TOML)
//  2. Layout: run one carousel layout pass over the scene's items
//  3. Render: draw a snapshot of the pass (SVG, JSON, or a Graphviz ring
//     diagram as DOT or SVG), optionally sampled
//     part-way through the transition from the previous active item
//
// Layout targets and rendered artifacts are cached by scene content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	sc, err := runner.LoadScene("carousel.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, sc, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/render/sink"
	"github.com/matzehuels/carousel/pkg/scene"
)

// Container size used when neither the scene nor the options set one.
const (
	DefaultWidth  = 600.0
	DefaultHeight = 200.0
)

const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	// FormatDOT is the Graphviz source of the ring diagram.
	FormatDOT = "dot"
	// FormatRingSVG is the ring diagram laid out and drawn by Graphviz.
	FormatRingSVG = "ring.svg"
)

// Formats lists the supported output formats; the first is the default.
var Formats = []string{FormatSVG, FormatJSON, FormatDOT, FormatRingSVG}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. Zero values fall back to the scene.
type Options struct {
	ActiveItem *int    `json:"active_item,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`

	Formats []string `json:"formats,omitempty"`
	// At samples the transition into the active item this long after it
	// started. Zero renders the settled pass.
	At time.Duration `json:"at,omitempty"`
	// From is the item the transition starts at. It defaults to the item
	// before the active one.
	From       *int   `json:"from,omitempty"`
	Labels     bool   `json:"labels,omitempty"`
	Fill       string `json:"fill,omitempty"`
	Background string `json:"background,omitempty"`

	// Refresh skips cache reads but still writes fresh results.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result is everything one run produced.
type Result struct {
	Scene     *scene.Scene
	SceneHash string

	Config        layout.Config
	Width, Height float64
	Targets       []layout.Target

	Snapshot  sink.Snapshot
	Artifacts map[string][]byte // keyed by format

	Stats     Stats
	CacheInfo CacheInfo
}

type Stats struct {
	ItemCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache. RenderHit is
// set only when every requested format was.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateFormat rejects formats outside [Formats] with INVALID_FORMAT.
func ValidateFormat(format string) error {
	if slices.Contains(Formats, format) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
}

// ValidateFormats returns the first invalid format's error.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetLayoutDefaults fills the container size from the scene, then from
// DefaultWidth and DefaultHeight, and installs a discarding logger.
func (o *Options) SetLayoutDefaults(sc *scene.Scene) {
	o.Width = firstNonZero(o.Width, sc.Width, DefaultWidth)
	o.Height = firstNonZero(o.Height, sc.Height, DefaultHeight)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func firstNonZero(vs ...float64) float64 {
	for _, v := range vs {
		if v != 0 {
			return v
		}
	}
	return 0
}

// ValidateForLayout applies SetLayoutDefaults and checks the layout inputs.
func (o *Options) ValidateForLayout(sc *scene.Scene) error {
	o.SetLayoutDefaults(sc)
	switch {
	case o.Width < 0 || o.Height < 0:
		return errors.New(errors.ErrCodeInvalidInput, "container size must not be negative (got %vx%v)", o.Width, o.Height)
	case o.ActiveItem != nil && *o.ActiveItem < 0:
		return errors.New(errors.ErrCodeInvalidInput, "active item must not be negative (got %d)", *o.ActiveItem)
	}
	return nil
}

// SetRenderDefaults selects the default format when none is set.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{Formats[0]}
	}
}

// ValidateForRender runs ValidateForLayout and then checks the render inputs.
func (o *Options) ValidateForRender(sc *scene.Scene) error {
	if err := o.ValidateForLayout(sc); err != nil {
		return err
	}
	o.SetRenderDefaults()
	switch {
	case o.At < 0:
		return errors.New(errors.ErrCodeInvalidInput, "sample time must not be negative (got %s)", o.At)
	case o.From != nil && *o.From < 0:
		return errors.New(errors.ErrCodeInvalidInput, "from item must not be negative (got %d)", *o.From)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return fmt.Errorf("render options: %w", err)
	}
	return nil
}

func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{ActiveItem: o.ActiveItem, Width: o.Width, Height: o.Height}
}

func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Layout:   o.LayoutKeyOpts(),
		Format:   format,
		AtMS:     o.At.Milliseconds(),
		From:     o.From,
		Labels:   o.Labels,
		Fill:     o.Fill,
		Backdrop: o.Background,
	}
}
