package sink

import (
	"encoding/json"

	"github.com/matzehuels/carousel/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	config *layout.Config
	passID string
}

// WithJSONConfig records the configuration the snapshot was computed with.
func WithJSONConfig(cfg layout.Config) JSONOption {
	return func(r *jsonRenderer) { c := cfg.Clone(); r.config = &c }
}

// WithJSONPass records the layout pass id.
func WithJSONPass(id string) JSONOption { return func(r *jsonRenderer) { r.passID = id } }

type jsonOutput struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	AtMS   int64       `json:"at_ms,omitempty"`
	Pass   string      `json:"pass,omitempty"`
	Config *jsonConfig `json:"config,omitempty"`
	Items  []jsonFrame `json:"items"`
}

type jsonConfig struct {
	ActiveItem       int      `json:"active_item"`
	TakeChildren     int      `json:"take_children"`
	WingStart        *float64 `json:"wing_start,omitempty"`
	WingLength       float64  `json:"wing_length"`
	InactiveScale    float64  `json:"inactive_scale"`
	WingScaleStep    float64  `json:"wing_scale_step"`
	InactiveRotation float64  `json:"inactive_rotation"`
	DurationMS       int64    `json:"duration_ms"`
	Easing           string   `json:"easing"`
}

type jsonFrame struct {
	Index     int     `json:"index"`
	ID        string  `json:"id,omitempty"`
	Label     string  `json:"label,omitempty"`
	Placement string  `json:"placement"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rotation  float64 `json:"rotation"`
	Scale     float64 `json:"scale"`
	ZIndex    int     `json:"z_index"`
}

// RenderJSON encodes the snapshot as indented JSON. Items appear in item
// order, not paint order.
func RenderJSON(s Snapshot, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:  s.Width,
		Height: s.Height,
		AtMS:   s.At.Milliseconds(),
		Pass:   r.passID,
		Items:  make([]jsonFrame, len(s.Frames)),
	}
	if c := r.config; c != nil {
		out.Config = &jsonConfig{
			ActiveItem:       c.ActiveItem,
			TakeChildren:     c.TakeChildren,
			WingStart:        c.WingStart,
			WingLength:       c.WingLength,
			InactiveScale:    c.InactiveScale,
			WingScaleStep:    c.WingScaleStep,
			InactiveRotation: c.InactiveRotation,
			DurationMS:       c.Duration.Milliseconds(),
			Easing:           c.Easing,
		}
	}
	for i, f := range s.Frames {
		out.Items[i] = jsonFrame{
			Index:     f.Index,
			ID:        f.ID,
			Label:     f.Label,
			Placement: string(f.Placement),
			X:         f.X,
			Y:         f.Y,
			Width:     f.Width,
			Height:    f.Height,
			Rotation:  f.Rotation,
			Scale:     f.Scale,
			ZIndex:    f.ZIndex,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
