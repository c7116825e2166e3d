package scene

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/layout"
)

const yamlScene = `
width: 600
height: 200
config:
  active_item: 2
  inactive_rotation: 15
  duration: 400ms
  easing: quad-in-out
items:
  - {id: a, label: first, width: 120, height: 80}
  - {label: second, width: 90, height: 80}
  - {label: third, width: 100, height: 80}
`

const jsonScene = `{
  "width": 600,
  "height": 200,
  "config": {"active_item": 2, "inactive_rotation": 15, "duration": "400ms", "easing": "quad-in-out"},
  "items": [
    {"id": "a", "label": "first", "width": 120, "height": 80},
    {"label": "second", "width": 90, "height": 80},
    {"label": "third", "width": 100, "height": 80}
  ]
}`

const tomlScene = `
width = 600
height = 200

[config]
active_item = 2
inactive_rotation = 15.0
duration = "400ms"
easing = "quad-in-out"

[[items]]
id = "a"
label = "first"
width = 120.0
height = 80.0

[[items]]
label = "second"
width = 90.0
height = 80.0

[[items]]
label = "third"
width = 100.0
height = 80.0
`

func TestReadFormats(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatYAML, yamlScene},
		{FormatJSON, jsonScene},
		{FormatTOML, tomlScene},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			s, err := Read(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)

			assert.Equal(t, 600.0, s.Width)
			assert.Equal(t, 200.0, s.Height)
			require.Len(t, s.Items, 3)
			assert.Equal(t, "a", s.Items[0].ID)
			assert.NotEmpty(t, s.Items[1].ID)
			assert.NotEqual(t, s.Items[1].ID, s.Items[2].ID)
			assert.Equal(t, 90.0, s.Items[1].MeasuredWidth())

			cfg, err := s.LayoutConfig()
			require.NoError(t, err)
			assert.Equal(t, 2, cfg.ActiveItem)
			assert.Equal(t, 15.0, cfg.InactiveRotation)
			assert.Equal(t, 400*time.Millisecond, cfg.Duration)
			assert.Equal(t, "quad-in-out", cfg.Easing)
			assert.Equal(t, layout.DefaultWingLength, cfg.WingLength)
			assert.Nil(t, cfg.WingStart)
		})
	}
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"width": `, errors.ErrCodeInvalidScene},
		{"unknown field", `{"widht": 10}`, errors.ErrCodeInvalidScene},
		{"negative width", `{"width": -1}`, errors.ErrCodeInvalidScene},
		{"negative item width", `{"items": [{"width": -5, "height": 1}]}`, errors.ErrCodeInvalidScene},
		{"duplicate ids", `{"items": [{"id": "x", "width": 1}, {"id": "x", "width": 1}]}`, errors.ErrCodeInvalidScene},
		{"control char label", `{"items": [{"label": "a\u0007", "width": 1}]}`, errors.ErrCodeInvalidScene},
		{"bad duration", `{"config": {"duration": "soon"}}`, errors.ErrCodeInvalidConfig},
		{"bad easing", `{"config": {"easing": "wobble"}}`, errors.ErrCodeInvalidConfig},
		{"bad scale", `{"config": {"inactive_scale": 2}}`, errors.ErrCodeInvalidConfig},
		{"active out of range", `{"config": {"active_item": 3}, "items": [{"width": 1}]}`, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestUnmeasuredItem(t *testing.T) {
	s, err := Read(strings.NewReader(`{"items": [{"label": "pending", "height": 10}]}`), FormatJSON)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(s.Items[0].MeasuredWidth()))

	_, err = layout.Compute(s.Measurables(), layout.DefaultConfig(), 100, 100)
	assert.True(t, errors.IsConfiguration(err))
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		code errors.Code
	}{
		{"a.json", FormatJSON, ""},
		{"a.YAML", FormatYAML, ""},
		{"a.yml", FormatYAML, ""},
		{"dir/a.toml", FormatTOML, ""},
		{"a.txt", "", errors.ErrCodeInvalidFormat},
		{"", "", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.code != "" {
				assert.True(t, errors.Is(err, tt.code))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	src, err := Read(strings.NewReader(yamlScene), FormatYAML)
	require.NoError(t, err)

	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene"+ext)
			require.NoError(t, Save(path, src))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, src, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestSetLayoutConfig(t *testing.T) {
	s := &Scene{Items: []Item{{ID: "a", Height: 1}, {ID: "b", Height: 1}}}
	cfg := layout.DefaultConfig().WithWingStart(12)
	cfg.ActiveItem = 1

	s.SetLayoutConfig(cfg)
	got, err := s.LayoutConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s, FormatJSON))
	assert.Contains(t, buf.String(), `"wing_start": 12`)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(os.Stdout, &Scene{}, Format("xml"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestConversions(t *testing.T) {
	w := 50.0
	s := &Scene{Items: []Item{{Width: &w, Height: 20}, {Height: 20}}}

	sprites := s.Sprites()
	require.Len(t, sprites, 2)
	assert.Equal(t, 50.0, sprites[0].Width())
	assert.True(t, math.IsNaN(sprites[1].Width()))

	items := AsItems(s.Recorders())
	require.Len(t, items, 2)
	assert.Equal(t, 20.0, items[0].Height())
}

func TestNormalizeStableIDs(t *testing.T) {
	a, err := Read(strings.NewReader(yamlScene), FormatYAML)
	require.NoError(t, err)
	b, err := Read(strings.NewReader(yamlScene), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, a.Items[1].ID, b.Items[1].ID)
	assert.Len(t, a.Items[1].ID, 36)
}

func TestConfigMerge(t *testing.T) {
	two, three := 2, 3
	rot := 10.0
	base := Config{ActiveItem: &two, Easing: "linear"}
	got := base.Merge(Config{TakeChildren: &three, InactiveRotation: &rot, Duration: "1s"})

	assert.Equal(t, 2, *got.ActiveItem)
	assert.Equal(t, 3, *got.TakeChildren)
	assert.Equal(t, 10.0, *got.InactiveRotation)
	assert.Equal(t, "1s", got.Duration)
	assert.Equal(t, "linear", got.Easing)
	assert.Nil(t, base.TakeChildren)
}
