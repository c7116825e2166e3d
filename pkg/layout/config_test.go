package layout

import (
	"testing"

	"github.com/matzehuels/carousel/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ActiveItem != 0 || cfg.WingStart != nil {
		t.Errorf("unexpected active/wing start: %+v", cfg)
	}
	if cfg.WingLength != 50 || cfg.TakeChildren != 2 {
		t.Errorf("unexpected wing defaults: %+v", cfg)
	}
	if cfg.InactiveScale != 0.80 || cfg.WingScaleStep != 0.05 || cfg.InactiveRotation != 0 {
		t.Errorf("unexpected scale/rotation defaults: %+v", cfg)
	}
	if cfg.Duration != DefaultDuration || cfg.Easing != "cubic-out" {
		t.Errorf("unexpected transition defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"full scale", func(c *Config) { c.InactiveScale = 1 }, false},
		{"zero take", func(c *Config) { c.TakeChildren = 0 }, false},
		{"negative rotation", func(c *Config) { c.InactiveRotation = -45 }, false},

		{"negative active", func(c *Config) { c.ActiveItem = -1 }, true},
		{"negative take", func(c *Config) { c.TakeChildren = -2 }, true},
		{"zero scale", func(c *Config) { c.InactiveScale = 0 }, true},
		{"scale above one", func(c *Config) { c.InactiveScale = 1.2 }, true},
		{"negative step", func(c *Config) { c.WingScaleStep = -0.1 }, true},
		{"negative duration", func(c *Config) { c.Duration = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %q, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestResolveWingStart(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ResolveWingStart(120); got != 30 {
		t.Errorf("ResolveWingStart() = %v, want 30", got)
	}
	cfg = cfg.WithWingStart(0)
	if got := cfg.ResolveWingStart(120); got != 0 {
		t.Errorf("ResolveWingStart() with explicit zero = %v, want 0", got)
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig().WithWingStart(10)
	clone := cfg.Clone()
	*clone.WingStart = 99
	if *cfg.WingStart != 10 {
		t.Errorf("Clone shared WingStart pointer")
	}
}
