package sketch

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.CurveCacheSize != 200 || !cfg.IsolateDrawErrors || cfg.Debug {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SKETCH_CURVE_CACHE_SIZE", "32")
	t.Setenv("SKETCH_DEFAULT_TENSION", "0.25")
	t.Setenv("SKETCH_DEBUG", "true")
	t.Setenv("SKETCH_ISOLATE_DRAW_ERRORS", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CurveCacheSize != 32 || cfg.DefaultTension != 0.25 || !cfg.Debug || cfg.IsolateDrawErrors {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Run("unparseable", func(t *testing.T) {
		t.Setenv("SKETCH_DEFAULT_SEGMENTS", "many")
		if _, err := LoadConfig(); err == nil {
			t.Error("expected a parse error")
		}
	})
	t.Run("zero cache", func(t *testing.T) {
		t.Setenv("SKETCH_CURVE_CACHE_SIZE", "0")
		if _, err := LoadConfig(); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestConfigCurveOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTension = 0.3
	cfg.DefaultSegments = 8
	got := cfg.curveOptions(CurveOptions{Close: true})
	if got != (CurveOptions{Tension: 0.3, Segments: 8, Close: true}) {
		t.Errorf("curveOptions = %+v", got)
	}
	got = cfg.curveOptions(CurveOptions{Tension: 1, Segments: 3})
	if got.Tension != 1 || got.Segments != 3 {
		t.Errorf("explicit options overridden: %+v", got)
	}
	got = cfg.curveOptions(CurveOptions{}.WithTension(0))
	if got.Tension != 0 {
		t.Errorf("explicit zero tension replaced by %v", got.Tension)
	}
}
