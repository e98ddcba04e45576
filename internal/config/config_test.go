package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Errorf("embedded defaults differ from DefaultRunnerConfig():\n%+v\n%+v", cfg, DefaultRunnerConfig())
	}
}

func TestLoadRunnerCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("physics:\n  gravity: 1.2\nsurface:\n  width: 640\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Physics.Gravity != 1.2 {
		t.Errorf("gravity = %f, expected 1.2", cfg.Physics.Gravity)
	}
	if cfg.Surface.Width != 640 {
		t.Errorf("width = %f, expected 640", cfg.Surface.Width)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.JumpPower != 20 || cfg.Surface.Height != 200 {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should return an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadRunner(path)
	if err == nil {
		t.Error("malformed config should return an error")
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Error("malformed config should fall back to defaults")
	}
}

func TestSpeedStepFunction(t *testing.T) {
	cfg := DefaultRunnerConfig()
	d := NewDifficultyManager(cfg.Difficulty, cfg.Obstacles)

	tests := []struct {
		score int
		speed float64
	}{
		{0, 3},
		{199, 3},
		{200, 3.8},
		{399, 3.8},
		{400, 4.6},
		{1000, 7},
	}
	for _, tc := range tests {
		if got := d.Speed(tc.score); !approx(got, tc.speed) {
			t.Errorf("Speed(%d) = %f, expected %f", tc.score, got, tc.speed)
		}
	}

	prev := d.Speed(0)
	for score := 1; score < 5000; score++ {
		cur := d.Speed(score)
		if cur < prev {
			t.Fatalf("Speed decreased at score %d: %f < %f", score, cur, prev)
		}
		prev = cur
	}
}

func TestSpawnInterval(t *testing.T) {
	cfg := DefaultRunnerConfig()
	d := NewDifficultyManager(cfg.Difficulty, cfg.Obstacles)

	if got := d.BaseInterval(0); got != 120 {
		t.Errorf("BaseInterval(0) = %f, expected 120", got)
	}
	if got := d.BaseInterval(299); got != 120 {
		t.Errorf("BaseInterval(299) = %f, expected 120", got)
	}
	if got := d.BaseInterval(300); got != 112 {
		t.Errorf("BaseInterval(300) = %f, expected 112", got)
	}
	if got := d.BaseInterval(1_000_000); got != 40 {
		t.Errorf("BaseInterval should bottom out at 40, got %f", got)
	}

	// u=0.5 is zero jitter, u=0 is -40
	if got := d.SpawnInterval(0, 0.5); got != 120 {
		t.Errorf("SpawnInterval(0, .5) = %f, expected 120", got)
	}
	if got := d.SpawnInterval(0, 0); got != 80 {
		t.Errorf("SpawnInterval(0, 0) = %f, expected 80", got)
	}

	for _, score := range []int{0, 300, 3000, 30000, 1_000_000} {
		for _, u := range []float64{0, 0.001, 0.25, 0.5, 0.999999} {
			if got := d.SpawnInterval(score, u); got < 25 {
				t.Errorf("SpawnInterval(%d, %f) = %f, below floor", score, u, got)
			}
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		tier    int
	}{
		{"", true, 0},
		{DifficultyEasy, true, 0},
		{DifficultyNormal, true, 1},
		{DifficultyHard, true, 3},
		{DifficultyFixed, false, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled || cfg.Difficulty.InitialTier != tc.tier {
				t.Errorf("ApplyPreset(%q) = enabled %v tier %d", tc.preset, cfg.Difficulty.Enabled, cfg.Difficulty.InitialTier)
			}
			if cfg.Physics != DefaultRunnerConfig().Physics {
				t.Error("presets must not touch physics")
			}
		})
	}

	cfg := DefaultRunnerConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	d := NewDifficultyManager(cfg.Difficulty, cfg.Obstacles)
	if d.Speed(5000) != 3 || d.BaseInterval(5000) != 120 {
		t.Error("fixed preset should freeze speed and spawn cadence")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should be recognized")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown presets should map to empty")
	}
}
