package slot

import (
	"os"
	"path/filepath"
	"testing"
)

// --- Config validation ---

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero reels", func(c *Config) { c.Reels = 0 }},
		{"negative count", func(c *Config) { c.AutoplayCounts = []int{20, -1} }},
		{"zero duration", func(c *Config) { c.SpinSecondsNormal = 0 }},
		{"turbo slower than quick", func(c *Config) { c.SpinSecondsTurbo = 2.0 }},
		{"quick slower than normal", func(c *Config) { c.SpinSecondsQuick = 3.0 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
reels: 3
bet_min: 2
bet_max: 50
bet_levels: [2, 10, 50]
autoplay_counts: [10, 25]
spin_seconds_normal: 2.0
spin_seconds_quick: 1.5
spin_seconds_turbo: 1.0
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Reels != 3 || cfg.BetMax != 50 || len(cfg.AutoplayCounts) != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SpinSecondsQuick != 1.5 {
		t.Fatalf("expected quick duration 1.5, got %v", cfg.SpinSecondsQuick)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file should be an error")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("reels: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed yaml should be an error")
	}
}
