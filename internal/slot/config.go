package slot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries everything the control panel needs at construction:
// reel geometry, bet bounds and levels, autoplay denominations, and the
// per-mode spin durations. Configuration problems are fatal here: the
// runtime refuses to start rather than run in an undefined state.
type Config struct {
	Reels int `yaml:"reels"`

	BetMin    int   `yaml:"bet_min"`
	BetMax    int   `yaml:"bet_max"`
	BetLevels []int `yaml:"bet_levels"`

	AutoplayCounts []int `yaml:"autoplay_counts"`

	// Spin duration per speed mode, seconds. Reel stagger and the
	// forced-stop floor are derived from these (see spin.go).
	SpinSecondsNormal float64 `yaml:"spin_seconds_normal"`
	SpinSecondsQuick  float64 `yaml:"spin_seconds_quick"`
	SpinSecondsTurbo  float64 `yaml:"spin_seconds_turbo"`

	// AssetsDir holds the uploaded control art; empty means no uploads
	// and every control renders with the default skin.
	AssetsDir string `yaml:"assets_dir"`
}

// DefaultConfig mirrors the wizard's generator defaults.
func DefaultConfig() Config {
	return Config{
		Reels:             5,
		BetMin:            1,
		BetMax:            20,
		BetLevels:         []int{1, 2, 5, 10, 20},
		AutoplayCounts:    []int{20, 50, 100, 200, 500, 1000},
		SpinSecondsNormal: 2.8,
		SpinSecondsQuick:  1.8,
		SpinSecondsTurbo:  1.2,
	}
}

// LoadConfig reads a YAML config file over the defaults and validates
// the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate enforces the construction-time invariants. Everything past
// this point is total: no runtime operation can fail on configuration.
func (c Config) Validate() error {
	if c.Reels < 1 {
		return fmt.Errorf("config: reel count must be >= 1, got %d", c.Reels)
	}
	if len(c.BetLevels) == 0 && c.BetMin > c.BetMax {
		return fmt.Errorf("config: no bet levels and bet_min %d > bet_max %d", c.BetMin, c.BetMax)
	}
	for _, n := range c.AutoplayCounts {
		if n <= 0 {
			return fmt.Errorf("config: autoplay count must be > 0, got %d", n)
		}
	}
	if c.SpinSecondsNormal <= 0 || c.SpinSecondsQuick <= 0 || c.SpinSecondsTurbo <= 0 {
		return fmt.Errorf("config: spin durations must be > 0")
	}
	if c.SpinSecondsTurbo > c.SpinSecondsQuick || c.SpinSecondsQuick > c.SpinSecondsNormal {
		return fmt.Errorf("config: spin durations must satisfy turbo <= quick <= normal")
	}
	return nil
}

func (c Config) spinSeconds(mode SpeedMode) float64 {
	switch mode {
	case SpeedQuick:
		return c.SpinSecondsQuick
	case SpeedTurbo:
		return c.SpinSecondsTurbo
	default:
		return c.SpinSecondsNormal
	}
}
