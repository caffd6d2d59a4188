package utils

import (
	"encoding/json"
	"github.com/pkg/errors"
	"os"
	"time"
)

// Config holds the configuration for a simulation run
type Config struct {
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	Iterations    int           `json:"iterations"`
	Seed          int64         `json:"seed"`
	RandomDensity float64       `json:"random_density"`
	Render        bool          `json:"render"`
	FrameRate     time.Duration `json:"frame_rate"`
	Verify        bool          `json:"verify"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:         512,
		Height:        512,
		Iterations:    1000,
		Seed:          42,
		RandomDensity: 0.15,
		Render:        false,
		FrameRate:     150 * time.Millisecond,
		Verify:        false,
	}
}

// Validate rejects configurations the kernel would refuse anyway, so the
// failure surfaces before any allocation happens
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("[Validate] invalid grid dimensions: %dx%d", c.Width, c.Height)
	}
	if c.Iterations < 0 {
		return errors.Errorf("[Validate] negative iteration count: %d", c.Iterations)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random density out of [0,1]: %v", c.RandomDensity)
	}
	return nil
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}
