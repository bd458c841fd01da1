package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file read when -config is not given
const DefaultPath = "countdown.toml"

// Config is the program configuration
type Config struct {
	Log   LogConfig         `toml:"log"`
	Audio AudioConfig       `toml:"audio"`
	Keys  map[string]string `toml:"keys"`
}

// LogConfig controls the debug file logger
type LogConfig struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

// AudioConfig controls the completion chime
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // effects.Volume base-2 exponent, 0 = unity gain
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
			Dir:   "logs",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  -1,
		},
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Parse decodes TOML data over the defaults, rejecting unknown fields
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return Config{}, fmt.Errorf("config: %s", strictErr.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Config{}, fmt.Errorf("config: line %d column %d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path; a missing file yields the defaults when optional is true
func Load(path string, optional bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks field values
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("config: log.level %q: expected debug, info, warn or error", c.Log.Level)
	}
	if c.Log.Dir == "" {
		return fmt.Errorf("config: log.dir must not be empty")
	}
	if c.Audio.Volume > 2 || c.Audio.Volume < -10 {
		return fmt.Errorf("config: audio.volume %.2f out of range [-10, 2]", c.Audio.Volume)
	}
	return nil
}

// Encode renders the configuration as TOML
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
