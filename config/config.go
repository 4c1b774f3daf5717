package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTickRate is the grid resolution in ticks per second
const DefaultTickRate = 1000

// OutputConfig stores where and how rendered files are written
type OutputConfig struct {
	Dir        string `json:"dir,omitempty"`
	TickRate   int    `json:"tickRate,omitempty"`
	SoundFont  string `json:"soundFont,omitempty"`
	SampleRate int    `json:"sampleRate,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	DefaultProfile string       `json:"defaultProfile,omitempty"`
	Profiles       []Profile    `json:"profiles,omitempty"`
	Output         OutputConfig `json:"output,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DefaultProfile: "pianoteq",
		Output: OutputConfig{
			TickRate:   DefaultTickRate,
			SampleRate: 44100,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-midiplug"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns defaults if it does not exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for _, p := range cfg.Profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Profile finds a profile by name, user profiles shadowing built-ins
func (c *Config) Profile(name string) (Profile, bool) {
	if name == "" {
		name = c.DefaultProfile
	}
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return c.Profiles[i], true
		}
	}
	return Builtin(name)
}

// AddProfile adds or updates a user profile
func (c *Config) AddProfile(p Profile) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == p.Name {
			c.Profiles[i] = p
			return
		}
	}
	c.Profiles = append(c.Profiles, p)
}

// TickRate returns the configured tick rate or the default
func (c *Config) TickRate() int {
	if c.Output.TickRate > 0 {
		return c.Output.TickRate
	}
	return DefaultTickRate
}
