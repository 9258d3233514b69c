package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"notebox/player"
)

// RouteConfig maps one source index to a MIDI output port.
type RouteConfig struct {
	Source int `json:"source"`
	Port   int `json:"port"`
}

// Config is the main playback configuration.
type Config struct {
	Tempo       int           `json:"tempo,omitempty"`       // beats per minute
	Division    int           `json:"division,omitempty"`    // ticks per beat
	DefaultPort int           `json:"defaultPort,omitempty"` // used when no routes are set
	Routes      []RouteConfig `json:"routes,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Tempo:    120,
		Division: 4,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "notebox"), nil
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

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Meter builds the tempo meter the config describes.
func (c *Config) Meter() player.Bpm {
	tempo := c.Tempo
	if tempo <= 0 {
		tempo = 120
	}
	division := c.Division
	if division <= 0 {
		division = 1
	}
	return player.Bpm{Bpm: tempo, Division: division}
}

// Router builds the source-to-port router the config describes. With no
// routes set, every source goes to the default port.
func (c *Config) Router() player.Router {
	if len(c.Routes) == 0 {
		return player.StaticRouter{Port: c.DefaultPort}
	}
	ports := make(map[int]int, len(c.Routes))
	for _, r := range c.Routes {
		ports[r.Source] = r.Port
	}
	return player.TableRouter{Ports: ports}
}

// FindRoute finds a route by source index
func (c *Config) FindRoute(source int) *RouteConfig {
	for i := range c.Routes {
		if c.Routes[i].Source == source {
			return &c.Routes[i]
		}
	}
	return nil
}

// AddRoute adds or updates a route
func (c *Config) AddRoute(route RouteConfig) {
	for i := range c.Routes {
		if c.Routes[i].Source == route.Source {
			c.Routes[i] = route
			return
		}
	}
	c.Routes = append(c.Routes, route)
}
