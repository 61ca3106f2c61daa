package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds cxgraph configuration.
type Config struct {
	Data     DataConfig     `toml:"data"`
	View     ViewConfig     `toml:"view"`
	Random   RandomConfig   `toml:"random"`
	UI       UIConfig       `toml:"ui"`
	Activity ActivityConfig `toml:"activity"`
}

// DataConfig locates the two input tables.
type DataConfig struct {
	Dir           string `toml:"dir"`
	Constructions string `toml:"constructions"` // overrides <dir>/constructions.json
	Relations     string `toml:"relations"`     // overrides <dir>/relations.json
}

// ViewConfig controls neighborhood extraction and layout bounds.
type ViewConfig struct {
	Depth       int     `toml:"depth"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Suggestions int     `toml:"suggestions"`
}

// RandomConfig seeds layout positions and random selection.
type RandomConfig struct {
	Seed int64 `toml:"seed"` // 0 seeds from the clock
}

// UIConfig controls display options.
type UIConfig struct {
	Color bool `toml:"color"`
}

// ActivityConfig controls the selection history log.
type ActivityConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data:     DataConfig{Dir: "data"},
		View:     ViewConfig{Depth: 3, Width: 500, Height: 500, Suggestions: 5},
		UI:       UIConfig{Color: true},
		Activity: ActivityConfig{Enabled: true},
	}
}

// ConfigDir returns the cxgraph config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cxgraph")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist.
func Load() *Config {
	cfg, _ := LoadFile(Path())
	return cfg
}

// LoadFile reads the config at path over the defaults. The defaults are
// returned along with any read or parse error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
