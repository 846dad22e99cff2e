// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data DataConfig `toml:"data"`
	View ViewConfig `toml:"view"`
}

// DataConfig maps where the assets come from.
type DataConfig struct {
	Dir     *string `toml:"dir"`
	BaseURL *string `toml:"base-url"`
	Cache   *bool   `toml:"cache"`
	Retries *int    `toml:"retries"`
	Locale  *string `toml:"locale"`
}

// ViewConfig maps the initial control selections.
type ViewConfig struct {
	Sort          *string  `toml:"sort"`
	RemoveOutlier *bool    `toml:"remove-outlier"`
	Region        *string  `toml:"region"`
	Version       *float64 `toml:"version"`
	ScriptRegion  *string  `toml:"script-region"`
	Year          *int     `toml:"year"`
	View          *string  `toml:"view"`
	MinChars      *int     `toml:"min-chars"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
