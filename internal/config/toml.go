// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Extract ExtractConfig `toml:"extract"`
}

// ExtractConfig maps extraction-related settings.
type ExtractConfig struct {
	Corpus       *string  `toml:"corpus"`
	StopList     *string  `toml:"stoplist"`
	Targets      []string `toml:"targets"`
	TargetsFile  *string  `toml:"targets-file"`
	Window       *int     `toml:"window"`
	Senses       []int    `toml:"senses"`
	DeriveSenses *bool    `toml:"derive-senses"`
	Relation     *string  `toml:"relation"`
	NotFound     *string  `toml:"not-found"`
	Record       *bool    `toml:"record"`
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
