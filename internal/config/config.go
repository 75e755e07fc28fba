// Package config loads the optional mosaic.yaml project file: the source
// file extension, entry file name, and trace flag a project root may carry
// next to its Mosaic sources. It is a typed struct loaded from YAML rather
// than CLI flags, since a Mosaic project is a directory of files rather
// than a single script passed on the command line.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultExtension is the source file suffix used when mosaic.yaml is
	// absent or omits the field.
	DefaultExtension = ".mos"
	// DefaultEntry is the entry file name used when mosaic.yaml is absent
	// or omits the field.
	DefaultEntry = "main.mos"
	// FileName is the project configuration file's expected name.
	FileName = "mosaic.yaml"
)

// Config is a Mosaic project's configuration, loaded from mosaic.yaml.
type Config struct {
	Extension string `yaml:"extension"`
	Entry     string `yaml:"entry"`
	Trace     bool   `yaml:"trace"`
}

// Default returns a Config with every field at its documented default.
func Default() Config {
	return Config{Extension: DefaultExtension, Entry: DefaultEntry, Trace: false}
}

// Load reads mosaic.yaml from dir, filling in defaults for any field the
// file omits. If dir contains no mosaic.yaml, Load returns Default() with
// no error.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if loaded.Extension != "" {
		cfg.Extension = loaded.Extension
	}
	if loaded.Entry != "" {
		cfg.Entry = loaded.Entry
	}
	cfg.Trace = loaded.Trace

	return cfg, nil
}
