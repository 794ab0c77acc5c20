// Package config loads partcheck settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olehluchkiv/partcheck/internal/analyzer"
)

// EnvConfigPath names the config file when no path is given explicitly.
const EnvConfigPath = "PARTCHECK_CONFIG"

// DefaultExtensionPaths are the add-in extension paths that contribute
// composition assemblies.
var DefaultExtensionPaths = []string{
	"/MonoDevelop/Ide/TypeService/PlatformMefHostServices",
	"/MonoDevelop/Ide/TypeService/MefHostServices",
	"/MonoDevelop/Ide/Composition",
}

// Config holds analysis settings.
type Config struct {
	Markers        analyzer.MarkerSet `yaml:"markers"`
	ExtensionPaths []string           `yaml:"extensionPaths"`
	Registry       string             `yaml:"registry"` // add-in registry file
	Verbose        bool               `yaml:"verbose"`
	Filter         string             `yaml:"filter"` // contract name prefix
	Workers        int                `yaml:"workers"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Markers:        analyzer.DefaultMarkers(),
		ExtensionPaths: append([]string(nil), DefaultExtensionPaths...),
		Verbose:        true,
		Workers:        1,
	}
}

// Load reads path, or the file named by PARTCHECK_CONFIG when path is empty,
// over Defaults. With neither set, Defaults is returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that both root markers are named.
func (c Config) Validate() error {
	if c.Markers.HostService == "" || c.Markers.LanguageService == "" {
		return errors.New("markers.hostService and markers.languageService are required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
