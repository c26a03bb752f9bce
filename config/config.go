// Package config loads the optional regmap project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/regmap/encode"
	"github.com/signadot/regmap/format"

	"github.com/goccy/go-yaml"
)

const (
	EnvConfig  = "REGMAP_CONFIG"
	DefaultOut = "out.json"
)

var ErrConfig = errors.New("bad config")

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the contents of regmap.yaml or regmap.json.
type Config struct {
	// Out is the file export writes.
	Out string `yaml:"out,omitempty"`
	// Format is json or yaml.
	Format string `yaml:"format,omitempty"`
	// Indent is the number of spaces per nesting level.
	Indent int `yaml:"indent,omitempty"`
	// Top names the addrmap to export; empty selects the last defined.
	Top string `yaml:"top,omitempty"`
	// Color is auto, always or never.
	Color string `yaml:"color,omitempty"`
	// Files lists the model documents export reads when none are given.
	Files []string `yaml:"files,omitempty"`

	// Path is where the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Names are the file names searched for, in order.
var Names = []string{"regmap.yaml", "regmap.yml", "regmap.json"}

// Load finds and loads the configuration file.
// Search order:
//  1. $REGMAP_CONFIG
//  2. regmap.{yaml,yml,json} in dir
//  3. ~/.config/regmap/regmap.{yaml,yml,json}
//
// Returns DefaultConfig if no config file is found
func Load(dir string) (*Config, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return LoadFile(p)
	}
	var searchPaths []string
	for _, n := range Names {
		searchPaths = append(searchPaths, filepath.Join(dir, n))
	}
	if home, err := os.UserHomeDir(); err == nil {
		for _, n := range Names {
			searchPaths = append(searchPaths, filepath.Join(home, ".config", "regmap", n))
		}
	}
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFile loads configuration from a specific file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	cfg.Path = path
	cfg.applyDefaults()
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Out == "" {
		c.Out = DefaultOut
	}
	if c.Format == "" {
		c.Format = format.JSONFormat.String()
	}
	if c.Indent == 0 {
		c.Indent = encode.DefaultIndent
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
}

// Check reports the first invalid setting.
func (c *Config) Check() error {
	if _, err := format.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if c.Indent < 1 || c.Indent > 16 {
		return fmt.Errorf("%w: indent %d not in [1, 16]", ErrConfig, c.Indent)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color %q is not auto, always or never", ErrConfig, c.Color)
	}
	return nil
}

// OutFormat returns the configured output format.
func (c *Config) OutFormat() format.Format {
	f, err := format.ParseFormat(c.Format)
	if err != nil {
		return format.JSONFormat
	}
	return f
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(c, yaml.IndentSequence(true))
}

// WriteFile writes c to path, failing if the file exists.
func (c *Config) WriteFile(path string) error {
	d, err := c.Marshal()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		return err
	}
	return f.Close()
}
