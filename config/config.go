// Package config loads solar.toml / solar.yaml settings for the solar command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/solar/parser"
)

// FileNames are the config file names looked for in each directory, in order.
var FileNames = []string{"solar.toml", "solar.yaml", "solar.yml"}

// Config is the solar configuration.
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// ParserConfig holds parser limits and modes.
type ParserConfig struct {
	MaxDepth int  `toml:"max_depth" yaml:"max_depth"` // nesting limit for blocks and parentheses
	Recover  bool `toml:"recover" yaml:"recover"`     // report every statement error, not just the first
}

// OutputConfig controls how the command prints results.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // text, yaml or json
	Color  bool   `toml:"color" yaml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{MaxDepth: parser.DefaultMaxDepth},
		Log:    LogConfig{Level: "warn", Format: "text"},
		Output: OutputConfig{Format: "text", Color: true},
	}
}

// FindAndLoad looks for a config file starting at startDir and walking up to
// the filesystem root. Without one it returns the defaults and an empty path.
func FindAndLoad(startDir string) (*Config, string, error) {
	path := FindConfigFile(startDir)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// FindConfigFile returns the first config file found in startDir or one of
// its parents, or "" when there is none.
func FindConfigFile(startDir string) string {
	dir := startDir
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load reads the config file at path. The format follows the extension:
// .yaml and .yml are YAML, anything else TOML. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: YAML parse error: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: TOML parse error: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting has a supported value.
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 1 {
		return fmt.Errorf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("output.format must be text, yaml or json, got %q", c.Output.Format)
	}
	return nil
}

// Options converts the parser settings into parser options.
func (c ParserConfig) Options() []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(c.MaxDepth)}
	if c.Recover {
		opts = append(opts, parser.WithRecovery())
	}
	return opts
}
