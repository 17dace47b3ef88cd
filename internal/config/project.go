package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level sol.yaml configuration.
type Config struct {
	// Serve configures `sol serve`.
	Serve ServeConfig `yaml:"serve,omitempty"`

	// Color is one of auto, always or never. Defaults to auto, which colors
	// diagnostics only when stderr is a terminal.
	Color string `yaml:"color,omitempty"`

	// Definitions name closed terms. The printer shows a matching subterm
	// by its name instead of its structure. Order matters: a definition may
	// mention the ones listed before it.
	Definitions []Definition `yaml:"definitions,omitempty"`
}

type ServeConfig struct {
	// Addr is the TCP address the gRPC service listens on.
	Addr string `yaml:"addr,omitempty"`
}

// Definition binds a name to the source text of a closed term.
type Definition struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// Default returns the configuration used when no sol.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a sol.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses sol.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for sol.yaml starting from dir and walking up to
// parent directories. It returns an empty path and nil error if there is
// none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFrom finds and loads the sol.yaml governing dir, or returns Default
// when there is none.
func LoadFrom(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be %s, %s or %s, got %q", path, ColorAuto, ColorAlways, ColorNever, c.Color)
	}

	seen := make(map[string]int)
	for i, def := range c.Definitions {
		if def.Name == "" {
			return fmt.Errorf("%s: definitions[%d]: name is required", path, i)
		}
		if !IsIdentifier(def.Name) {
			return fmt.Errorf("%s: definitions[%d]: %q is not an identifier", path, i, def.Name)
		}
		if prev, ok := seen[def.Name]; ok {
			return fmt.Errorf("%s: definitions[%d]: %q already defined at definitions[%d]", path, i, def.Name, prev)
		}
		seen[def.Name] = i
		if def.Source == "" {
			return fmt.Errorf("%s: definitions[%d] (%s): source is required", path, i, def.Name)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultServeAddr
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
}

// IsIdentifier reports whether s is a non-empty run of [A-Za-z0-9_].
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !('a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9' || ch == '_') {
			return false
		}
	}
	return true
}
