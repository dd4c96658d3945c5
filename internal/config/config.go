package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/newrelic/go-easy-modifiers/modifier"
	"github.com/newrelic/go-easy-modifiers/syntax"
	"gopkg.in/yaml.v3"
)

const defaultSeparator = " "

// ErrInvalidSeparator is returned for a separator with characters other than spaces, tabs and newlines.
var ErrInvalidSeparator = errors.New("separator may only contain spaces, tabs and newlines")

// Config holds the modifier ordering table and formatting settings.
type Config struct {
	// Modifiers replaces the canonical ordering table when not empty.
	Modifiers []ModifierConfig `yaml:"modifiers" toml:"modifiers"`

	// Separator is inserted between the last modifier and the rest of a
	// declaration. Only spaces, tabs and newlines are allowed.
	Separator string `yaml:"separator" toml:"separator"`

	Debug bool `yaml:"debug" toml:"debug"`
}

// ModifierConfig assigns a modifier keyword to a category (access, static or other).
type ModifierConfig struct {
	Keyword  string `yaml:"keyword" toml:"keyword"`
	Category string `yaml:"category" toml:"category"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Separator: defaultSeparator}
}

// Load reads a configuration file. Files ending in .toml are decoded as TOML,
// everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every keyword and category and the separator.
func (c *Config) Validate() error {
	if _, err := c.Table(); err != nil {
		return err
	}
	if _, err := c.SeparatorTrivia(); err != nil {
		return err
	}
	return nil
}

// Table builds the ordering table described by the configuration.
func (c *Config) Table() (modifier.Table, error) {
	if len(c.Modifiers) == 0 {
		return modifier.DefaultTable(), nil
	}

	categories := make(map[syntax.Kind]modifier.Category, len(c.Modifiers))
	for _, m := range c.Modifiers {
		kind := syntax.KindOf(strings.TrimSpace(m.Keyword))
		if kind == syntax.Invalid || !kind.IsModifier() {
			return modifier.Table{}, &modifier.ConfigError{Value: m.Keyword, Err: modifier.ErrInvalidKind}
		}
		category, err := modifier.ParseCategory(strings.ToLower(strings.TrimSpace(m.Category)))
		if err != nil {
			return modifier.Table{}, err
		}
		if _, ok := categories[kind]; ok {
			return modifier.Table{}, fmt.Errorf("modifier %q is configured more than once", m.Keyword)
		}
		categories[kind] = category
	}
	return modifier.NewTable(categories)
}

// SeparatorTrivia converts the separator setting to trivia.
func (c *Config) SeparatorTrivia() ([]syntax.Trivia, error) {
	sep := c.Separator
	if sep == "" {
		sep = defaultSeparator
	}

	var trivia []syntax.Trivia
	for _, r := range sep {
		switch r {
		case ' ', '\t':
			if n := len(trivia); n > 0 && trivia[n-1].Kind == syntax.Whitespace {
				trivia[n-1].Text += string(r)
				continue
			}
			trivia = append(trivia, syntax.Trivia{Kind: syntax.Whitespace, Text: string(r)})
		case '\n':
			trivia = append(trivia, syntax.EndOfLine())
		default:
			return nil, &modifier.ConfigError{Value: sep, Err: ErrInvalidSeparator}
		}
	}
	return trivia, nil
}

// Editor returns a modifier editor for the configuration.
func (c *Config) Editor() (*modifier.Editor, error) {
	table, err := c.Table()
	if err != nil {
		return nil, err
	}
	sep, err := c.SeparatorTrivia()
	if err != nil {
		return nil, err
	}
	return modifier.NewEditor(table, sep...), nil
}
