// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xonecas/tabpad/internal/constants"
)

// Config is the root configuration structure.
type Config struct {
	UI      UIConfig      `toml:"ui"`
	Files   FilesConfig   `toml:"files"`
	Session SessionConfig `toml:"session"`
	Log     LogConfig     `toml:"log"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme. UI chrome colors are derived from it
	// via highlight.ThemePalette.
	SyntaxTheme          string `toml:"syntax_theme"`
	ShowLineNumbers      *bool  `toml:"show_line_numbers"`
	HighlightCurrentLine *bool  `toml:"highlight_current_line"`
	// CurrentLineColor overrides the palette-derived current line background.
	CurrentLineColor string `toml:"current_line_color"`
	TabWidth         int    `toml:"tab_width"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "vulcan" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return constants.DefaultSyntaxTheme
	}
	return u.SyntaxTheme
}

// LineNumbers reports whether the gutter is shown. Defaults to true.
func (u UIConfig) LineNumbers() bool {
	return u.ShowLineNumbers == nil || *u.ShowLineNumbers
}

// CurrentLine reports whether the cursor row is highlighted. Defaults to true.
func (u UIConfig) CurrentLine() bool {
	return u.HighlightCurrentLine == nil || *u.HighlightCurrentLine
}

// TabWidthOrDefault returns the configured tab stop or 4.
func (u UIConfig) TabWidthOrDefault() int {
	if u.TabWidth <= 0 {
		return 4
	}
	return u.TabWidth
}

// FilesConfig controls which files the Open picker offers.
type FilesConfig struct {
	// OpenPatterns are base-name globs. Nil means the defaults; an explicit
	// empty list offers every file.
	OpenPatterns []string `toml:"open_patterns"`
}

// DefaultOpenPatterns mirrors the classic "text files" dialog filter.
var DefaultOpenPatterns = []string{"*.txt", "*.py", "*.cpp", "*.md"}

// Patterns returns the configured globs or DefaultOpenPatterns.
func (f FilesConfig) Patterns() []string {
	if f.OpenPatterns == nil {
		return DefaultOpenPatterns
	}
	return f.OpenPatterns
}

// SessionConfig controls tab restore and the recent-files list.
type SessionConfig struct {
	Restore     *bool `toml:"restore"`
	RecentLimit int   `toml:"recent_limit"`
}

// RestoreOrDefault reports whether the previous session is reopened. Defaults to true.
func (s SessionConfig) RestoreOrDefault() bool {
	return s.Restore == nil || *s.Restore
}

// RecentLimitOrDefault returns the recent-files cap or 20.
func (s SessionConfig) RecentLimitOrDefault() int {
	if s.RecentLimit <= 0 {
		return 20
	}
	return s.RecentLimit
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LevelOrDefault returns the configured level or "info".
func (l LogConfig) LevelOrDefault() string {
	if l.Level == "" {
		return "info"
	}
	return strings.ToLower(l.Level)
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{}
}

// Load reads configuration from a TOML file and applies environment variable overrides.
// When required is false a missing file yields the defaults.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	if _, err := os.Stat(path); err != nil {
		switch {
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config: %w", err)
		case required:
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	} else if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.UI.TabWidth < 0 || c.UI.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("ui.tab_width=%d must be between 1 and 16", c.UI.TabWidth))
	}
	if c.UI.CurrentLineColor != "" && !hexColorRe.MatchString(c.UI.CurrentLineColor) {
		errs = append(errs, fmt.Errorf("ui.current_line_color=%q must be #rrggbb", c.UI.CurrentLineColor))
	}

	for _, p := range c.Files.OpenPatterns {
		if _, err := filepath.Match(p, "probe"); err != nil {
			errs = append(errs, fmt.Errorf("files.open_patterns: %q is invalid: %v", p, err))
		}
	}

	if c.Session.RecentLimit < 0 {
		errs = append(errs, fmt.Errorf("session.recent_limit=%d must not be negative", c.Session.RecentLimit))
	}

	switch c.Log.LevelOrDefault() {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level=%q must be one of debug, info, warn, error", c.Log.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"TABPAD_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
		{"TABPAD_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the tabpad data directory (~/.config/tabpad).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns <data dir>/config.toml.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFile), nil
}
