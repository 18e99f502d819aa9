package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingOptionalFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.UI.SyntaxThemeOrDefault(); got != "vulcan" {
		t.Errorf("theme = %q, want vulcan", got)
	}
	if !cfg.UI.LineNumbers() || !cfg.UI.CurrentLine() {
		t.Error("gutter and current line highlight should default on")
	}
	if got := cfg.UI.TabWidthOrDefault(); got != 4 {
		t.Errorf("tab width = %d, want 4", got)
	}
	if diff := cmp.Diff(DefaultOpenPatterns, cfg.Files.Patterns()); diff != "" {
		t.Errorf("patterns (-want +got):\n%s", diff)
	}
	if !cfg.Session.RestoreOrDefault() {
		t.Error("restore should default on")
	}
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml"), true); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing required config: got %v, want ErrNotExist", err)
	}
}

func TestLoad_UnreadablePathIsNotMissing(t *testing.T) {
	// A path below a regular file fails Stat with something other than
	// ErrNotExist, even for an optional config.
	parent := writeConfig(t, "")
	_, err := Load(filepath.Join(parent, "config.toml"), false)
	if err == nil {
		t.Fatal("expected an error for a path below a regular file")
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("error %v does not wrap the stat failure", err)
	}
	if strings.Contains(err.Error(), "not found") {
		t.Errorf("error %q reports a missing file", err)
	}
}

func TestLoad_ParsesSections(t *testing.T) {
	path := writeConfig(t, `
[ui]
syntax_theme = "monokai"
show_line_numbers = false
current_line_color = "#334455"
tab_width = 8

[files]
open_patterns = []

[session]
restore = false
recent_limit = 5

[log]
level = "DEBUG"
`)
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.SyntaxThemeOrDefault() != "monokai" {
		t.Errorf("theme = %q", cfg.UI.SyntaxTheme)
	}
	if cfg.UI.LineNumbers() {
		t.Error("line numbers should be off")
	}
	if !cfg.UI.CurrentLine() {
		t.Error("current line highlight should stay on when unset")
	}
	if cfg.UI.TabWidthOrDefault() != 8 {
		t.Errorf("tab width = %d", cfg.UI.TabWidth)
	}
	if got := cfg.Files.Patterns(); len(got) != 0 {
		t.Errorf("explicit empty patterns should stay empty, got %v", got)
	}
	if cfg.Session.RestoreOrDefault() || cfg.Session.RecentLimitOrDefault() != 5 {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Log.LevelOrDefault() != "debug" {
		t.Errorf("level = %q", cfg.Log.LevelOrDefault())
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	path := writeConfig(t, `
[ui]
tab_width = 40
current_line_color = "yellow"

[files]
open_patterns = ["[bad"]

[log]
level = "loud"
`)
	_, err := Load(path, true)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"ui.tab_width", "ui.current_line_color", "files.open_patterns", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TABPAD_THEME", "dracula")
	t.Setenv("TABPAD_LOG_LEVEL", "warn")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.SyntaxThemeOrDefault() != "dracula" {
		t.Errorf("theme = %q", cfg.UI.SyntaxTheme)
	}
	if cfg.Log.LevelOrDefault() != "warn" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
}
