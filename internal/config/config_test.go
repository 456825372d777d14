package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ttrash/tt/internal/env"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
core:
  verbose: true
  protect:
    files: [".git"]
    patterns: ['^\.env']
    globs: ["/srv/**"]
logging:
  enabled: true
  level: debug
  rotation:
    max_size: 5MB
`)

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !cfg.Core.Verbose {
		t.Error("Core.Verbose = false, want true")
	}
	if len(cfg.Core.Protect.Files) != 1 || cfg.Core.Protect.Files[0] != ".git" {
		t.Errorf("Protect.Files = %v", cfg.Core.Protect.Files)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Enabled {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	// unset fields keep their defaults
	if cfg.Logging.Format != "text" || cfg.Logging.Rotation.MaxFiles != 3 {
		t.Errorf("defaults lost: %+v", cfg.Logging)
	}
	if cfg.Logging.Rotation.MaxSize != "5MB" {
		t.Errorf("MaxSize = %q, want 5MB", cfg.Logging.Rotation.MaxSize)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "logging:\n  level: verbose\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad size", "logging:\n  rotation:\n    max_size: lots\n"},
		{"negative max files", "logging:\n  rotation:\n    max_files: -1\n"},
		{"bad glob", "core:\n  protect:\n    globs: ['/srv/[a']\n"},
		{"bad pattern", "core:\n  protect:\n    patterns: ['(']\n"},
		{"unknown field", "core:\n  colour: red\n"},
		{"not yaml", "core: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			if !IsParseError(err) {
				t.Errorf("Parse() error = %v, want ParseError", err)
			}
		})
	}
}

func TestParseHomeTrashDirIsFile(t *testing.T) {
	file := writeConfig(t, "")
	_, err := Parse(writeConfig(t, "core:\n  home_trash_dir: "+file+"\n"))
	if !IsParseError(err) {
		t.Errorf("Parse() error = %v, want ParseError", err)
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	if !IsParseError(err) {
		t.Fatalf("Parse() error = %v, want ParseError", err)
	}
	if !strings.Contains(err.Error(), "Example YAML file contents") {
		t.Errorf("error does not show the example config:\n%v", err)
	}
}

func TestParseCreatesDefaultFile(t *testing.T) {
	saved := env.TT_CONFIG_PATH
	t.Cleanup(func() { env.TT_CONFIG_PATH = saved })
	env.TT_CONFIG_PATH = filepath.Join(t.TempDir(), "tt", "config.yaml")

	cfg, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default", cfg.Logging.Level)
	}

	content, err := os.ReadFile(env.TT_CONFIG_PATH)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if !strings.Contains(string(content), "max_size: 10MB") {
		t.Errorf("default config content:\n%s", content)
	}
}

func TestParseDeprecatedTrashDir(t *testing.T) {
	var buf bytes.Buffer
	saved := deprecationOutput
	deprecationOutput = &buf
	t.Cleanup(func() { deprecationOutput = saved })

	dir := t.TempDir()
	cfg, err := Parse(writeConfig(t, "core:\n  trash_dir: "+dir+"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !strings.Contains(buf.String(), "trash_dir") {
		t.Errorf("no deprecation warning printed: %q", buf.String())
	}
	got, err := cfg.Core.ResolveHomeTrashDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("ResolveHomeTrashDir() = %q, want %q", got, dir)
	}
}

func TestResolveHomeTrashDir(t *testing.T) {
	t.Setenv("HOME", "/home/dummy")
	t.Setenv("TRASH_ROOT", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~/Trash", "/home/dummy/Trash"},
		{"~", "/home/dummy"},
		{"$TRASH_ROOT/Trash", "/data/Trash"},
		{"/abs/Trash/", "/abs/Trash"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Core{HomeTrashDir: tt.in}.ResolveHomeTrashDir()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ResolveHomeTrashDir(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeprecationNotes(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	notes := deprecationNotes(Deprecation{
		DeprecatedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		RemovalDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Alternative:  "core.home_trash_dir",
	}, now)

	if len(notes) != 3 {
		t.Fatalf("deprecationNotes() = %q", notes)
	}
	if !strings.Contains(notes[2], "removed on 2025-03-01") {
		t.Errorf("removal note = %q", notes[2])
	}
}
