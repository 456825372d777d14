package trash

import (
	"testing"
)

func TestGuardCheck(t *testing.T) {
	g, err := NewGuard(GuardOptions{
		Files:    []string{".git", "important.txt"},
		Patterns: []string{`^\.env(\..+)?$`},
		Globs:    []string{"/srv/*/data", "/mnt/backup/**"},
	})
	if err != nil {
		t.Fatalf("NewGuard() error = %v", err)
	}

	tests := []struct {
		name      string
		path      string
		protected bool
	}{
		{"root", "/", true},
		{"system directory", "/usr", true},
		{"below system directory", "/usr/local/bin/tool", false},
		{"protected name", "/home/user/repo/.git", true},
		{"protected name nested", "/tmp/work/important.txt", true},
		{"unrelated file", "/home/user/notes.txt", false},
		{"pattern plain", "/home/user/app/.env", true},
		{"pattern suffixed", "/home/user/app/.env.local", true},
		{"pattern near miss", "/home/user/app/.envrc", false},
		{"glob single level", "/srv/web/data", true},
		{"glob does not cross separators", "/srv/web/site/data", false},
		{"glob super asterisk", "/mnt/backup/2024/01/db.dump", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Check(tt.path)
			if got := IsProtected(err); got != tt.protected {
				t.Errorf("Check(%q) = %v, want protected = %v", tt.path, err, tt.protected)
			}
		})
	}
}

func TestNewGuardInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts GuardOptions
	}{
		{"bad pattern", GuardOptions{Patterns: []string{"(unclosed"}}},
		{"bad glob", GuardOptions{Globs: []string{"/srv/[a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGuard(tt.opts); err == nil {
				t.Error("NewGuard() error = nil, want error")
			}
		})
	}
}

func TestGuardEmpty(t *testing.T) {
	g, err := NewGuard(GuardOptions{Files: []string{""}})
	if err != nil {
		t.Fatalf("NewGuard() error = %v", err)
	}
	if err := g.Check("/home/user/file"); err != nil {
		t.Errorf("Check() = %v, want nil", err)
	}
}
