package trash

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// systemPaths are never trashed, whatever the configuration says
var systemPaths = []string{
	"/",
	"/home",
	"/usr",
	"/etc",
	"/var",
	"/tmp",
}

// GuardOptions lists the paths that must not be trashed
type GuardOptions struct {
	// Files are exact base names
	Files []string

	// Patterns are regular expressions matched against base names
	Patterns []string

	// Globs are matched against absolute paths, "*" does not cross "/"
	Globs []string
}

// Guard refuses to trash protected paths
type Guard struct {
	files    []string
	patterns []*regexp.Regexp
	globs    []glob.Glob
	sources  []string
}

// NewGuard compiles opts
func NewGuard(opts GuardOptions) (*Guard, error) {
	g := &Guard{files: lo.Compact(opts.Files)}

	for _, p := range opts.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid protect pattern %q: %w", p, err)
		}
		g.patterns = append(g.patterns, re)
	}

	for _, s := range opts.Globs {
		gl, err := glob.Compile(s, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("invalid protect glob %q: %w", s, err)
		}
		g.globs = append(g.globs, gl)
		g.sources = append(g.sources, s)
	}

	return g, nil
}

// Check returns an error wrapping ErrProtected when path, which must be
// absolute and clean, may not be trashed
func (g *Guard) Check(path string) error {
	if slices.Contains(systemPaths, path) {
		return fmt.Errorf("%w: %s is a system directory", ErrProtected, path)
	}

	name := filepath.Base(path)
	if slices.Contains(g.files, name) {
		return fmt.Errorf("%w: %s matches protected name %q", ErrProtected, path, name)
	}

	for _, re := range g.patterns {
		if re.MatchString(name) {
			return fmt.Errorf("%w: %s matches protected pattern %q", ErrProtected, path, re.String())
		}
	}

	for i, gl := range g.globs {
		if gl.Match(path) {
			return fmt.Errorf("%w: %s matches protected glob %q", ErrProtected, path, g.sources[i])
		}
	}

	return nil
}
