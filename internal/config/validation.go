package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(fl.Field().String())
	re := regexp.MustCompile(`^\d+(B|KB|MB|GB|TB|PB)$`)
	return re.MatchString(value)
}

// validateGlob checks that the field compiles as a path glob
func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String(), filepath.Separator)
	return err == nil
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

// expandPath expands environment variables and "~" in paths
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	path = os.ExpandEnv(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return abs, nil
}

// Deprecation contains metadata about field deprecation
type Deprecation struct {
	DeprecatedAt time.Time
	RemovalDate  time.Time
	Alternative  string
	StrictMode   bool
}

var deprecatedFields = map[string]Deprecation{
	"trash_dir": {
		DeprecatedAt: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Alternative:  "core.home_trash_dir",
	},
}

// validateDeprecated warns about deprecated fields that are set. Fields in
// strict mode are rejected.
func validateDeprecated(fl validator.FieldLevel) bool {
	if fl.Field().String() == "" {
		return true
	}

	name := fl.FieldName()
	info, exists := deprecatedFields[name]
	if !exists {
		printWarningDeprecated(name, nil)
		return true
	}

	if info.StrictMode {
		printErrorDeprecated(name, info)
		return false
	}

	printWarningDeprecated(name, &info)
	return true
}

// validateDirPath checks that the field is a usable directory path: if it
// exists it must be a directory. Paths starting with "~" or containing
// environment variables are expanded first.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	expanded, err := expandPath(path)
	if err != nil {
		return false
	}

	fi, err := os.Stat(expanded)
	if err == nil {
		return fi.IsDir()
	}
	return os.IsNotExist(err)
}
