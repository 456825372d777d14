package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"github.com/ttrash/tt/internal/env"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core    Core          `yaml:"core"`
	Logging LoggingConfig `yaml:"logging"`
}

type Core struct {
	// HomeTrashDir overrides the XDG home trash location. Empty means default.
	HomeTrashDir string `yaml:"home_trash_dir" validate:"omitempty,validDirPath"`

	// TrashDir is the old name of HomeTrashDir
	TrashDir string `yaml:"trash_dir,omitempty" validate:"deprecated"`

	Verbose bool          `yaml:"verbose"`
	Protect ProtectConfig `yaml:"protect"`
}

type ProtectConfig struct {
	Files    []string `yaml:"files"`
	Patterns []string `yaml:"patterns" validate:"dive,validRegexp"`
	Globs    []string `yaml:"globs" validate:"dive,validGlob"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Level    string         `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format   string         `yaml:"format" validate:"required,oneof=text json logfmt"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

// ResolveHomeTrashDir returns the configured home trash with "~" and
// environment variables expanded, or "" when none is configured
func (c Core) ResolveHomeTrashDir() (string, error) {
	dir := c.HomeTrashDir
	if dir == "" {
		dir = c.TrashDir
	}
	if dir == "" {
		return "", nil
	}
	return expandPath(dir)
}

// ParseError is returned by Parse for any problem with the config file
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err comes from Parse
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

type configError struct {
	configPath string
	parser     parser
	err        error
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.TT_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (e configError) Unwrap() error {
	return e.err
}

type parser struct{}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := f.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.TT_CONFIG_PATH

	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			configPath: path,
			parser:     p,
			err:        err,
		}
	}

	return path, nil
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := *NewDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return cfg, fmt.Errorf("validation error: field %s, %q is invalid", verrs[0].Namespace(), verrs[0].Value())
		}
		return cfg, err
	}
	return cfg, nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validGlob", validateGlob)
	_ = validate.RegisterValidation("validRegexp", validateRegexp)
	_ = validate.RegisterValidation("validDirPath", validateDirPath)
	_ = validate.RegisterValidation("deprecated", validateDeprecated)

	return parser{}
}

// Parse reads the config file at path. An empty path means the default
// location, which is created with default contents when missing.
func Parse(path string) (Config, error) {
	parser := initParser()

	configPath := path
	if configPath == "" {
		var err error
		configPath, err = parser.ensureConfigFile()
		if err != nil {
			return *NewDefaultConfig(), &ParseError{Err: err}
		}
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err := parser.readConfigFile(configPath)
	if err != nil {
		return cfg, &ParseError{Err: err}
	}

	return cfg, nil
}
