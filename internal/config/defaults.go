package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			HomeTrashDir: "",
			Verbose:      false,
			Protect: ProtectConfig{
				Files:    []string{},
				Patterns: []string{},
				Globs:    []string{},
			},
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Format:  "text",
			Rotation: RotationConfig{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
