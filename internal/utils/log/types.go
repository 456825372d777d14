package log

import (
	"fmt"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type (
	Level     = charmlog.Level
	Styles    = charmlog.Styles
	Formatter = charmlog.Formatter
)

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
	FatalLevel = charmlog.FatalLevel
)

const (
	TextFormatter   = charmlog.TextFormatter
	JSONFormatter   = charmlog.JSONFormatter
	LogfmtFormatter = charmlog.LogfmtFormatter
)

// ParseLevel converts a level name from the config file
func ParseLevel(s string) (Level, error) {
	return charmlog.ParseLevel(strings.ToLower(s))
}

// ParseFormatter converts a format name from the config file
func ParseFormatter(s string) (Formatter, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return TextFormatter, nil
	case "json":
		return JSONFormatter, nil
	case "logfmt":
		return LogfmtFormatter, nil
	}
	return TextFormatter, fmt.Errorf("unknown log format: %q", s)
}
