package log

import (
	"log/slog"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	defaultStylesOnce sync.Once
	defaultStyles     *Styles
)

// DefaultStyles returns the charm styles with fixed-width colored levels
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		styles := charmlog.DefaultStyles()
		for level, style := range levelStyles {
			styles.Levels[level] = style.SetString(levelLabel(level))
		}
		defaultStyles = styles
	})
	return defaultStyles
}

// New creates a slog logger backed by a charm handler
func New(opts ...Option) (*slog.Logger, error) {
	o := DefaultOptions()
	o.Apply(opts...)

	if o.OutputFunc != nil {
		w, err := o.OutputFunc()
		if err != nil {
			return nil, err
		}
		o.Writer = w
	}

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles)

	logger := slog.New(handler)
	if len(o.Attrs) > 0 {
		logger = logger.With(o.Attrs...)
	}

	if o.Default {
		slog.SetDefault(logger)
	}

	return logger, nil
}
