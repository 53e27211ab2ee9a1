package template

import (
	"log/slog"

	"github.com/randalmurphal/fmtkit/extension"
	"github.com/randalmurphal/fmtkit/settings"
)

// ValueFormatter renders a value for a format clause before the default
// formatter's own rules apply. It reports false to fall through.
type ValueFormatter func(value any, clause string) (string, bool)

// Option configures an Engine.
type Option func(*Engine)

// WithSettings sets the engine settings. The default is settings.Default().
func WithSettings(s settings.Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithSources registers additional sources.
func WithSources(sources ...extension.Source) Option {
	return func(e *Engine) {
		for _, s := range sources {
			e.extensions = append(e.extensions, s)
		}
	}
}

// WithFormatters registers additional formatters.
func WithFormatters(formatters ...extension.Formatter) Option {
	return func(e *Engine) {
		for _, f := range formatters {
			e.extensions = append(e.extensions, f)
		}
	}
}

// WithExtensions registers extensions that may be sources, formatters or both.
func WithExtensions(exts ...extension.Extension) Option {
	return func(e *Engine) {
		e.extensions = append(e.extensions, exts...)
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithValueFormatter installs a hook consulted by the default formatter.
func WithValueFormatter(fn ValueFormatter) Option {
	return func(e *Engine) {
		e.hook = fn
	}
}
