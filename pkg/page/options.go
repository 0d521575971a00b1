package page

import (
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/pkg/render"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/validation"
)

// Option configures a Handler.
type Option func(*Handler)

// WithRegistry replaces the default html/json renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(h *Handler) {
		if registry != nil {
			h.registry = registry
		}
	}
}

// WithTheme sets the renderer configuration resolved from a theme selection.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(h *Handler) {
		if cfg != nil {
			h.theme = cfg
		}
	}
}

// WithImageRules sets the upload limits used by validation and the picker.
func WithImageRules(rules validation.ImageRules) Option {
	return func(h *Handler) {
		h.rules = rules
	}
}

// WithValidator replaces the default form validator.
func WithValidator(v validation.Validator) Option {
	return func(h *Handler) {
		h.validator = v
	}
}

// WithMaxBytes bounds the decoded size of a form post.
func WithMaxBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBytes = n
		}
	}
}

// WithTranslator localises labels for locale.
func WithTranslator(locale string, t render.Translator) Option {
	return func(h *Handler) {
		h.locale = locale
		h.translator = t
	}
}

// WithNotifier receives every notification in addition to the page banner.
func WithNotifier(n submission.Notifier) Option {
	return func(h *Handler) {
		h.notifier = n
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}
