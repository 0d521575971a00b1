package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data renderers use without mutating the
// View.
type RenderOptions struct {
	// Theme supplies tokens, partial overrides and asset URLs for the page.
	Theme *theme.RendererConfig
	// Hidden inputs (CSRF token, back link target) emitted inside the form.
	Hidden map[string]string
	// Locale and Translator localise labels and headings carrying a key.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}
