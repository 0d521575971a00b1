package themes

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys the HTML renderer looks up in RendererConfig.Partials.
const (
	PartialPage = "hero.page"
	PartialForm = "hero.form"
)

// DefaultPartials maps partial keys to the embedded templates.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialPage: "page.tmpl",
		PartialForm: "form.tmpl",
	}
}

// RendererConfig merges a selection into renderer configuration: fallbacks,
// then the base manifest, then the variant. Tokens also become CSS custom
// properties named "--<token>".
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Partials: make(map[string]string),
		Tokens:   make(map[string]string),
		CSSVars:  make(map[string]string),
	}
	for key, value := range fallbacks {
		cfg.Partials[key] = value
	}
	if selection == nil || selection.Manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}

	cfg.Theme = selection.Theme
	cfg.Variant = selection.Variant

	manifest := selection.Manifest
	prefix := manifest.Assets.Prefix
	files := make(map[string]string)
	merge(cfg.Tokens, manifest.Tokens)
	merge(cfg.Partials, manifest.Templates)
	merge(files, manifest.Assets.Files)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		merge(cfg.Tokens, variant.Tokens)
		merge(cfg.Partials, variant.Templates)
		merge(files, variant.Assets.Files)
		if p := strings.TrimSpace(variant.Assets.Prefix); p != "" {
			prefix = p
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func merge(dst, src map[string]string) {
	for key, value := range src {
		if strings.TrimSpace(value) != "" {
			dst[key] = value
		}
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}
