package themes_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-heroform/pkg/themes"
)

func TestDefaultManifest(t *testing.T) {
	manifest, err := themes.Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	if manifest.Name != themes.DefaultTheme {
		t.Fatalf("unexpected name %q", manifest.Name)
	}
	if _, ok := manifest.Variants["dark"]; !ok {
		t.Fatal("expected dark variant")
	}
	if manifest.Assets.Files["stylesheet"] != "heroform.css" {
		t.Fatalf("unexpected assets %+v", manifest.Assets)
	}
}

func TestLoadManifest_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.json")
	body := `{"name":"acme","version":"2.0.0","tokens":{"brand":"#123456"},"assets":{"prefix":"/static/acme","files":{"stylesheet":"acme.css"}}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manifest, err := themes.LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if manifest.Name != "acme" || manifest.Tokens["brand"] != "#123456" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
}

func TestParseManifest_RequiresName(t *testing.T) {
	if _, err := themes.ParseManifest([]byte("tokens:\n  brand: red\n")); err == nil {
		t.Fatal("expected error for unnamed manifest")
	}
	if _, err := themes.ParseManifest([]byte("  ")); err == nil {
		t.Fatal("expected error for empty manifest")
	}
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "text": "#000"},
		Templates: map[string]string{
			themes.PartialForm: "themes/acme/form.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{"stylesheet": "theme.css", "logo": "logo.svg"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens:    map[string]string{"brand": "#654321"},
				Templates: map[string]string{themes.PartialPage: "themes/acme/dark/page.tmpl"},
				Assets:    theme.Assets{Files: map[string]string{"stylesheet": "theme.dark.css"}},
			},
		},
	}
}

func TestSelector_DefaultsAndErrors(t *testing.T) {
	selector, err := themes.NewSelector("acme", "dark", acmeManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	sel, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select defaults: %v", err)
	}
	if sel.Theme != "acme" || sel.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", sel.Theme, sel.Variant)
	}

	sel, err = selector.Select("acme", "")
	if err != nil || sel.Variant != "" {
		t.Fatalf("expected base variant, got %+v (%v)", sel, err)
	}

	if _, err := selector.Select("missing", ""); !errors.Is(err, themes.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := selector.Select("acme", "neon"); !errors.Is(err, themes.ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
	if diff := cmp.Diff([]string{"acme"}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererConfig_MergesVariantOverBase(t *testing.T) {
	selector, err := themes.NewSelector("acme", "", acmeManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	sel, err := selector.Select("acme", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	cfg := themes.RendererConfig(sel, themes.DefaultPartials())

	wantPartials := map[string]string{
		themes.PartialPage: "themes/acme/dark/page.tmpl",
		themes.PartialForm: "themes/acme/form.tmpl",
	}
	if diff := cmp.Diff(wantPartials, cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}
	wantVars := map[string]string{"--brand": "#654321", "--text": "#000"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("logo"); got != "/assets/themes/acme/logo.svg" {
		t.Fatalf("unexpected logo url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
}

func TestRendererConfig_NilSelectionKeepsFallbacks(t *testing.T) {
	cfg := themes.RendererConfig(nil, themes.DefaultPartials())
	if diff := cmp.Diff(themes.DefaultPartials(), cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}
	if cfg.AssetURL("stylesheet") != "" {
		t.Fatal("expected empty asset url")
	}
}
