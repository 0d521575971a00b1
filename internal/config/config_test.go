package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Images.Rules().Accept(); got != ".jpg, .jpeg, .png, .webp" {
		t.Fatalf("unexpected accept list %q", got)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "heroform.yaml", `
listen: 127.0.0.1:9000
shutdownGrace: 3s
store:
  kind: http
  baseURL: https://api.example.test/v1
  timeout: 5s
theme:
  name: heroform
  variant: dark
images:
  maxCount: 3
  extensions: [png]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" || cfg.ShutdownGrace != 3*time.Second {
		t.Fatalf("unexpected server settings %+v", cfg)
	}
	wantStore := Store{Kind: StoreHTTP, BaseURL: "https://api.example.test/v1", Timeout: 5 * time.Second, MountAPI: true}
	if diff := cmp.Diff(wantStore, cfg.Store); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
	if cfg.Theme.Variant != "dark" || cfg.Images.MaxCount != 3 || cfg.Images.MaxBytes != 5<<20 {
		t.Fatalf("unexpected theme/images %+v %+v", cfg.Theme, cfg.Images)
	}
	if diff := cmp.Diff([]string{"png"}, cfg.Images.Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "heroform.json", `{"listen": ":7000", "store": {"mountAPI": false}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":7000" || cfg.Store.MountAPI {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "heroform.yaml", "listen: :9000\n")
	t.Setenv("HEROFORM_LISTEN", ":9100")
	t.Setenv("HEROFORM_STORE_KIND", "http")
	t.Setenv("HEROFORM_STORE_BASE_URL", "http://localhost:4000")
	t.Setenv("HEROFORM_IMAGES_EXTENSIONS", ".png,.gif")
	t.Setenv("HEROFORM_SHUTDOWN_GRACE", "1s")
	t.Setenv("HEROFORM_STORE_API_DESCRIPTION", "/etc/heroform/api.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":9100" || cfg.Store.Kind != StoreHTTP || cfg.Store.BaseURL != "http://localhost:4000" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Store.APIDescription != "/etc/heroform/api.yaml" {
		t.Fatalf("expected api description override, got %q", cfg.Store.APIDescription)
	}
	if cfg.ShutdownGrace != time.Second {
		t.Fatalf("expected 1s grace, got %s", cfg.ShutdownGrace)
	}
	if diff := cmp.Diff([]string{".png", ".gif"}, cfg.Images.Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		env     map[string]string
		want    string
	}{
		{name: "unknown key", content: "listn: :80\n", want: "config: parse"},
		{name: "http without url", content: "store:\n  kind: http\n", want: "store.baseURL is required"},
		{name: "unknown store", content: "store:\n  kind: sqlite\n", want: `unknown store kind "sqlite"`},
		{name: "bad env", env: map[string]string{"HEROFORM_MAX_UPLOAD_BYTES": "lots"}, want: "config: parse env"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			path := ""
			if tc.content != "" {
				path = writeFile(t, "heroform.yaml", tc.content)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
