package heroform

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-heroform/pkg/store/memstore"
	"github.com/goliatone/go-heroform/pkg/themes"
)

func TestEmbeddedFilesystems(t *testing.T) {
	for _, name := range []string{"page.tmpl", "form.tmpl"} {
		if _, err := fs.ReadFile(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected template %s: %v", name, err)
		}
	}
	data, err := fs.ReadFile(AssetsFS(), "heroform.css")
	if err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".heroform-form") {
		t.Fatalf("expected stylesheet to style the form")
	}
}

func TestNewPageHandler_WithThemeSelector(t *testing.T) {
	manifest, err := themes.Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	selector, err := themes.NewSelector(themes.DefaultTheme, "", manifest)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	opt, err := WithThemeSelector(selector, "", "dark")
	if err != nil {
		t.Fatalf("theme option: %v", err)
	}

	h, err := NewPageHandler(memstore.New(), opt)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/heroes/new", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if out := rec.Body.String(); !strings.Contains(out, `data-variant="dark"`) {
		t.Fatalf("expected dark variant marker:\n%s", out)
	}

	if _, err := WithThemeSelector(selector, "missing", ""); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if _, err := WithThemeSelector(nil, "", ""); err == nil {
		t.Fatalf("expected error for nil selector")
	}
}

func TestNewFormStateAndController(t *testing.T) {
	state := NewFormState(&Record{ID: "7", Nickname: "Flash"})
	if state.Nickname != "Flash" || state.RecordID != "7" {
		t.Fatalf("unexpected state %+v", state)
	}
	if _, err := NewController(nil); err == nil {
		t.Fatalf("expected error for nil store")
	}
	ctrl, err := NewController(memstore.New())
	if err != nil || ctrl == nil {
		t.Fatalf("controller: %v", err)
	}
}
