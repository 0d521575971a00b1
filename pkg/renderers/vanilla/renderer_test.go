package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/render"
	"github.com/goliatone/go-heroform/pkg/renderers/vanilla"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/themes"
	"github.com/goliatone/go-heroform/pkg/validation"
)

func newRenderer(t *testing.T) *vanilla.Renderer {
	t.Helper()
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderView(t *testing.T, view render.View, opts render.RenderOptions) string {
	t.Helper()
	out, err := newRenderer(t).Render(context.Background(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func mustContain(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("output missing %q\n%s", fragment, out)
		}
	}
}

func TestRender_CreatePage(t *testing.T) {
	view := render.NewView(render.ViewInput{
		Action:   "/heroes/new",
		BackLink: "/heroes",
		Accept:   validation.DefaultImageRules().Accept(),
	})

	out := renderView(t, view, render.RenderOptions{
		Hidden: render.MergeHiddenFields(nil, render.BackLinkField("/heroes")),
	})

	mustContain(t, out,
		`<html lang="en">`,
		`<h1 class="heroform-header">Add new SuperHero!</h1>`,
		`<a class="heroform-back" href="/heroes">Back</a>`,
		`action="/heroes/new"`,
		`enctype="multipart/form-data"`,
		`<input type="hidden" name="from" value="/heroes">`,
		`accept=".jpg, .jpeg, .png, .webp" multiple`,
		`name="add_superpower"`,
		`>Submit</button>`,
	)
	if got := strings.Count(out, `name="superpowers"`); got != 1 {
		t.Fatalf("expected one superpower input, got %d", got)
	}
	if strings.Contains(out, `name="remove_superpower"`) {
		t.Fatal("first superpower must not be removable")
	}
}

func TestRender_EditPageMarksRemovableEntries(t *testing.T) {
	state := hero.NewFormState(&hero.Record{
		ID:          "42",
		Nickname:    "Flash",
		Superpowers: []string{"speed", "phasing", "time travel"},
	})
	view := render.NewView(render.ViewInput{State: state, Action: "/heroes/42/edit", BackLink: "/"})

	out := renderView(t, view, render.RenderOptions{})

	if strings.Contains(out, "Add new SuperHero!") {
		t.Fatal("edit page must not show the create heading")
	}
	mustContain(t, out,
		`value="Flash"`,
		`name="remove_superpower" value="1"`,
		`name="remove_superpower" value="2"`,
	)
	if got := strings.Count(out, `name="remove_superpower"`); got != 2 {
		t.Fatalf("expected two remove buttons, got %d", got)
	}
}

func TestRender_ErrorsNoticeAndEscaping(t *testing.T) {
	state := hero.NewFormState(nil)
	state.Nickname = `<script>alert("x")</script>`
	view := render.NewView(render.ViewInput{
		State: state,
		Errors: hero.FieldErrors{
			{Field: hero.FieldImages, Message: validation.MessageImagesRequired},
			{Field: hero.FieldCatchPhrase, Message: "Catch phrase is required"},
		},
		Notice: &submission.Notice{
			Kind:    submission.NoticeError,
			Message: `<b>Network</b> error<script>alert(1)</script>`,
		},
		Loading: true,
	})

	out := renderView(t, view, render.RenderOptions{})

	mustContain(t, out,
		`heroform-notice--error`,
		`<b>Network</b> error</div>`,
		`Please select at least one image`,
		`Catch phrase is required`,
		`heroform-field--invalid`,
		`&lt;script&gt;`,
		` disabled>`,
	)
	if strings.Contains(out, "<script>") {
		t.Fatalf("unsanitised script in output\n%s", out)
	}
}

func TestRender_AppliesThemeTokensAndAssets(t *testing.T) {
	manifest, err := themes.Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	cfg := themes.RendererConfig(&theme.Selection{
		Theme:    manifest.Name,
		Variant:  "dark",
		Manifest: manifest,
	}, themes.DefaultPartials())

	out := renderView(t, render.NewView(render.ViewInput{}), render.RenderOptions{Theme: cfg})

	mustContain(t, out,
		`href="/assets/themes/heroform/heroform.dark.css"`,
		`--brand: #90caf9;`,
		`data-theme="heroform"`,
		`data-variant="dark"`,
	)
}

func TestRender_TranslatesLabels(t *testing.T) {
	translator := render.TranslatorFunc(func(_ string, key string, _ ...any) (string, error) {
		if key == render.KeySubmit {
			return "Guardar", nil
		}
		return "", nil
	})

	out := renderView(t, render.NewView(render.ViewInput{}), render.RenderOptions{Locale: "es", Translator: translator})

	mustContain(t, out, `<html lang="es">`, `>Guardar</button>`, `>Nickname</label>`)
}

func TestAssetsFS_ContainsStylesheets(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, "heroform.dark.css"} {
		if _, err := fs.Stat(vanilla.AssetsFS(), name); err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
	}
}
