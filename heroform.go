// Package heroform exposes the superhero create/edit form from the top-level
// module: form state, the submission controller and the page handler.
package heroform

import (
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/page"
	"github.com/goliatone/go-heroform/pkg/render"
	"github.com/goliatone/go-heroform/pkg/renderers/vanilla"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/themes"
)

// FormState is the editable form of one session.
type FormState = hero.FormState

// Record is a stored superhero.
type Record = hero.Record

// RecordStore is the backing store the controller dispatches to.
type RecordStore = submission.RecordStore

// Result is the outcome of a submission.
type Result = submission.Result

// RenderOptions carry per-request renderer data such as theme and hidden
// inputs.
type RenderOptions = render.RenderOptions

// NewFormState returns an empty create form, or an edit form prefilled from
// existing.
func NewFormState(existing *Record) *FormState {
	return hero.NewFormState(existing)
}

// NewController builds a submission controller for one form session.
func NewController(store RecordStore, options ...submission.Option) (*submission.Controller, error) {
	return submission.New(store, options...)
}

// NewPageHandler builds the HTTP handler serving the create and edit pages.
func NewPageHandler(store RecordStore, options ...page.Option) (*page.Handler, error) {
	return page.New(store, options...)
}

// WithThemeSelector resolves name and variant through selector and applies
// the result to the page handler. Empty names use the selector defaults.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) (page.Option, error) {
	if selector == nil {
		return nil, fmt.Errorf("heroform: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("heroform: select theme: %w", err)
	}
	return page.WithTheme(themes.RendererConfig(selection, themes.DefaultPartials())), nil
}

// EmbeddedTemplates exposes the built-in page and form templates so callers
// can copy or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stock stylesheets.
//
// Typical mount:
//
//	mux.Handle("/assets/themes/heroform/",
//	  http.StripPrefix("/assets/themes/heroform/",
//	    http.FileServerFS(heroform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
