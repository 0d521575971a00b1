// Package jsonview renders the hero form view as a JSON document for API
// clients and scripted front ends.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-heroform/pkg/render"
)

// Name is the registry key of this renderer.
const Name = "json"

// Document is the JSON shape produced by the renderer.
type Document struct {
	render.View
	Hidden []render.HiddenField `json:"hidden,omitempty"`
	Theme  *ThemeInfo           `json:"theme,omitempty"`
}

// ThemeInfo summarises the selected theme.
type ThemeInfo struct {
	Name       string            `json:"name"`
	Variant    string            `json:"variant,omitempty"`
	Tokens     map[string]string `json:"tokens,omitempty"`
	Stylesheet string            `json:"stylesheet,omitempty"`
}

// Renderer encodes views as indented JSON.
type Renderer struct {
	indent string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent sets the indentation; an empty string produces compact output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New builds a JSON renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "application/json; charset=utf-8" }

// Render implements render.Renderer.
func (r *Renderer) Render(_ context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	render.LocalizeView(&view, opts)

	doc := Document{View: view, Hidden: render.SortedHiddenFields(opts.Hidden)}
	if cfg := opts.Theme; cfg != nil && cfg.Theme != "" {
		doc.Theme = &ThemeInfo{Name: cfg.Theme, Variant: cfg.Variant, Tokens: cfg.Tokens}
		if cfg.AssetURL != nil {
			doc.Theme.Stylesheet = cfg.AssetURL("stylesheet")
		}
	}

	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(doc)
	} else {
		out, err = json.MarshalIndent(doc, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode view: %w", err)
	}
	return append(out, '\n'), nil
}
