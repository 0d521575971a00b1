// Package vanilla renders the hero form as a plain HTML page with no client
// side scripting. Add/remove superpower buttons post the form back to the
// page handler.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-heroform/pkg/render"
	rendertemplate "github.com/goliatone/go-heroform/pkg/render/template"
	"github.com/goliatone/go-heroform/pkg/render/template/pongo"
	"github.com/goliatone/go-heroform/pkg/themes"
)

// Name is the registry key of this renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithNoticePolicy replaces the sanitiser applied to notification messages.
func WithNoticePolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

var (
	noticePolicyOnce sync.Once
	noticePolicy     *bluemonday.Policy
)

// defaultNoticePolicy allows inline formatting in server messages and strips
// everything else.
func defaultNoticePolicy() *bluemonday.Policy {
	noticePolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("b", "strong", "em", "i", "code", "br")
		noticePolicy = p
	})
	return noticePolicy
}

// Renderer draws the hero page.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = defaultNoticePolicy()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(
			pongo.WithName("vanilla"),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	return &Renderer{templates: templates, policy: cfg.policy}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render localises the view, renders the form partial and wraps it in the
// page partial selected by the theme.
func (r *Renderer) Render(_ context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	render.LocalizeView(&view, opts)

	partials := themes.DefaultPartials()
	if opts.Theme != nil {
		for key, value := range opts.Theme.Partials {
			if strings.TrimSpace(value) != "" {
				partials[key] = value
			}
		}
	}

	data := map[string]any{
		"view":        view,
		"hidden":      render.SortedHiddenFields(opts.Hidden),
		"classes":     classMap(),
		"theme":       themeContext(opts.Theme),
		"notice_html": r.noticeHTML(view),
		"locale":      opts.Locale,
	}
	for name, fn := range render.TemplateI18nFuncs(opts.Translator, opts.OnMissing) {
		data[name] = fn
	}

	form, err := r.templates.RenderTemplate(partials[themes.PartialForm], data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	data["form_html"] = form

	page, err := r.templates.RenderTemplate(partials[themes.PartialPage], data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(page), nil
}

func (r *Renderer) noticeHTML(view render.View) string {
	if view.Notice == nil {
		return ""
	}
	return strings.TrimSpace(r.policy.Sanitize(view.Notice.Message))
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	ctx := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		ctx["stylesheet"] = cfg.AssetURL("stylesheet")
	}
	return ctx
}

// cssVarsStyle renders custom properties in key order. Values cannot close
// the surrounding style element.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	clean := strings.NewReplacer("<", "", ">", "", ";", "", "{", "", "}", "")
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s; ", clean.Replace(key), clean.Replace(vars[key]))
	}
	return strings.TrimSpace(b.String())
}
