package page

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/payload"
	"github.com/goliatone/go-heroform/pkg/render"
	"github.com/goliatone/go-heroform/pkg/renderers/jsonview"
	"github.com/goliatone/go-heroform/pkg/renderers/vanilla"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/themes"
	"github.com/goliatone/go-heroform/pkg/validation"
)

// Handler serves the hero form pages backed by a record store.
type Handler struct {
	store      submission.RecordStore
	registry   *render.Registry
	theme      *theme.RendererConfig
	rules      validation.ImageRules
	validator  validation.Validator
	maxBytes   int64
	locale     string
	translator render.Translator
	notifier   submission.Notifier
	logger     *zap.Logger
	mux        *http.ServeMux
}

// New builds a handler. Without options it renders HTML through the vanilla
// renderer using the default theme, and JSON when "format=json" is requested.
func New(store submission.RecordStore, opts ...Option) (*Handler, error) {
	if store == nil {
		return nil, errors.New("page: record store is nil")
	}
	h := &Handler{
		store:    store,
		rules:    validation.DefaultImageRules(),
		maxBytes: payload.DefaultMaxBytes,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	if h.registry == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("page: html renderer: %w", err)
		}
		h.registry = render.NewRegistry()
		h.registry.MustRegister(html)
		h.registry.MustRegister(jsonview.New())
	}
	if h.theme == nil {
		cfg, err := defaultTheme()
		if err != nil {
			return nil, err
		}
		h.theme = cfg
	}
	if h.validator == nil {
		v, err := validation.NewFormValidator(h.rules)
		if err != nil {
			return nil, fmt.Errorf("page: validator: %w", err)
		}
		h.validator = v
	}

	h.mux = http.NewServeMux()
	if err := RegisterRoutes(h.mux, "", h); err != nil {
		return nil, err
	}
	return h, nil
}

func defaultTheme() (*theme.RendererConfig, error) {
	manifest, err := themes.Default()
	if err != nil {
		return nil, fmt.Errorf("page: default theme: %w", err)
	}
	selector, err := themes.NewSelector(themes.DefaultTheme, "", manifest)
	if err != nil {
		return nil, fmt.Errorf("page: theme selector: %w", err)
	}
	selection, err := selector.Select("", "")
	if err != nil {
		return nil, fmt.Errorf("page: select theme: %w", err)
	}
	return themes.RendererConfig(selection, themes.DefaultPartials()), nil
}

// ServeHTTP implements http.Handler for the routes registered by New.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) serveCreate(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, hero.NewFormState(nil))
}

func (h *Handler) serveEdit(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.NotFound(w, r)
		return
	}

	var state *hero.FormState
	if r.Method == http.MethodGet {
		record, err := h.store.Get(r.Context(), id)
		if err != nil {
			h.storeError(w, r, id, err)
			return
		}
		state = hero.NewFormState(&record)
	} else {
		state = hero.NewFormState(&hero.Record{ID: id})
	}
	h.serve(w, r, state)
}

// pageData is everything one response renders.
type pageData struct {
	state      *hero.FormState
	errors     hero.FieldErrors
	formErrors []string
	notice     *submission.Notice
	record     *hero.Record
	back       string
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, state *hero.FormState) {
	data := pageData{state: state, back: safeBackLink(r.URL.Query().Get(backField))}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, data)
		return
	}

	p, err := payload.FromRequest(r, h.maxBytes)
	switch {
	case errors.Is(err, payload.ErrTooLarge):
		http.Error(w, "form upload too large", http.StatusRequestEntityTooLarge)
		return
	case err != nil:
		h.logger.Debug("rejecting hero form post", zap.Error(err))
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	action, back := decodeForm(p, state)
	if back != "" {
		data.back = safeBackLink(back)
	}
	if action != nil {
		if msg := action.apply(state); msg != "" {
			data.formErrors = append(data.formErrors, msg)
		}
		h.render(w, r, http.StatusOK, data)
		return
	}

	status, redirect, err := h.submit(r.Context(), &data)
	if err != nil {
		h.logger.Error("hero submission aborted", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if redirect {
		http.Redirect(w, r, data.back, http.StatusSeeOther)
		return
	}
	h.render(w, r, status, data)
}

// submit runs a fresh controller for this request. A successful edit asks
// for a redirect to the back link.
func (h *Handler) submit(ctx context.Context, data *pageData) (int, bool, error) {
	notifiers := []submission.Notifier{
		submission.NotifierFunc(func(_ context.Context, kind submission.NoticeKind, message string) {
			data.notice = &submission.Notice{Kind: kind, Message: message}
		}),
		submission.LogNotifier{Logger: h.logger},
	}
	if h.notifier != nil {
		notifiers = append(notifiers, h.notifier)
	}

	redirect := false
	controller, err := submission.New(h.store,
		submission.WithValidator(h.validator),
		submission.WithNotifier(submission.MultiNotifier(notifiers...)),
		submission.WithEditComplete(func(_ context.Context, result submission.Result) {
			redirect = result.OK()
		}),
		submission.WithLogger(h.logger),
	)
	if err != nil {
		return 0, false, err
	}

	result, err := controller.Submit(ctx, data.state)
	if err != nil {
		return 0, false, err
	}

	data.errors = result.FieldErrors
	switch result.Kind {
	case submission.ResultSuccess:
		record := result.Record
		data.record = &record
		return http.StatusOK, redirect, nil
	case submission.ResultValidationFailure:
		return http.StatusUnprocessableEntity, false, nil
	default:
		if errors.Is(result.Err, submission.ErrNotFound) {
			return http.StatusNotFound, false, nil
		}
		var remote *submission.RemoteError
		if errors.As(result.Err, &remote) && remote.StatusCode >= 400 && remote.StatusCode < 500 {
			return remote.StatusCode, false, nil
		}
		return http.StatusBadGateway, false, nil
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	renderer, err := h.registry.Resolve(r.URL.Query().Get("format"), vanilla.Name)
	if err != nil {
		h.logger.Warn("hero page renderer unavailable", zap.Strings("registered", h.registry.List()), zap.Error(err))
		http.Error(w, err.Error(), http.StatusNotAcceptable)
		return
	}

	view := render.NewView(render.ViewInput{
		State:      data.state,
		Errors:     data.errors,
		FormErrors: data.formErrors,
		Notice:     data.notice,
		Action:     formAction(r),
		BackLink:   data.back,
		Accept:     h.rules.Accept(),
		Record:     data.record,
	})
	out, err := renderer.Render(r.Context(), view, render.RenderOptions{
		Theme:      h.theme,
		Hidden:     render.MergeHiddenFields(nil, render.BackLinkField(data.back)),
		Locale:     h.locale,
		Translator: h.translator,
	})
	if err != nil {
		h.logger.Error("hero page render failed", zap.String("renderer", renderer.Name()), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, submission.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	h.logger.Warn("hero lookup failed", zap.String("id", id), zap.Error(err))
	http.Error(w, submission.UserMessage(err), http.StatusBadGateway)
}

// formAction posts back to the current path, keeping the requested format.
func formAction(r *http.Request) string {
	action := r.URL.EscapedPath()
	if format := strings.TrimSpace(r.URL.Query().Get("format")); format != "" {
		action += "?format=" + url.QueryEscape(format)
	}
	return action
}
