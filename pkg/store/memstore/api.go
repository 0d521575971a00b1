package memstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/openapi"
	"github.com/goliatone/go-heroform/pkg/payload"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/validation"
)

// APIOption configures the HTTP facade.
type APIOption func(*api)

// WithAPIValidator replaces the server-side validator.
func WithAPIValidator(v validation.Validator) APIOption {
	return func(a *api) {
		a.validator = v
	}
}

// WithAPIMaxBytes bounds request bodies.
func WithAPIMaxBytes(n int64) APIOption {
	return func(a *api) {
		if n > 0 {
			a.maxBytes = n
		}
	}
}

// WithAPILogger attaches a zap logger.
func WithAPILogger(logger *zap.Logger) APIOption {
	return func(a *api) {
		if logger != nil {
			a.logger = logger
		}
	}
}

type api struct {
	store     *Store
	validator validation.Validator
	maxBytes  int64
	logger    *zap.Logger
}

// errorResponse matches the Error schema of the hero API description.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NewAPI serves store over the hero REST API. Routes come from the bundled
// OpenAPI document, so the HTTP record store can talk to it directly.
func NewAPI(store *Store, opts ...APIOption) (http.Handler, error) {
	if store == nil {
		return nil, errors.New("memstore: store is nil")
	}
	a := &api{store: store, maxBytes: payload.DefaultMaxBytes, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.validator == nil {
		v, err := validation.NewFormValidator(validation.DefaultImageRules())
		if err != nil {
			return nil, fmt.Errorf("memstore: validator: %w", err)
		}
		a.validator = v
	}

	spec, err := openapi.Default()
	if err != nil {
		return nil, fmt.Errorf("memstore: api description: %w", err)
	}
	endpoints, err := spec.Endpoints()
	if err != nil {
		return nil, fmt.Errorf("memstore: api endpoints: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(endpoints.Create.Method+" "+endpoints.Create.Path, a.create)
	mux.HandleFunc(endpoints.Update.Method+" "+endpoints.Update.Path, a.update)
	mux.HandleFunc(endpoints.Get.Method+" "+endpoints.Get.Path, a.get)
	return mux, nil
}

func (a *api) create(w http.ResponseWriter, r *http.Request) {
	state, ok := a.decode(w, r, "")
	if !ok {
		return
	}
	record, err := a.store.Create(r.Context(), payload.Build(state))
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (a *api) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state, ok := a.decode(w, r, id)
	if !ok {
		return
	}
	record, err := a.store.Update(r.Context(), id, payload.Build(state))
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *api) get(w http.ResponseWriter, r *http.Request) {
	record, err := a.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// decode reads the multipart body and validates it. A non-empty id selects
// update rules, where images are optional.
func (a *api) decode(w http.ResponseWriter, r *http.Request, id string) (*hero.FormState, bool) {
	p, err := payload.FromRequest(r, a.maxBytes)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, payload.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse{Message: err.Error()})
		return nil, false
	}

	record := payload.Extract(p)
	record.ID = id
	state := hero.NewFormState(&record)
	state.SetImages(record.Images)

	if errs := a.validator.Validate(r.Context(), state); len(errs) > 0 {
		a.logger.Debug("hero api rejected payload", zap.Int("errors", len(errs)))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Message: "Validation failed",
			Errors:  errs.ByField(),
		})
		return nil, false
	}
	return state, true
}

func (a *api) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, submission.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: submission.MessageNotFound})
		return
	}
	var remote *submission.RemoteError
	if errors.As(err, &remote) && remote.StatusCode > 0 {
		writeJSON(w, remote.StatusCode, errorResponse{
			Message: submission.UserMessage(err),
			Errors:  remote.Fields.ByField(),
		})
		return
	}
	a.logger.Error("hero api store failure", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: http.StatusText(http.StatusInternalServerError)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(body)
}
