// Package httpstore talks to the hero REST API described by the bundled
// OpenAPI document. Create and update send multipart/form-data; reads and
// responses are JSON.
package httpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/openapi"
	"github.com/goliatone/go-heroform/pkg/payload"
	"github.com/goliatone/go-heroform/pkg/render"
	"github.com/goliatone/go-heroform/pkg/submission"
)

// DefaultTimeout bounds each request when no client is supplied.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 1 << 20

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithEndpoints replaces the endpoints resolved from the OpenAPI document.
func WithEndpoints(endpoints openapi.Endpoints) Option {
	return func(s *Store) {
		s.endpoints = &endpoints
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(s *Store) {
		s.headers.Add(key, value)
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store implements submission.RecordStore over HTTP.
type Store struct {
	base      *url.URL
	client    *http.Client
	timeout   time.Duration
	endpoints *openapi.Endpoints
	headers   http.Header
	logger    *zap.Logger
}

var _ submission.RecordStore = (*Store)(nil)

// New returns a store rooted at baseURL.
func New(baseURL string, options ...Option) (*Store, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("httpstore: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("httpstore: base url %q must be absolute", baseURL)
	}

	s := &Store{
		base:    base,
		timeout: DefaultTimeout,
		headers: make(http.Header),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	if s.endpoints == nil {
		spec, err := openapi.Default()
		if err != nil {
			return nil, fmt.Errorf("httpstore: load api description: %w", err)
		}
		endpoints, err := spec.Endpoints()
		if err != nil {
			return nil, fmt.Errorf("httpstore: resolve endpoints: %w", err)
		}
		s.endpoints = &endpoints
	}
	return s, nil
}

// Create posts a new hero.
func (s *Store) Create(ctx context.Context, p *payload.Payload) (hero.Record, error) {
	return s.send(ctx, s.endpoints.Create, "", p)
}

// Update sends the edited hero.
func (s *Store) Update(ctx context.Context, id string, p *payload.Payload) (hero.Record, error) {
	if strings.TrimSpace(id) == "" {
		return hero.Record{}, errors.New("httpstore: update requires an id")
	}
	return s.send(ctx, s.endpoints.Update, id, p)
}

// Get fetches a hero. A 404 is reported as submission.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (hero.Record, error) {
	req, err := s.newRequest(ctx, s.endpoints.Get, id, nil)
	if err != nil {
		return hero.Record{}, err
	}
	return s.do(req)
}

func (s *Store) send(ctx context.Context, endpoint openapi.Endpoint, id string, p *payload.Payload) (hero.Record, error) {
	if p == nil {
		p = payload.New()
	}
	body, contentType, err := p.Encode()
	if err != nil {
		return hero.Record{}, fmt.Errorf("httpstore: encode payload: %w", err)
	}
	req, err := s.newRequest(ctx, endpoint, id, body)
	if err != nil {
		return hero.Record{}, err
	}
	req.Header.Set("Content-Type", contentType)
	return s.do(req)
}

func (s *Store) newRequest(ctx context.Context, endpoint openapi.Endpoint, id string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimPrefix(endpoint.Expand(id), "/"))
	if err != nil {
		return nil, fmt.Errorf("httpstore: parse path %q: %w", endpoint.Path, err)
	}
	base := *s.base
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	target := base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, endpoint.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("httpstore: build %s request: %w", endpoint.OperationID, err)
	}
	for key, values := range s.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (s *Store) do(req *http.Request) (hero.Record, error) {
	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("hero api request failed",
			zap.String("method", req.Method), zap.String("url", req.URL.String()), zap.Error(err))
		return hero.Record{}, &submission.RemoteError{Message: "Network error", Err: err}
	}
	defer resp.Body.Close()

	s.logger.Debug("hero api request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return hero.Record{}, decodeError(resp)
	}

	var record hero.Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return hero.Record{}, &submission.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    "Invalid response from server",
			Err:        fmt.Errorf("httpstore: decode record: %w", err),
		}
	}
	return record, nil
}

// errorBody is the API's error document.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decodeError(resp *http.Response) error {
	remote := &submission.RemoteError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		remote.Message = strings.TrimSpace(string(raw))
		if remote.Message == "" || strings.HasPrefix(remote.Message, "<") {
			remote.Message = http.StatusText(resp.StatusCode)
		}
	} else {
		mapping := render.MapErrorPayload(body.Errors)
		remote.Fields = mapping.FieldErrors()
		remote.Message = strings.TrimSpace(body.Message)
		if remote.Message == "" {
			remote.Message = strings.Join(mapping.Form, "; ")
		}
		if remote.Message == "" {
			remote.Message = http.StatusText(resp.StatusCode)
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		remote.Err = submission.ErrNotFound
	}
	return remote
}
