// Package memstore is an in-memory hero record store used by the dev server
// and tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/payload"
	"github.com/goliatone/go-heroform/pkg/submission"
)

// FailFunc decides whether an operation should fail. op is "create",
// "update" or "get".
type FailFunc func(op string, id string) error

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithFailure injects errors into store operations.
func WithFailure(fn FailFunc) Option {
	return func(s *Store) {
		s.fail = fn
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

// WithRecords seeds the store.
func WithRecords(records ...hero.Record) Option {
	return func(s *Store) {
		for _, record := range records {
			if record.ID == "" {
				continue
			}
			s.records[record.ID] = record.Clone()
		}
	}
}

// Store keeps heroes in a map guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	records map[string]hero.Record
	newID   func() string
	fail    FailFunc
	logger  *zap.Logger
}

var _ submission.RecordStore = (*Store)(nil)

// New returns an empty store.
func New(options ...Option) *Store {
	s := &Store{
		records: make(map[string]hero.Record),
		newID:   uuid.NewString,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create stores the payload as a new hero.
func (s *Store) Create(ctx context.Context, p *payload.Payload) (hero.Record, error) {
	if err := s.check(ctx, "create", ""); err != nil {
		return hero.Record{}, err
	}
	record := payload.Extract(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.newID()
	s.records[record.ID] = record.Clone()
	s.logger.Debug("hero created", zap.String("id", record.ID), zap.Int("images", len(record.Images)))
	return record, nil
}

// Update replaces the hero's fields. Stored images are kept when the payload
// carries none.
func (s *Store) Update(ctx context.Context, id string, p *payload.Payload) (hero.Record, error) {
	if err := s.check(ctx, "update", id); err != nil {
		return hero.Record{}, err
	}
	record := payload.Extract(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.records[id]
	if !ok {
		return hero.Record{}, fmt.Errorf("memstore: update %s: %w", id, submission.ErrNotFound)
	}
	record.ID = id
	if len(record.Images) == 0 {
		record.Images = existing.Images
	}
	s.records[id] = record.Clone()
	s.logger.Debug("hero updated", zap.String("id", id), zap.Int("images", len(record.Images)))
	return record.Clone(), nil
}

// Get returns a copy of the stored hero.
func (s *Store) Get(ctx context.Context, id string) (hero.Record, error) {
	if err := s.check(ctx, "get", id); err != nil {
		return hero.Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return hero.Record{}, fmt.Errorf("memstore: get %s: %w", id, submission.ErrNotFound)
	}
	return record.Clone(), nil
}

// List returns every hero ordered by nickname then id.
func (s *Store) List(ctx context.Context) ([]hero.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]hero.Record, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Nickname != out[j].Nickname {
			return out[i].Nickname < out[j].Nickname
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) check(ctx context.Context, op, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.fail != nil {
		if err := s.fail(op, id); err != nil {
			s.logger.Debug("injected store failure", zap.String("op", op), zap.String("id", id), zap.Error(err))
			return err
		}
	}
	return nil
}
