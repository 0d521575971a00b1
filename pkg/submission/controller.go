package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/payload"
	"github.com/goliatone/go-heroform/pkg/validation"
)

// EditCompleteFunc runs once per update attempt after its outcome is known.
type EditCompleteFunc func(ctx context.Context, result Result)

// Option configures a Controller.
type Option func(*Controller)

// WithValidator replaces the default form validator.
func WithValidator(v validation.Validator) Option {
	return func(c *Controller) {
		c.validator = v
	}
}

// WithImageRules configures the default validator's image limits. Ignored
// when WithValidator is supplied.
func WithImageRules(rules validation.ImageRules) Option {
	return func(c *Controller) {
		c.imageRules = &rules
	}
}

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithEditComplete registers the callback fired after an update finishes.
func WithEditComplete(fn EditCompleteFunc) Option {
	return func(c *Controller) {
		c.onEditComplete = fn
	}
}

// WithStateHook observes every state transition, e.g. to drive a loading
// indicator.
func WithStateHook(fn func(State)) Option {
	return func(c *Controller) {
		c.onStateChange = fn
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller runs the submit pipeline for one form session.
type Controller struct {
	store          RecordStore
	validator      validation.Validator
	imageRules     *validation.ImageRules
	notifier       Notifier
	onEditComplete EditCompleteFunc
	onStateChange  func(State)
	logger         *zap.Logger

	mu    sync.Mutex
	state State
}

// New constructs a controller dispatching to store.
func New(store RecordStore, opts ...Option) (*Controller, error) {
	if store == nil {
		return nil, errors.New("submission: record store is nil")
	}
	c := &Controller{
		store:  store,
		logger: zap.NewNop(),
		state:  StateIdle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.validator == nil {
		rules := validation.DefaultImageRules()
		if c.imageRules != nil {
			rules = *c.imageRules
		}
		v, err := validation.NewFormValidator(rules)
		if err != nil {
			return nil, fmt.Errorf("submission: default validator: %w", err)
		}
		c.validator = v
	}
	return c, nil
}

// State returns the current pipeline state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether the store call is in flight.
func (c *Controller) Loading() bool {
	return c.State() == StateSubmitting
}

// Submit validates state, sends it to the record store and reports the
// outcome. On success state is reset to an empty form; on failure it is left
// untouched so the user can correct and retry.
func (c *Controller) Submit(ctx context.Context, state *hero.FormState) (Result, error) {
	if state == nil {
		return Result{}, ErrNilState
	}
	if err := c.begin(); err != nil {
		return Result{}, err
	}
	settled := false
	finish := func(next State) {
		c.transition(next)
		settled = true
	}
	// A panicking validator or store must not leave the controller busy.
	defer func() {
		if !settled {
			c.transition(StateFailed)
		}
	}()

	mode := state.Mode()
	id := state.RecordID
	logger := c.logger.With(zap.String("mode", string(mode)), zap.String("id", id))

	if errs := c.validator.Validate(ctx, state); len(errs) > 0 {
		logger.Debug("hero form rejected", zap.Int("errors", len(errs)))
		finish(StateFailed)
		return Result{Kind: ResultValidationFailure, Mode: mode, FieldErrors: errs}, nil
	}

	c.transition(StateSubmitting)
	body := payload.Build(state)

	var (
		record hero.Record
		err    error
	)
	if mode == hero.ModeEdit {
		record, err = c.store.Update(ctx, id, body)
	} else {
		record, err = c.store.Create(ctx, body)
	}

	var result Result
	if err != nil {
		result = Result{
			Kind:        ResultRemoteFailure,
			Mode:        mode,
			FieldErrors: remoteFields(err),
			Message:     UserMessage(err),
			Err:         err,
		}
		logger.Warn("hero store call failed", zap.Error(err))
		c.notify(ctx, NoticeError, result.Message)
		finish(StateFailed)
	} else {
		result = Result{Kind: ResultSuccess, Mode: mode, Record: record, Message: MessageSuccess}
		logger.Info("hero stored", zap.String("record_id", record.ID))
		c.notify(ctx, NoticeSuccess, MessageSuccess)
		state.Reset()
		finish(StateSucceeded)
	}

	if mode == hero.ModeEdit && c.onEditComplete != nil {
		c.onEditComplete(ctx, result)
	}
	return result, nil
}

func (c *Controller) begin() error {
	c.mu.Lock()
	if c.state.Busy() {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	c.state = StateValidating
	hook := c.onStateChange
	c.mu.Unlock()

	if hook != nil {
		hook(StateValidating)
	}
	return nil
}

func (c *Controller) transition(next State) {
	c.mu.Lock()
	c.state = next
	hook := c.onStateChange
	c.mu.Unlock()

	if hook != nil {
		hook(next)
	}
}

func (c *Controller) notify(ctx context.Context, kind NoticeKind, message string) {
	if c.notifier != nil {
		c.notifier.Notify(ctx, kind, message)
	}
}
