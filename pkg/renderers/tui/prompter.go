// Package tui collects hero form values in a terminal and drives the
// submission controller until the record is stored or the user gives up.
package tui

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-heroform/pkg/hero"
	"github.com/goliatone/go-heroform/pkg/render"
	"github.com/goliatone/go-heroform/pkg/submission"
	"github.com/goliatone/go-heroform/pkg/validation"
)

// Theme holds message prefixes used by Info output.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme uses plain ASCII markers.
func DefaultTheme() Theme {
	return Theme{InfoPrefix: "-", ErrorPrefix: "x", SuccessPrefix: "ok"}
}

// Submitter is the part of the submission controller the prompter needs.
type Submitter interface {
	Submit(ctx context.Context, state *hero.FormState) (submission.Result, error)
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithFileReader replaces os.ReadFile when loading image paths.
func WithFileReader(fn func(path string) ([]byte, error)) Option {
	return func(p *Prompter) {
		if fn != nil {
			p.readFile = fn
		}
	}
}

// WithImageRules sets the accept list shown in the images prompt.
func WithImageRules(rules validation.ImageRules) Option {
	return func(p *Prompter) {
		p.rules = rules
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(p *Prompter) {
		p.theme = theme
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Prompter asks for every hero field, pre-filled with the current state.
type Prompter struct {
	driver   PromptDriver
	readFile func(path string) ([]byte, error)
	rules    validation.ImageRules
	theme    Theme
	logger   *zap.Logger
}

// NewPrompter builds a prompter using the survey driver by default.
func NewPrompter(options ...Option) *Prompter {
	p := &Prompter{
		readFile: os.ReadFile,
		rules:    validation.DefaultImageRules(),
		theme:    DefaultTheme(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(nil)
	}
	return p
}

// Fill prompts for each field. Messages in errs are shown before the field
// they belong to.
func (p *Prompter) Fill(ctx context.Context, state *hero.FormState, errs hero.FieldErrors) error {
	if state == nil {
		return errors.New("tui: form state is nil")
	}
	if state.Mode() == hero.ModeCreate {
		if err := p.driver.Info(ctx, render.HeadingCreate); err != nil {
			return err
		}
	}

	for _, field := range []struct {
		name, label string
		multiline   bool
	}{
		{hero.FieldNickname, "Nickname", false},
		{hero.FieldRealName, "Real Name", false},
		{hero.FieldOriginDescription, "Description", true},
		{hero.FieldCatchPhrase, "Catch phrase", false},
	} {
		if err := p.showErrors(ctx, errs.For(field.name)); err != nil {
			return err
		}
		current, _ := state.Scalar(field.name)
		var (
			value string
			err   error
		)
		if field.multiline {
			value, err = p.driver.TextArea(ctx, TextAreaConfig{Message: field.label, Default: current})
		} else {
			value, err = p.driver.Input(ctx, InputConfig{Message: field.label, Default: current})
		}
		if err != nil {
			return err
		}
		state.SetScalar(field.name, strings.TrimSpace(value))
	}

	if err := p.showErrors(ctx, errs.For(hero.FieldSuperpowers)); err != nil {
		return err
	}
	if err := p.fillSuperpowers(ctx, state); err != nil {
		return err
	}

	if err := p.showErrors(ctx, errs.For(hero.FieldImages)); err != nil {
		return err
	}
	return p.fillImages(ctx, state)
}

func (p *Prompter) fillSuperpowers(ctx context.Context, state *hero.FormState) error {
	state.EnsureSuperpower()

	var blank []int
	for idx, current := range state.Superpowers {
		help := ""
		if idx > 0 {
			help = "Leave empty to remove this superpower"
		}
		value, err := p.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Superpower #%d", idx+1),
			Default: current,
			Help:    help,
		})
		if err != nil {
			return err
		}
		value = strings.TrimSpace(value)
		state.Superpowers[idx] = value
		if value == "" && idx > 0 {
			blank = append(blank, idx)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(blank)))
	for _, idx := range blank {
		if err := state.RemoveSuperpower(idx); err != nil {
			return err
		}
	}

	for {
		more, err := p.driver.Confirm(ctx, ConfirmConfig{Message: render.LabelAddSuperpower + "?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		value, err := p.driver.Input(ctx, InputConfig{Message: fmt.Sprintf("Superpower #%d", len(state.Superpowers)+1)})
		if err != nil {
			return err
		}
		if value = strings.TrimSpace(value); value != "" {
			state.AddSuperpower(value)
		}
	}
}

func (p *Prompter) fillImages(ctx context.Context, state *hero.FormState) error {
	help := "Comma separated file paths (" + p.rules.Accept() + ")"
	if state.Mode() == hero.ModeEdit {
		help += "; leave empty to keep the stored images"
	}
	answer, err := p.driver.Input(ctx, InputConfig{Message: "Images", Help: help})
	if err != nil {
		return err
	}

	var images []hero.Image
	for _, path := range strings.Split(answer, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := p.readFile(path)
		if err != nil {
			if infoErr := p.driver.Info(ctx, p.theme.ErrorPrefix+" "+fmt.Sprintf("cannot read %s: %v", path, err)); infoErr != nil {
				return infoErr
			}
			continue
		}
		images = append(images, hero.Image{
			Filename:    filepath.Base(path),
			ContentType: contentType(path, data),
			Data:        data,
		})
	}
	state.SetImages(images)
	return nil
}

// Run fills and submits until the record is stored. After a failure the
// user is asked whether to correct the form and retry.
func (p *Prompter) Run(ctx context.Context, submitter Submitter, state *hero.FormState) (submission.Result, error) {
	var errs hero.FieldErrors
	for {
		if err := p.Fill(ctx, state, errs); err != nil {
			return submission.Result{}, err
		}

		result, err := submitter.Submit(ctx, state)
		if err != nil {
			return submission.Result{}, err
		}

		switch result.Kind {
		case submission.ResultSuccess:
			p.logger.Debug("hero stored from terminal", zap.String("id", result.Record.ID))
			return result, p.driver.Info(ctx, p.theme.SuccessPrefix+" "+result.Message)
		case submission.ResultRemoteFailure:
			if err := p.driver.Info(ctx, p.theme.ErrorPrefix+" "+result.Message); err != nil {
				return result, err
			}
		}
		errs = result.FieldErrors

		retry, err := p.driver.Confirm(ctx, ConfirmConfig{Message: "Correct the form and try again?", Default: true})
		if err != nil {
			return result, err
		}
		if !retry {
			return result, ErrGaveUp
		}
	}
}

func (p *Prompter) showErrors(ctx context.Context, messages []string) error {
	for _, msg := range messages {
		if err := p.driver.Info(ctx, p.theme.ErrorPrefix+" "+msg); err != nil {
			return err
		}
	}
	return nil
}

func contentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
