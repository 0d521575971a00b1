package validation

import (
	"context"

	"github.com/goliatone/go-heroform/pkg/hero"
)

// Validator checks a form state before submission.
type Validator interface {
	Validate(ctx context.Context, state *hero.FormState) hero.FieldErrors
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(ctx context.Context, state *hero.FormState) hero.FieldErrors

// Validate implements Validator.
func (fn ValidatorFunc) Validate(ctx context.Context, state *hero.FormState) hero.FieldErrors {
	return fn(ctx, state)
}

// FormValidator composes the create-mode image requirement, the image rules
// and the schema rules.
type FormValidator struct {
	Images ImageRules
	Schema *SchemaValidator
}

// NewFormValidator builds a validator from the embedded hero description and
// the supplied image rules.
func NewFormValidator(rules ImageRules) (*FormValidator, error) {
	schema, err := DefaultSchemaValidator()
	if err != nil {
		return nil, err
	}
	return &FormValidator{Images: rules, Schema: schema}, nil
}

// Validate implements Validator. Images are optional when editing; stored
// images are kept by the record store.
func (v *FormValidator) Validate(_ context.Context, state *hero.FormState) hero.FieldErrors {
	var errs hero.FieldErrors
	if state.Mode() == hero.ModeCreate && len(state.Images) == 0 {
		errs.Add(hero.FieldImages, MessageImagesRequired)
	}
	if len(state.Images) > 0 {
		errs.Merge(ValidateImages(state.Images, v.Images))
	}
	if v.Schema != nil {
		errs.Merge(v.Schema.ValidateState(state))
	}
	return errs
}
