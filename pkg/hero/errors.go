package hero

import (
	"errors"
	"strings"
)

// ErrSuperpowerNotRemovable is returned when removing the first superpower
// entry or an index outside the list.
var ErrSuperpowerNotRemovable = errors.New("hero: superpower entry cannot be removed")

// FieldError is a validation message attached to a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// FieldErrors is an ordered list of field errors. A non-empty list satisfies
// the error interface so validators can return it directly.
type FieldErrors []FieldError

func (errs FieldErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return "hero: invalid fields: " + strings.Join(parts, "; ")
}

// Add appends a message for field, skipping blanks and exact duplicates.
func (errs *FieldErrors) Add(field, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	for _, existing := range *errs {
		if existing.Field == field && existing.Message == message {
			return
		}
	}
	*errs = append(*errs, FieldError{Field: field, Message: message})
}

// Merge appends every error from other preserving order.
func (errs *FieldErrors) Merge(other FieldErrors) {
	for _, err := range other {
		errs.Add(err.Field, err.Message)
	}
}

// For returns the messages attached to field.
func (errs FieldErrors) For(field string) []string {
	var out []string
	for _, err := range errs {
		if err.Field == field {
			out = append(out, err.Message)
		}
	}
	return out
}

// Has reports whether any message targets field.
func (errs FieldErrors) Has(field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

// ByField groups messages by field, the shape renderers consume.
func (errs FieldErrors) ByField() map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, err := range errs {
		out[err.Field] = append(out[err.Field], err.Message)
	}
	return out
}

// AsFieldErrors unwraps err into a FieldErrors list.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var errs FieldErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return errs, true
	}
	return nil, false
}
