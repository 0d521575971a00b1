package submission

import "github.com/goliatone/go-heroform/pkg/hero"

// ResultKind tags the outcome of a submission.
type ResultKind string

const (
	ResultSuccess           ResultKind = "success"
	ResultValidationFailure ResultKind = "validation_failure"
	ResultRemoteFailure     ResultKind = "remote_failure"
)

// Result is the outcome of one Submit call.
type Result struct {
	Kind ResultKind `json:"kind"`
	Mode hero.Mode  `json:"mode"`
	// Record is the stored hero on success.
	Record hero.Record `json:"record,omitempty"`
	// FieldErrors holds client validation messages, or field errors reported
	// by the store on a remote failure.
	FieldErrors hero.FieldErrors `json:"fieldErrors,omitempty"`
	// Message is the notification text for success and remote failures.
	Message string `json:"message,omitempty"`
	// Err is the store error behind a remote failure.
	Err error `json:"-"`
}

// OK reports whether the record was stored.
func (r Result) OK() bool { return r.Kind == ResultSuccess }
