package submission

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-heroform/pkg/hero"
)

var (
	// ErrSubmitInProgress is returned when Submit is called while a previous
	// submission is still being validated or sent.
	ErrSubmitInProgress = errors.New("submission: submit already in progress")
	// ErrNilState is returned when Submit receives no form state.
	ErrNilState = errors.New("submission: form state is nil")
	// ErrNotFound is returned by record stores when a hero does not exist.
	ErrNotFound = errors.New("submission: hero not found")
)

// MessageNotFound is the notification text for ErrNotFound.
const MessageNotFound = "Hero not found"

// RemoteError describes a failure reported by the record store.
type RemoteError struct {
	StatusCode int
	Message    string
	Fields     hero.FieldErrors
	Err        error
}

func (e *RemoteError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" && e.StatusCode > 0 {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" {
		msg = "remote failure"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("submission: remote error (%d): %s", e.StatusCode, msg)
	}
	return "submission: remote error: " + msg
}

func (e *RemoteError) Unwrap() error { return e.Err }

// UserMessage is the text shown in the error notification.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		if msg := strings.TrimSpace(remote.Message); msg != "" {
			return msg
		}
	}
	if errors.Is(err, ErrNotFound) {
		return MessageNotFound
	}
	if remote != nil {
		if remote.Err != nil {
			return remote.Err.Error()
		}
		if remote.StatusCode > 0 {
			return http.StatusText(remote.StatusCode)
		}
	}
	return err.Error()
}

func remoteFields(err error) hero.FieldErrors {
	var remote *RemoteError
	if errors.As(err, &remote) && len(remote.Fields) > 0 {
		out := make(hero.FieldErrors, len(remote.Fields))
		copy(out, remote.Fields)
		return out
	}
	return nil
}
