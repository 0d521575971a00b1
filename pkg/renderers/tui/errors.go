package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrGaveUp is returned by Prompter.Run when the user declines to retry
	// after a failed submission.
	ErrGaveUp = errors.New("tui: submission abandoned")
)
