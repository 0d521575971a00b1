package submission

// State is the controller's position in the submit pipeline.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Busy reports whether a submission is running.
func (s State) Busy() bool {
	return s == StateValidating || s == StateSubmitting
}
