// Package submission drives a hero form through validation, payload assembly
// and the create or update call against a record store.
//
// A Controller moves through Idle, Validating, Submitting, Succeeded and
// Failed. The outcome of the remote call is read from the value the store
// returns, never from shared flags, and a second submit while one is in
// flight is rejected with ErrSubmitInProgress.
package submission
