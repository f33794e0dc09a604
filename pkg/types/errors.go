// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every stage. Stages wrap these with
// fmt.Errorf("...: %w", ErrX) so callers can test with errors.Is.
var (
	// ErrNetwork is a transport failure on search or fetch.
	ErrNetwork = errors.New("network error")

	// ErrMalformedModelOutput means the model's text did not parse into the
	// structure the caller asked for.
	ErrMalformedModelOutput = errors.New("malformed model output")

	// ErrService is a failure of the LLM call itself: quota, auth, timeout,
	// malformed API response or empty content.
	ErrService = errors.New("llm service error")

	// ErrConfiguration is a missing or invalid input parameter. It is raised
	// before any network call is made.
	ErrConfiguration = errors.New("configuration error")
)

// TaskError reports which pipeline stage failed and why.
type TaskError struct {
	Role string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.Role, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// FailedRole returns the role carried by the first TaskError in err's chain,
// or "" when err did not come from a pipeline task.
func FailedRole(err error) string {
	var te *TaskError
	if errors.As(err, &te) {
		return te.Role
	}
	return ""
}
