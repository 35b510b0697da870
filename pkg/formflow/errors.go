package formflow

import (
	"errors"
	"fmt"
)

var (
	// ErrFlowComplete is returned when a completed cursor is asked for its step.
	ErrFlowComplete = errors.New("form flow is complete")

	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrAlreadySubmitted   = errors.New("application already submitted")
)

// ValidationError is a local input problem. The flow does not advance.
type ValidationError struct {
	StepID   string
	FieldKey string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s: %s", e.StepID, e.Message)
}

// NavigationError means the catalog routed somewhere it cannot go. It is a
// configuration defect, never a user error.
type NavigationError struct {
	Variant string
	From    string
	Target  string
	Reason  string
}

func (e *NavigationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("catalog %s: step %s -> %s: %s", e.Variant, e.From, e.Target, e.Reason)
	}
	return fmt.Sprintf("catalog %s: step %s: %s", e.Variant, e.From, e.Reason)
}

// SubmissionError wraps a failed delivery to the submit collaborator.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return "submission rejected"
	}
	return "submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNavigation(err error) bool {
	var n *NavigationError
	return errors.As(err, &n)
}
