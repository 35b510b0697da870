package service

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound       = errors.New("form session not found")
	ErrSessionHalted         = errors.New("form session halted after an internal error")
	ErrSessionClosed         = errors.New("form session already submitted")
	ErrModeMismatch          = errors.New("form session belongs to another adapter")
	ErrUnknownVariant        = errors.New("unknown form variant")
	ErrNotAwaitingSubmission = errors.New("form session is not awaiting submission")
	ErrStillTyping           = errors.New("previous message still in progress")
	ErrLeadNotFound          = errors.New("lead not found")
)

// MissingFieldError rejects a lead without one of the contact fields.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}
