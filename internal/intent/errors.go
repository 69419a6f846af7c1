package intent

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDraft       = errors.New("model returned an empty draft")
	ErrUnknownKind      = errors.New("unknown action kind")
	ErrUnsupportedDraft = errors.New("cannot draft this change without a language model; start chat without --offline")
)

// DecodeError is returned when a model reply is not the JSON requested.
type DecodeError struct {
	Raw   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode model reply %q: %v", e.Raw, e.Cause)
}
func (e *DecodeError) Unwrap() error { return e.Cause }
