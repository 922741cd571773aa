package llm

import (
	"errors"
	"fmt"
)

// StatusError is returned when the endpoint answers with a non-200 status.
// Its message is the sentinel text stored in place of a completion.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error: %d - %s", e.StatusCode, e.Body)
}

// DecodeError is returned when a 200 response is valid JSON but lacks a
// required field.
type DecodeError struct {
	Field string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Error decoding AI API response: missing %s", e.Field)
}

// Sentinel renders err as the text recorded in place of a completion.
func Sentinel(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.Error()
	}
	return "Error calling AI API: " + err.Error()
}
