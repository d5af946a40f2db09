package scenario

import (
	"fmt"

	"github.com/logbook/api-contract-tests/client"
)

// ExpectationError means the service answered, but not as the scenario requires: the status code
// was wrong, or a required field was missing or had the wrong value.
type ExpectationError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     client.Body
	// Message describes a field-level failure. It is empty for a status mismatch.
	Message string
}

func (e *ExpectationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s expected %d, got %d: %s", e.Method, e.Path, e.Expected, e.Actual, e.Body)
}

func statusMismatch(method, path string, expected int, resp client.Response) *ExpectationError {
	return &ExpectationError{
		Method:   method,
		Path:     path,
		Expected: expected,
		Actual:   resp.Status,
		Body:     resp.Body,
	}
}

func unexpected(format string, args ...interface{}) *ExpectationError {
	return &ExpectationError{Message: fmt.Sprintf(format, args...)}
}

// invalidResponse reports a field-level failure and includes the response body, for responses
// that carry no credentials.
func invalidResponse(body client.Body, format string, args ...interface{}) *ExpectationError {
	return &ExpectationError{
		Body:    body,
		Message: fmt.Sprintf(format, args...) + ": " + body.String(),
	}
}
