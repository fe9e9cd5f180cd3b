package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports input rejected before any network call was issued.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RequestError reports a failed backend call: a transport failure, a non-2xx
// status, or a malformed response body. Message is a fixed per-operation
// string suitable for direct display.
type RequestError struct {
	Op      string
	Message string
	Status  int // HTTP status; 0 for transport failures
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a backend 404 for a missing resource.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}

func (c *StoryClient) requestError(op, message string, status int, cause error) *RequestError {
	err := &RequestError{Op: op, Message: message, Status: status, Err: cause}
	c.log.Error().
		Str("op", op).
		Int("status", status).
		Err(cause).
		Msg(message)
	return err
}

func wrapStatus(status int) error {
	return fmt.Errorf("backend returned status %d", status)
}
