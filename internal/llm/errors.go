package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidModel is returned before any network call when the model
	// is not a known Jurassic-1 tier.
	ErrInvalidModel = errors.New("model must be jumbo, grande or large")

	// ErrRequestFailed matches any *RequestFailedError.
	ErrRequestFailed = errors.New("completion request failed")

	// ErrMalformedResponse is returned when a 200 response lacks
	// completions[0].data.text.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrTransport matches any *TransportError.
	ErrTransport = errors.New("completion transport error")
)

// RequestFailedError reports a non-200 status from the completion API.
type RequestFailedError struct {
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("completion request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

// TransportError wraps a network-level failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot connect to completion API: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
