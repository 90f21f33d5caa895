package infinitode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks client-side validation failures, these
	// never produce a network call.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAPIUnavailable marks transport-level failures (non-2xx responses).
	ErrAPIUnavailable = errors.New("api unavailable")
	// ErrAPI marks structured failures reported by the server itself.
	ErrAPI = errors.New("api error")
	// ErrMalformedResponse marks payloads whose shape did not match
	// expectations during mapping. The most common cause is an
	// unrecognized playerid, the site serves a near-empty page for those.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNotFetched is returned when a lazily-fetched score is read
	// before its fetch method has run.
	ErrNotFetched = errors.New("score has not been fetched yet")
)

type InvalidArgumentError struct {
	Field string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

type APIUnavailableError struct {
	StatusCode int
	cause      error
}

func (e *APIUnavailableError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api unavailable: %s", e.cause)
	}
	return fmt.Sprintf("api unavailable: status %d", e.StatusCode)
}

func (e *APIUnavailableError) Unwrap() error { return ErrAPIUnavailable }

type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error response from server: %s", e.Message)
}

func (e *APIError) Unwrap() error { return ErrAPI }

type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return ErrMalformedResponse }

func malformed(format string, args ...any) error {
	return &MalformedResponseError{Reason: fmt.Sprintf(format, args...)}
}
