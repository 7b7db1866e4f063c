package api

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the backend reports an absent record id.
var ErrNotFound = errors.New("record not found")

// NetworkError indicates a transport failure: the request never produced a
// response.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError indicates the backend responded with a failure status on a read.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

// DecodeError indicates the response body was not well-formed.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError indicates the backend rejected the body of a create or
// update request.
type ValidationError struct {
	Status int
	URL    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("backend rejected request to %s with status %d", e.URL, e.Status)
}
