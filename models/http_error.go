package models

import "net/http"

// HTTPError is the uniform error value used to short-circuit request
// handling. It carries a human-readable message and the HTTP status code
// the response must be written with.
//
// Collaborators that own their failure semantics (the geocoder in
// particular) return *HTTPError directly so that handlers can pass their
// status through unchanged instead of remapping it.
type HTTPError struct {
	// Msg is the human-readable message rendered in the response body.
	Msg string `json:"msg"`

	// Code is the HTTP status code of the failure. Zero means unset, in
	// which case responders fall back to 500.
	Code int `json:"-"`

	// Err is the underlying cause, kept for logs and [errors.Is] matching.
	// Never rendered to clients.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return e.Msg
}

// Unwrap exposes the underlying cause to the errors package.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by the error, or
// http.StatusInternalServerError if none was set.
func (e *HTTPError) StatusCode() int {
	if e.Code == 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// NewHTTPError constructs an *HTTPError with the given message and status.
func NewHTTPError(msg string, code int) *HTTPError {
	return &HTTPError{Msg: msg, Code: code}
}

// WrapHTTPError constructs an *HTTPError that keeps err as its cause.
func WrapHTTPError(err error, msg string, code int) *HTTPError {
	return &HTTPError{Msg: msg, Code: code, Err: err}
}
