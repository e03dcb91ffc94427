package handler

import (
	"errors"
	"net/http"
)

// Kind tells a client mistake apart from a failure on our side.
type Kind int

const (
	InvalidRequest Kind = iota + 1
	ServiceFailure
)

const invalidRequestMessage = "Invalid request. 'text' field is required."

// Error is the single failure type of an invocation.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	if e.Kind == InvalidRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message is the text placed in the response's "error" field.
func (e *Error) Message() string {
	if e.Kind == InvalidRequest {
		return invalidRequestMessage
	}
	if e.Err == nil {
		return "An error occurred: unknown error"
	}
	return "An error occurred: " + e.Err.Error()
}

func invalidRequest(err error) *Error {
	return &Error{Kind: InvalidRequest, Err: err}
}

func serviceFailure(err error) *Error {
	return &Error{Kind: ServiceFailure, Err: err}
}

// asError classifies err, treating anything untyped as a service failure.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return serviceFailure(err)
}
