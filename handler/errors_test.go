package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		status  int
		message string
	}{
		{
			name:    "invalid request hides cause",
			err:     invalidRequest(errors.New("unexpected end of JSON input")),
			status:  http.StatusBadRequest,
			message: "Invalid request. 'text' field is required.",
		},
		{
			name:    "service failure embeds cause",
			err:     serviceFailure(errors.New("timeout")),
			status:  http.StatusInternalServerError,
			message: "An error occurred: timeout",
		},
		{
			name:    "service failure without cause",
			err:     &Error{Kind: ServiceFailure},
			status:  http.StatusInternalServerError,
			message: "An error occurred: unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
			assert.Equal(t, tt.message, tt.err.Message())
		})
	}
}

func TestAsError(t *testing.T) {
	cause := errors.New("connection reset")

	wrapped := fmt.Errorf("calling completer: %w", invalidRequest(cause))
	e := asError(wrapped)
	assert.Equal(t, InvalidRequest, e.Kind)
	assert.ErrorIs(t, e, cause)

	plain := asError(cause)
	require.NotNil(t, plain)
	assert.Equal(t, ServiceFailure, plain.Kind)
	assert.Equal(t, "connection reset", plain.Error())
}
