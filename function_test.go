package processtext

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"process-text-function/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionEndToEnd(t *testing.T) {
	var got models.ChatRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Hi there!"}}]}`))
	}))
	defer upstream.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROCESS_TEXT_COMPLETION_BASE_URL", upstream.URL)
	t.Setenv("PROCESS_TEXT_LOG_LEVEL", "error")

	fn, err := newFunction(context.Background(), "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text": "Hello"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"reply": "Hi there!"}`, rec.Body.String())
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, []models.ChatMessage{{Role: "user", Content: "Hello"}}, got.Messages)
}

func TestFunctionUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer upstream.Close()

	t.Setenv("OPENAI_API_KEY", "sk-wrong")
	t.Setenv("PROCESS_TEXT_COMPLETION_BASE_URL", upstream.URL)
	t.Setenv("PROCESS_TEXT_LOG_LEVEL", "error")

	fn, err := newFunction(context.Background(), "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text": "x"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t,
		`{"error": "An error occurred: completion service returned 401 Unauthorized: Incorrect API key provided"}`,
		rec.Body.String())
}

func TestNewFunctionRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PROCESS_TEXT_COMPLETION_API_KEY", "")

	_, err := newFunction(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion.api_key is required")
}
