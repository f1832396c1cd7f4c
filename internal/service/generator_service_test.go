package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/apperror"
)

func anthropicServer(t *testing.T, status int, body string, seen *anthropicRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testAnthropicConfig(baseURL string) config.Anthropic {
	return config.Anthropic{
		APIKey:  "test-key",
		Model:   "claude-3-sonnet-20240229",
		BaseURL: baseURL + "/",
	}
}

func TestAnthropicGenerate(t *testing.T) {
	var seen anthropicRequest
	srv := anthropicServer(t, http.StatusOK, `{"content":[{"type":"tool_use"},{"type":"text","text":"hello"}]}`, &seen)
	gen := NewAnthropicGenerator(testAnthropicConfig(srv.URL))

	text, err := gen.Generate(context.Background(), GenerateRequest{System: "sys", Prompt: "hi", MaxTokens: 50, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	assert.Equal(t, "claude-3-sonnet-20240229", seen.Model)
	assert.Equal(t, 50, seen.MaxTokens)
	assert.Equal(t, "sys", seen.System)
	assert.Equal(t, 0.7, seen.Temperature)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, anthropicMessage{Role: "user", Content: "hi"}, seen.Messages[0])
}

func TestAnthropicGenerateFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "non-200", status: http.StatusTooManyRequests, body: `{"error":{"type":"rate_limit_error","message":"slow down"}}`},
		{name: "no text block", status: http.StatusOK, body: `{"content":[]}`},
		{name: "api error", status: http.StatusOK, body: `{"error":{"type":"overloaded_error","message":"busy"}}`},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := anthropicServer(t, tt.status, tt.body, nil)
			_, err := NewAnthropicGenerator(testAnthropicConfig(srv.URL)).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
			require.Error(t, err)
			assert.Equal(t, apperror.Internal, apperror.KindOf(err))
		})
	}
}

func TestAnthropicGenerateMissingKey(t *testing.T) {
	gen := NewAnthropicGenerator(config.Anthropic{BaseURL: "http://127.0.0.1:1"})
	_, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	assert.Equal(t, apperror.FailedPrecondition, apperror.KindOf(err))
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
