package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicfund-go/internal/model"
)

func TestGenerateSuccess(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5-20251001",
			"content": [
				{"type": "text", "text": "Había una vez un barrio."},
				{"type": "text", "text": "Y todos aportaron."}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 30}
		}`))
	}))
	defer srv.Close()

	gen := NewGenerator("test-key", srv.URL)
	res, err := gen.Generate(context.Background(), model.StoryRequest{
		Model: "claude-haiku-4-5-20251001", Prompt: "Cuéntame algo", MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", res.Model)
	assert.Equal(t, "Había una vez un barrio.\n\nY todos aportaron.", res.Text)

	assert.Equal(t, "claude-haiku-4-5-20251001", got["model"])
	assert.EqualValues(t, 256, got["max_tokens"])
	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
}

func TestGenerateAPIErrorKeepsStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"Number of requests has exceeded your rate limit"}}`))
	}))
	defer srv.Close()

	gen := NewGenerator("test-key", srv.URL)
	_, err := gen.Generate(context.Background(), model.StoryRequest{Model: "m", Prompt: "p", MaxTokens: 10})

	var upErr *model.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusTooManyRequests, upErr.Status)
	assert.Equal(t, "rate_limit_error: Number of requests has exceeded your rate limit", upErr.Message)
	assert.Equal(t, 1, calls, "retries must be disabled")
}

func TestGenerateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gen := NewGenerator("test-key", url)
	_, err := gen.Generate(context.Background(), model.StoryRequest{Model: "m", Prompt: "p", MaxTokens: 10})
	require.Error(t, err)

	var upErr *model.UpstreamError
	assert.NotErrorAs(t, err, &upErr)
}

func TestJoinTextSkipsNonText(t *testing.T) {
	msg := &sdk.Message{Content: []sdk.ContentBlockUnion{
		{Type: "thinking"},
		{Type: "text", Text: "uno"},
		{Type: "text", Text: ""},
		{Type: "text", Text: "dos"},
	}}
	assert.Equal(t, "uno\n\ndos", joinText(msg))
}
