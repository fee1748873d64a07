package openrouter_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/thinkfirst.net/internal/adapter/logging"
	"gitlab.com/thinkfirst.net/internal/adapter/openrouter"
	"gitlab.com/thinkfirst.net/internal/config"
	"gitlab.com/thinkfirst.net/internal/domain"
)

func newClient(url string, key string) *openrouter.Client {
	return openrouter.NewClient(&config.MentorConfig{
		BaseURL:     url,
		ApiKey:      key,
		Model:       "deepseek/deepseek-chat",
		Temperature: 0.2,
		MaxTokens:   120,
	}, logging.NewNopLogger())
}

func TestStreamChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "deepseek/deepseek-chat", body["model"])
		assert.Equal(t, true, body["stream"])
		assert.Equal(t, 0.2, body["temperature"])
		assert.Equal(t, float64(120), body["max_tokens"])

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": OPENROUTER PROCESSING\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"Good "}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"plan."}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{},"finish_reason":"stop"}]}`+"\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	var deltas []string
	full, err := newClient(server.URL, "sk-test").StreamChat(context.Background(),
		[]domain.ChatMessage{{Role: "user", Content: "hi"}},
		func(s string) error {
			deltas = append(deltas, s)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, "Good plan.", full)
	assert.Equal(t, []string{"Good ", "plan."}, deltas)
}

func TestStreamChatStopsWhenCallbackFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"a"}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"b"}}]}`+"\n\n")
	}))
	defer server.Close()

	gone := errors.New("client gone")
	full, err := newClient(server.URL, "k").StreamChat(context.Background(), nil, func(string) error { return gone })

	assert.ErrorIs(t, err, gone)
	assert.Equal(t, "a", full)
}

func TestStreamChatErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"No auth credentials found","code":401}}`)
	}))
	defer server.Close()

	_, err := newClient(server.URL, "k").StreamChat(context.Background(), nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "No auth credentials found")
}

func TestStreamChatWithoutKey(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1", "").StreamChat(context.Background(), nil, nil)
	assert.ErrorIs(t, err, openrouter.ErrNotConfigured)
}
