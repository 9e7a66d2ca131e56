package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
	"github.com/filemanager-agent/filemanager-go/pkg/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(host string) *Client {
	return New(config.LLMConfig{
		Host:           host,
		Model:          "test-model",
		TimeoutSeconds: 5,
	}, testLogger())
}

func TestChat_ToolCall(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		reply := chatResponse{
			Model: "test-model",
			Message: Message{
				Role: "assistant",
				ToolCalls: []ToolCall{{Function: ToolCallFunction{
					Name:      "get_largest_files",
					Arguments: map[string]any{"limit": float64(5)},
				}}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(reply))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	tools := []Tool{{Type: "function", Function: ToolFunction{Name: "get_largest_files"}}}

	reply, err := client.Chat(context.Background(), []Message{
		{Role: "user", Content: "biggest files?"},
	}, tools)
	require.NoError(t, err)

	require.Len(t, reply.ToolCalls, 1)
	assert.Equal(t, "get_largest_files", reply.ToolCalls[0].Function.Name)
	assert.Equal(t, float64(5), reply.ToolCalls[0].Function.Arguments["limit"])

	// The request carries the model, the conversation, and the catalog, and
	// disables streaming.
	assert.Equal(t, "test-model", gotReq.Model)
	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 1)
	assert.Len(t, gotReq.Tools, 1)
}

func TestChat_PlainReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(chatResponse{
			Message: Message{Role: "assistant", Content: "hello"},
		}))
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL).Chat(context.Background(), []Message{
		{Role: "user", Content: "hi"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", reply.Content)
	assert.Empty(t, reply.ToolCalls)
}

func TestChat_UpstreamErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Chat(context.Background(), nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errdefs.ErrUpstreamUnavailable)
	})

	t.Run("error field in body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(chatResponse{Error: "model not found"}))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Chat(context.Background(), nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errdefs.ErrUpstreamUnavailable)
		assert.Contains(t, err.Error(), "model not found")
	})

	t.Run("malformed response JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Chat(context.Background(), nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errdefs.ErrUpstreamUnavailable)
	})

	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		_, err := newTestClient(srv.URL).Chat(context.Background(), nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errdefs.ErrUpstreamUnavailable)
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestClient(srv.URL).Chat(ctx, nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errdefs.ErrUpstreamUnavailable)
	})
}
