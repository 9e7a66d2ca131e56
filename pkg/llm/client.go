// Package llm provides a minimal client for the Ollama chat API with
// function calling. The server exchanges a single non-streaming request per
// user message; everything else about the conversation lives client-side.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
	"github.com/filemanager-agent/filemanager-go/pkg/config"
)

// Message is one chat turn. Assistant replies may carry tool calls instead
// of (or alongside) content.
type Message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction carries the selected tool name and extracted arguments.
type ToolCallFunction struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Tool is one entry of the tool catalog sent with each request.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction describes a callable tool to the model.
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  ToolParameters `json:"parameters"`
}

// ToolParameters is the JSON-schema object describing tool arguments.
type ToolParameters struct {
	Type       string                  `json:"type"`
	Properties map[string]ToolProperty `json:"properties"`
	Required   []string                `json:"required"`
}

// ToolProperty describes one tool argument.
type ToolProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Tools    []Tool    `json:"tools,omitempty"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Error   string  `json:"error,omitempty"`
}

// Client talks to a single Ollama endpoint with a bounded per-call timeout.
type Client struct {
	host       string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *logrus.Logger
}

// New creates a client from the model configuration.
func New(cfg config.LLMConfig, logger *logrus.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		host:       cfg.Host,
		model:      cfg.Model,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Chat sends the messages and tool catalog to the model and returns its
// reply. Every transport or protocol failure wraps
// errdefs.ErrUpstreamUnavailable so callers can treat the whole class
// uniformly.
func (c *Client) Chat(ctx context.Context, messages []Message, tools []Tool) (*Message, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
		Stream:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrUpstreamUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warnf("Failed to close response body: %v", closeErr)
		}
	}()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", errdefs.ErrUpstreamUnavailable, err)
	}

	c.logger.Debugf("Model response: status=%d size=%d time=%v",
		resp.StatusCode, len(respBytes), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errdefs.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: invalid response JSON: %v", errdefs.ErrUpstreamUnavailable, err)
	}
	if chatResp.Error != "" {
		return nil, fmt.Errorf("%w: %s", errdefs.ErrUpstreamUnavailable, chatResp.Error)
	}

	return &chatResp.Message, nil
}
