package router

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/filemanager-agent/filemanager-go/internal/models"
	"github.com/filemanager-agent/filemanager-go/pkg/llm"
)

// chatClient is the slice of llm.Client the selector needs.
type chatClient interface {
	Chat(ctx context.Context, messages []llm.Message, tools []llm.Tool) (*llm.Message, error)
}

// ModelSelector asks the external model to pick a tool via function calling.
type ModelSelector struct {
	client chatClient
	logger *logrus.Logger
}

// NewModelSelector creates a selector backed by the given model client.
func NewModelSelector(client *llm.Client, logger *logrus.Logger) *ModelSelector {
	return &ModelSelector{client: client, logger: logger}
}

// Select sends the message with the fixed tool catalog. A reply carrying a
// known tool call becomes an operation decision; a plain-text reply becomes
// a help decision carrying the model's own words. Transport failures and
// unknown tool names are returned as errors so the router can fall back.
func (s *ModelSelector) Select(ctx context.Context, message, directory string) (*Decision, error) {
	systemPrompt := fmt.Sprintf(`You are a helpful file system assistant.
The user's current directory is: %s
When a directory is not specified by the user, use this current directory.
Always use function calling to respond to file operation requests.
Be helpful and interpret user requests intelligently.`, directory)

	reply, err := s.client.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message},
	}, toolCatalog)
	if err != nil {
		return nil, err
	}

	if len(reply.ToolCalls) == 0 {
		helpText := reply.Content
		if helpText == "" {
			helpText = HelpText
		}
		return &Decision{Action: models.ActionHelp, HelpText: helpText}, nil
	}

	call := reply.ToolCalls[0].Function
	action, ok := actionMap[call.Name]
	if !ok {
		return nil, fmt.Errorf("model selected unknown tool %q", call.Name)
	}

	params := make(map[string]any, len(call.Arguments)+1)
	for k, v := range call.Arguments {
		params[k] = v
	}
	if dir, _ := params["directory"].(string); dir == "" && action != models.ActionMoveFiles {
		params["directory"] = directory
	}

	s.logger.Debugf("Model selected %s with %d argument(s)", action, len(call.Arguments))
	return &Decision{Action: action, Params: params}, nil
}
