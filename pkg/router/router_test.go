package router

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filemanager-agent/filemanager-go/internal/models"
	"github.com/filemanager-agent/filemanager-go/pkg/llm"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestKeywordSelector(t *testing.T) {
	s := &KeywordSelector{}
	base := "/home/user"

	tests := []struct {
		name    string
		message string
		action  string
		params  map[string]any
	}{
		{
			name:    "find by extension",
			message: "Find all .py files",
			action:  models.ActionFindByExtension,
			params:  map[string]any{"directory": base, "extension": ".py", "limit": 50},
		},
		{
			name:    "largest files",
			message: "show me the biggest files in here",
			action:  models.ActionLargestFiles,
			params:  map[string]any{"directory": base, "limit": 10},
		},
		{
			name:    "create folder",
			message: "create a folder my_project",
			action:  models.ActionCreateFolder,
			params:  map[string]any{"directory": base, "folder_name": "my_project"},
		},
		{
			name:    "list directory",
			message: "show me what's in that directory",
			action:  models.ActionListDirectory,
			params:  map[string]any{"directory": base},
		},
		{
			name:    "move files",
			message: "move Screenshot*.png to archive",
			action:  models.ActionMoveFiles,
			params: map[string]any{
				"source_directory":      base,
				"destination_directory": filepath.Join(base, "archive"),
				"pattern":               "Screenshot*.png",
			},
		},
		{
			name:    "move with absolute destination",
			message: "move *.log to /home/user/logs please",
			action:  models.ActionMoveFiles,
			params: map[string]any{
				"source_directory":      base,
				"destination_directory": "/home/user/logs",
				"pattern":               "*.log",
			},
		},
		{
			name:    "unrecognized message",
			message: "what is the weather today",
			action:  models.ActionHelp,
		},
		{
			name:    "move without destination falls through to help",
			message: "move some stuff around",
			action:  models.ActionHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := s.Select(context.Background(), tt.message, base)
			require.NoError(t, err)
			assert.Equal(t, tt.action, decision.Action)
			if tt.params != nil {
				assert.Equal(t, tt.params, decision.Params)
			}
			if tt.action == models.ActionHelp {
				assert.NotEmpty(t, decision.HelpText)
			}
		})
	}
}

// stubSelector returns a fixed decision or error.
type stubSelector struct {
	decision *Decision
	err      error
}

func (s *stubSelector) Select(context.Context, string, string) (*Decision, error) {
	return s.decision, s.err
}

func TestRoute(t *testing.T) {
	base := "/home/user"

	t.Run("model decision wins", func(t *testing.T) {
		model := &stubSelector{decision: &Decision{
			Action: models.ActionListDirectory,
			Params: map[string]any{"directory": base},
		}}
		r := NewWithSelectors(model, &KeywordSelector{}, base, testLogger())

		decision := r.Route(context.Background(), "anything", nil)
		assert.Equal(t, models.ActionListDirectory, decision.Action)
	})

	t.Run("model error falls back to keywords", func(t *testing.T) {
		model := &stubSelector{err: errors.New("connection refused")}
		r := NewWithSelectors(model, &KeywordSelector{}, base, testLogger())

		decision := r.Route(context.Background(), "Find all .go files", nil)
		assert.Equal(t, models.ActionFindByExtension, decision.Action)
		assert.Equal(t, ".go", decision.Params["extension"])
	})

	t.Run("no model uses keywords directly", func(t *testing.T) {
		r := NewWithSelectors(nil, &KeywordSelector{}, base, testLogger())

		decision := r.Route(context.Background(), "list the files", nil)
		assert.Equal(t, models.ActionListDirectory, decision.Action)
	})

	t.Run("request context overrides the working directory", func(t *testing.T) {
		r := NewWithSelectors(nil, &KeywordSelector{}, base, testLogger())

		decision := r.Route(context.Background(), "list the files",
			map[string]any{"directory": "/home/user/docs"})
		assert.Equal(t, "/home/user/docs", decision.Params["directory"])
	})
}

// stubChat replays a canned model reply.
type stubChat struct {
	reply *llm.Message
	err   error
}

func (s *stubChat) Chat(context.Context, []llm.Message, []llm.Tool) (*llm.Message, error) {
	return s.reply, s.err
}

func TestModelSelector(t *testing.T) {
	base := "/home/user"

	t.Run("tool call becomes a decision", func(t *testing.T) {
		sel := &ModelSelector{logger: testLogger(), client: &stubChat{reply: &llm.Message{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{Function: llm.ToolCallFunction{
				Name:      "find_files_by_extension",
				Arguments: map[string]any{"extension": ".py"},
			}}},
		}}}

		decision, err := sel.Select(context.Background(), "find python files", base)
		require.NoError(t, err)
		assert.Equal(t, models.ActionFindByExtension, decision.Action)
		assert.Equal(t, ".py", decision.Params["extension"])
		// Missing directory argument defaults to the working directory.
		assert.Equal(t, base, decision.Params["directory"])
	})

	t.Run("plain text reply becomes help", func(t *testing.T) {
		sel := &ModelSelector{logger: testLogger(), client: &stubChat{reply: &llm.Message{
			Role: "assistant", Content: "I can help you manage files.",
		}}}

		decision, err := sel.Select(context.Background(), "hello", base)
		require.NoError(t, err)
		assert.Equal(t, models.ActionHelp, decision.Action)
		assert.Equal(t, "I can help you manage files.", decision.HelpText)
	})

	t.Run("unknown tool is an error", func(t *testing.T) {
		sel := &ModelSelector{logger: testLogger(), client: &stubChat{reply: &llm.Message{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{Function: llm.ToolCallFunction{
				Name: "format_disk",
			}}},
		}}}

		_, err := sel.Select(context.Background(), "format everything", base)
		require.Error(t, err)
	})

	t.Run("transport error propagates", func(t *testing.T) {
		sel := &ModelSelector{logger: testLogger(), client: &stubChat{err: errors.New("no route to host")}}

		_, err := sel.Select(context.Background(), "find files", base)
		require.Error(t, err)
	})
}
