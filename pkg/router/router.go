// Package router turns free-text user messages into operation requests. Two
// strategies are composed: a model-assisted selector using function calling,
// and a deterministic keyword fallback used whenever the model is disabled,
// unreachable, or returns something unusable.
package router

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/filemanager-agent/filemanager-go/internal/models"
	"github.com/filemanager-agent/filemanager-go/pkg/config"
	"github.com/filemanager-agent/filemanager-go/pkg/llm"
)

// Decision is the outcome of routing one message. Action is either one of
// the executable actions or models.ActionHelp, in which case HelpText
// carries the text to display and Params is empty.
type Decision struct {
	Action   string
	Params   map[string]any
	HelpText string
}

// ActionInfo converts the decision into the chat response envelope shape.
func (d *Decision) ActionInfo() *models.ActionInfo {
	return &models.ActionInfo{Action: d.Action, Params: d.Params}
}

// Selector maps a message plus a working directory onto a Decision.
type Selector interface {
	Select(ctx context.Context, message, directory string) (*Decision, error)
}

// Router composes the model selector with the keyword fallback.
type Router struct {
	model    Selector
	fallback Selector
	basePath string
	logger   *logrus.Logger
}

// New builds a router from the configuration. The model selector is only
// attached when the model integration is enabled.
func New(cfg *config.Config, logger *logrus.Logger) *Router {
	r := &Router{
		fallback: &KeywordSelector{},
		basePath: cfg.Server.BasePath,
		logger:   logger,
	}
	if cfg.LLM.Enabled {
		r.model = NewModelSelector(llm.New(cfg.LLM, logger), logger)
	}
	return r
}

// NewWithSelectors builds a router with explicit strategies. Used by tests
// to substitute a stub for the live model.
func NewWithSelectors(model, fallback Selector, basePath string, logger *logrus.Logger) *Router {
	return &Router{model: model, fallback: fallback, basePath: basePath, logger: logger}
}

// Route produces a decision for the message. The working directory comes
// from the request context when present, otherwise the sandbox base. Model
// failures of any kind degrade to the keyword fallback; Route itself never
// fails.
func (r *Router) Route(ctx context.Context, message string, reqContext map[string]any) *Decision {
	directory := r.basePath
	if v, ok := reqContext["directory"].(string); ok && v != "" {
		directory = v
	}

	if r.model != nil {
		decision, err := r.model.Select(ctx, message, directory)
		if err == nil {
			return decision
		}
		r.logger.Warnf("Model selection failed, using keyword fallback: %v", err)
	}

	decision, err := r.fallback.Select(ctx, message, directory)
	if err != nil {
		// The keyword selector has no failure modes today; degrade to help
		// if that ever changes.
		r.logger.Errorf("Keyword fallback failed: %v", err)
		return &Decision{Action: models.ActionHelp, HelpText: HelpText}
	}
	return decision
}
