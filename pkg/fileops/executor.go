package fileops

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
	"github.com/filemanager-agent/filemanager-go/internal/models"
	"github.com/filemanager-agent/filemanager-go/pkg/config"
	"github.com/filemanager-agent/filemanager-go/pkg/sandbox"
)

// Default and maximum result limits. Limits from the request are clamped to
// the configured maximum.
const (
	defaultFindLimit    = 50
	defaultLargestLimit = 10
)

// Executor runs the file operations. All directory parameters pass through
// the sandbox guard before any file-system call.
type Executor struct {
	config       *config.Config
	logger       *logrus.Logger
	guard        *sandbox.Guard
	startTime    time.Time
	lastExecTime time.Time
	mu           sync.RWMutex
	tracer       trace.Tracer
}

// New creates an executor sandboxed at cfg.Server.BasePath.
func New(cfg *config.Config, logger *logrus.Logger) (*Executor, error) {
	guard, err := sandbox.New(cfg.Server.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox guard: %w", err)
	}

	return &Executor{
		config:       cfg,
		logger:       logger,
		guard:        guard,
		startTime:    time.Now(),
		lastExecTime: time.Now(),
		tracer:       otel.Tracer("filemanager-agent"),
	}, nil
}

// Guard exposes the sandbox guard, mainly for the router's defaults.
func (e *Executor) Guard() *sandbox.Guard {
	return e.guard
}

// Execute dispatches an operation request to the matching file operation and
// shapes the outcome into the uniform result envelope. A non-nil error is
// returned only for request-shape problems (unknown action, missing or
// malformed params); failures of a well-formed request are reported inside
// the result with Success=false.
func (e *Executor) Execute(ctx context.Context, action string, params map[string]any) (models.OperationResult, error) {
	ctx, span := e.tracer.Start(ctx, "execute_operation")
	defer span.End()
	span.SetAttributes(attribute.String("operation.action", action))

	e.mu.Lock()
	e.lastExecTime = time.Now()
	e.mu.Unlock()

	op, err := models.ParseOperation(action, params)
	if err != nil {
		span.RecordError(err)
		return models.OperationResult{}, err
	}

	switch p := op.(type) {
	case models.FindByExtensionParams:
		limit := e.clampLimit(int(p.Limit), defaultFindLimit)
		entries, err := e.FindByExtension(ctx, p.Directory, p.Extension, limit)
		if err != nil {
			return e.failure(span, err), nil
		}
		return models.OperationResult{
			Success: true,
			Data:    entries,
			Message: fmt.Sprintf("Found %d files", len(entries)),
		}, nil

	case models.LargestFilesParams:
		limit := e.clampLimit(int(p.Limit), defaultLargestLimit)
		entries, err := e.LargestFiles(ctx, p.Directory, limit)
		if err != nil {
			return e.failure(span, err), nil
		}
		return models.OperationResult{
			Success: true,
			Data:    entries,
			Message: fmt.Sprintf("Found %d largest files", len(entries)),
		}, nil

	case models.CreateFolderParams:
		info, err := e.CreateFolder(ctx, p.Directory, p.FolderName)
		if err != nil {
			return e.failure(span, err), nil
		}
		msg := "Folder created successfully"
		if !info.Created {
			msg = fmt.Sprintf("Folder already exists: %s", info.Path)
		}
		return models.OperationResult{Success: true, Data: info, Message: msg}, nil

	case models.ListDirectoryParams:
		listing, err := e.ListDirectory(ctx, p.Directory)
		if err != nil {
			return e.failure(span, err), nil
		}
		return models.OperationResult{
			Success: true,
			Data:    listing,
			Message: fmt.Sprintf("Listed %d items", len(listing.Items)),
		}, nil

	case models.MoveFilesParams:
		report, err := e.MoveFiles(ctx, p.SourceDirectory, p.DestinationDirectory, p.Pattern)
		if err != nil {
			return e.failure(span, err), nil
		}
		msg := fmt.Sprintf("Moved %d file(s) from %s to %s",
			report.MovedCount, report.SourceDirectory, report.DestinationDirectory)
		if report.MovedCount == 0 && report.ErrorCount == 0 {
			msg = fmt.Sprintf("No files found matching pattern: %s", report.Pattern)
		}
		return models.OperationResult{Success: true, Data: report, Message: msg}, nil

	default:
		return models.OperationResult{}, fmt.Errorf("%w: unknown action: %s", errdefs.ErrInvalidArgument, action)
	}
}

// failure converts an operation error into a failed result with a
// plain-language message.
func (e *Executor) failure(span trace.Span, err error) models.OperationResult {
	span.RecordError(err)
	e.logger.Warnf("Operation failed: %v", err)
	return models.NewErrorResult(userMessage(err))
}

// userMessage normalizes operation errors for display.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errdefs.ErrPathEscape):
		return "The requested path is outside the allowed base directory"
	default:
		return err.Error()
	}
}

func (e *Executor) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if max := e.config.Server.MaxResults; max > 0 && limit > max {
		limit = max
	}
	return limit
}
