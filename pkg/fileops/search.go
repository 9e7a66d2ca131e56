package fileops

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
	"github.com/filemanager-agent/filemanager-go/internal/models"
)

// FindByExtension recursively walks directory and returns up to limit
// regular files whose name ends in extension. Matching is case-insensitive;
// a missing leading dot is tolerated ("py" and ".py" are equivalent).
// Results are ordered by modification time, newest first. Unreadable entries
// are skipped, not fatal.
func (e *Executor) FindByExtension(ctx context.Context, directory, extension string, limit int) ([]models.FileEntry, error) {
	_, span := e.tracer.Start(ctx, "find_by_extension")
	defer span.End()
	span.SetAttributes(
		attribute.String("directory", directory),
		attribute.String("extension", extension),
		attribute.Int("limit", limit),
	)

	root, err := e.validatedDir(directory)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	suffix := strings.ToLower(extension)
	if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}

	entries := make([]models.FileEntry, 0, limit)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			e.logger.Debugf("Skipping unreadable entry %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		entries = append(entries, models.NewFileEntry(path, d.Name(), info.Size(), info.ModTime()))
		if len(entries) >= limit {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Modified.After(entries[j].Modified)
	})

	e.logger.Infof("Found %d %s files under %s", len(entries), suffix, root)
	return entries, nil
}

// LargestFiles recursively walks directory and returns the limit largest
// regular files, sorted by size descending with ties broken by path.
func (e *Executor) LargestFiles(ctx context.Context, directory string, limit int) ([]models.FileEntry, error) {
	_, span := e.tracer.Start(ctx, "largest_files")
	defer span.End()
	span.SetAttributes(
		attribute.String("directory", directory),
		attribute.Int("limit", limit),
	)

	root, err := e.validatedDir(directory)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var entries []models.FileEntry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			e.logger.Debugf("Skipping unreadable entry %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		entries = append(entries, models.NewFileEntry(path, d.Name(), info.Size(), info.ModTime()))
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Size != entries[j].Size {
			return entries[i].Size > entries[j].Size
		}
		return entries[i].Path < entries[j].Path
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// validatedDir resolves directory through the sandbox guard and verifies it
// exists and is a directory.
func (e *Executor) validatedDir(directory string) (string, error) {
	resolved, err := e.guard.Resolve(directory)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("directory does not exist: %s: %w", resolved, errdefs.ErrNotFound)
		}
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s: %w", resolved, errdefs.ErrNotADirectory)
	}
	return resolved, nil
}
