package fileops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/attribute"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
	"github.com/filemanager-agent/filemanager-go/internal/models"
)

// CreateFolder creates directory/folderName (with parents) inside the
// sandbox. Creating an already existing directory is a success, not an
// error; a conflicting non-directory entry fails with ErrAlreadyExists.
func (e *Executor) CreateFolder(ctx context.Context, directory, folderName string) (*models.FolderInfo, error) {
	_, span := e.tracer.Start(ctx, "create_folder")
	defer span.End()
	span.SetAttributes(
		attribute.String("directory", directory),
		attribute.String("folder_name", folderName),
	)

	parent, err := e.validatedDir(directory)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// folder_name may itself contain separators or "..", so the target is
	// guarded independently of its parent.
	target, err := e.guard.Resolve(filepath.Join(parent, folderName))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if info, statErr := os.Stat(target); statErr == nil {
		if info.IsDir() {
			return &models.FolderInfo{Path: target, Created: false}, nil
		}
		return nil, fmt.Errorf("a file with that name exists: %s: %w", target, errdefs.ErrAlreadyExists)
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create folder %s: %w", target, err)
	}

	e.logger.Infof("Created folder %s", target)
	return &models.FolderInfo{Path: target, Created: true}, nil
}

// ListDirectory returns the immediate children of directory, directories
// first, each group sorted by name. Unreadable children are skipped.
func (e *Executor) ListDirectory(ctx context.Context, directory string) (*models.Listing, error) {
	_, span := e.tracer.Start(ctx, "list_directory")
	defer span.End()
	span.SetAttributes(attribute.String("directory", directory))

	root, err := e.validatedDir(directory)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	items := make([]models.DirectoryEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		info, infoErr := entry.Info()
		if infoErr != nil {
			e.logger.Debugf("Skipping unreadable entry %s: %v", entry.Name(), infoErr)
			continue
		}

		item := models.DirectoryEntry{
			Name:        entry.Name(),
			Path:        filepath.Join(root, entry.Name()),
			IsDirectory: entry.IsDir(),
			Modified:    info.ModTime(),
		}
		if entry.IsDir() {
			item.ReadableSize = "-"
		} else {
			item.Size = info.Size()
			item.ReadableSize = humanize.IBytes(uint64(info.Size()))
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].IsDirectory != items[j].IsDirectory {
			return items[i].IsDirectory
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	return &models.Listing{Directory: root, Items: items}, nil
}

// MoveFiles moves the immediate children of sourceDirectory whose names
// match the shell-glob pattern into destinationDirectory, creating the
// destination if needed. Only regular files are moved; symlinks are
// followed when deciding, and the link itself is what moves. Moves are
// best-effort: an individual failure (e.g. a name collision at the
// destination) is recorded in the report and the remaining files are still
// processed.
func (e *Executor) MoveFiles(ctx context.Context, sourceDirectory, destinationDirectory, pattern string) (*models.MoveReport, error) {
	_, span := e.tracer.Start(ctx, "move_files")
	defer span.End()
	span.SetAttributes(
		attribute.String("source", sourceDirectory),
		attribute.String("destination", destinationDirectory),
		attribute.String("pattern", pattern),
	)

	src, err := e.validatedDir(sourceDirectory)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	dst, err := e.guard.Resolve(destinationDirectory)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if info, statErr := os.Stat(dst); statErr == nil && !info.IsDir() {
		return nil, fmt.Errorf("destination is not a directory: %s: %w", dst, errdefs.ErrNotADirectory)
	}

	// Validate the pattern up front so a malformed glob is a request error,
	// not a silent no-match.
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, errdefs.NewParamError("pattern", err.Error())
	}

	dirEntries, err := os.ReadDir(src)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	report := &models.MoveReport{
		Files:                []models.MovedFile{},
		SourceDirectory:      src,
		DestinationDirectory: dst,
		Pattern:              pattern,
	}

	dstCreated := false
	for _, entry := range dirEntries {
		matched, _ := filepath.Match(pattern, entry.Name())
		if !matched {
			continue
		}

		sourcePath := filepath.Join(src, entry.Name())

		// Stat follows symlinks: a link to a regular file is movable,
		// directories and broken links are not.
		info, statErr := os.Stat(sourcePath)
		if statErr != nil || !info.Mode().IsRegular() {
			continue
		}

		if !dstCreated {
			// Created lazily so a no-match request leaves the tree untouched.
			if err := os.MkdirAll(dst, 0755); err != nil {
				span.RecordError(err)
				return nil, fmt.Errorf("failed to create destination %s: %w", dst, err)
			}
			dstCreated = true
		}

		destPath := filepath.Join(dst, entry.Name())

		if _, statErr := os.Stat(destPath); statErr == nil {
			report.Errors = append(report.Errors, models.MoveError{
				File:  entry.Name(),
				Error: "file already exists at destination",
			})
			continue
		}

		if err := os.Rename(sourcePath, destPath); err != nil {
			report.Errors = append(report.Errors, models.MoveError{
				File:  entry.Name(),
				Error: err.Error(),
			})
			continue
		}

		info, infoErr := os.Stat(destPath)
		var size int64
		if infoErr == nil {
			size = info.Size()
		}
		report.Files = append(report.Files, models.MovedFile{
			Name:         entry.Name(),
			Source:       sourcePath,
			Destination:  destPath,
			Size:         size,
			ReadableSize: humanize.IBytes(uint64(size)),
		})
	}

	report.MovedCount = len(report.Files)
	report.ErrorCount = len(report.Errors)

	e.logger.Infof("Moved %d file(s) matching %q from %s to %s (%d errors)",
		report.MovedCount, pattern, src, dst, report.ErrorCount)
	return report, nil
}
