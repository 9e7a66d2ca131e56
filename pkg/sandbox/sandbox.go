// Package sandbox confines every file operation to a configured base
// directory. Requested paths are canonicalized (cleaned, made absolute,
// symlinks resolved) before they are compared against the base, so neither
// ".." segments nor symlinks can reach outside the sandbox root.
package sandbox

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
)

// Guard validates paths against a canonical base directory.
type Guard struct {
	base string
}

// New creates a Guard rooted at base. The base directory must exist.
func New(base string) (*Guard, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, &errdefs.PathError{Op: "resolve base", Path: base, Err: err}
	}
	return &Guard{base: canonical}, nil
}

// Base returns the canonical sandbox root.
func (g *Guard) Base() string {
	return g.base
}

// Resolve canonicalizes requested and verifies it is the base directory or a
// descendant of it. An empty requested path resolves to the base itself. On
// success the canonical absolute path is returned; otherwise the error wraps
// errdefs.ErrPathEscape.
func (g *Guard) Resolve(requested string) (string, error) {
	if requested == "" {
		return g.base, nil
	}

	cleaned := filepath.Clean(requested)
	if !filepath.IsAbs(cleaned) {
		cleaned = filepath.Join(g.base, cleaned)
	}

	resolved, err := canonicalize(cleaned)
	if err != nil {
		return "", &errdefs.PathError{Op: "resolve", Path: requested, Err: err}
	}

	rel, err := filepath.Rel(g.base, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &errdefs.PathError{Op: "resolve", Path: requested, Err: errdefs.ErrPathEscape}
	}

	return resolved, nil
}

// canonicalize resolves symlinks in path. The path itself (or a trailing
// suffix of it) may not exist yet, e.g. a folder about to be created; in that
// case the longest existing ancestor is resolved and the missing remainder is
// re-joined onto it.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	parent := filepath.Dir(path)
	if parent == path {
		return path, nil
	}
	resolvedParent, err := canonicalize(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(path)), nil
}
