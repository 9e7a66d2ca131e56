package models

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FileEntry describes a single regular file found by a search operation.
type FileEntry struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	Modified     time.Time `json:"modified"`
	ReadableSize string    `json:"readable_size"`
}

// NewFileEntry fills a FileEntry including its presentation size.
func NewFileEntry(path, name string, size int64, modified time.Time) FileEntry {
	return FileEntry{
		Path:         path,
		Name:         name,
		Size:         size,
		Modified:     modified,
		ReadableSize: humanize.IBytes(uint64(size)),
	}
}

// DirectoryEntry describes an immediate child of a listed directory.
type DirectoryEntry struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	IsDirectory  bool      `json:"is_directory"`
	Size         int64     `json:"size"`
	ReadableSize string    `json:"readable_size"`
	Modified     time.Time `json:"modified"`
}

// Listing is the payload of list_directory.
type Listing struct {
	Directory string           `json:"directory"`
	Items     []DirectoryEntry `json:"items"`
}

// FolderInfo is the payload of create_folder.
type FolderInfo struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
}

// MovedFile records one successful move.
type MovedFile struct {
	Name         string `json:"name"`
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	Size         int64  `json:"size"`
	ReadableSize string `json:"readable_size"`
}

// MoveError records one file that could not be moved.
type MoveError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// MoveReport is the payload of move_files. Moves are best-effort: Files and
// Errors together account for every matched file.
type MoveReport struct {
	MovedCount           int         `json:"moved_count"`
	Files                []MovedFile `json:"files"`
	Errors               []MoveError `json:"errors,omitempty"`
	ErrorCount           int         `json:"error_count,omitempty"`
	SourceDirectory      string      `json:"source_directory"`
	DestinationDirectory string      `json:"destination_directory"`
	Pattern              string      `json:"pattern"`
}
