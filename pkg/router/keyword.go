package router

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/filemanager-agent/filemanager-go/internal/models"
)

var extensionPattern = regexp.MustCompile(`\.[a-zA-Z0-9]{1,10}\b`)

// KeywordSelector is the deterministic fallback: a fixed table of substring
// triggers evaluated in order. Move is checked before the extension rule
// because glob tokens like "*.png" also look like extension tokens.
type KeywordSelector struct{}

// Select never returns an error; unmatched messages yield the help action.
func (s *KeywordSelector) Select(_ context.Context, message, directory string) (*Decision, error) {
	text := strings.ToLower(message)
	fields := strings.Fields(message)

	if containsAny(text, "move", "relocate", "organize") {
		if d := moveDecision(fields, directory); d != nil {
			return d, nil
		}
	}

	if containsAny(text, "largest", "biggest") {
		return &Decision{
			Action: models.ActionLargestFiles,
			Params: map[string]any{"directory": directory, "limit": 10},
		}, nil
	}

	if containsAny(text, "create", "make", "add", "new") && containsAny(text, "folder", "directory") {
		if name := folderName(fields); name != "" {
			return &Decision{
				Action: models.ActionCreateFolder,
				Params: map[string]any{"directory": directory, "folder_name": name},
			}, nil
		}
	}

	if ext := extensionPattern.FindString(text); ext != "" {
		return &Decision{
			Action: models.ActionFindByExtension,
			Params: map[string]any{"directory": directory, "extension": ext, "limit": 50},
		}, nil
	}

	if containsAny(text, "list", "show", "contents", "what's in", "whats in") {
		return &Decision{
			Action: models.ActionListDirectory,
			Params: map[string]any{"directory": directory},
		}, nil
	}

	return &Decision{Action: models.ActionHelp, HelpText: HelpText}, nil
}

func containsAny(text string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

// moveDecision requires a glob token and a destination after "to".
func moveDecision(fields []string, directory string) *Decision {
	var pattern, destination string
	for i, f := range fields {
		token := strings.Trim(f, `"'.,!?`)
		if pattern == "" && strings.ContainsAny(token, "*?") {
			pattern = token
		}
		if strings.EqualFold(f, "to") && i+1 < len(fields) {
			destination = strings.Trim(fields[i+1], `"'.,!?`)
		}
	}
	if pattern == "" || destination == "" {
		return nil
	}
	if !filepath.IsAbs(destination) {
		destination = filepath.Join(directory, destination)
	}
	return &Decision{
		Action: models.ActionMoveFiles,
		Params: map[string]any{
			"source_directory":      directory,
			"destination_directory": destination,
			"pattern":               pattern,
		},
	}
}

// folderName picks the word following "folder"/"directory", or the last
// word of the message as a last resort.
func folderName(fields []string) string {
	for i, f := range fields {
		lower := strings.ToLower(strings.Trim(f, `"'.,!?`))
		if (lower == "folder" || lower == "directory") && i+1 < len(fields) {
			return strings.Trim(fields[i+1], `"'.,!?`)
		}
	}
	if len(fields) > 0 {
		last := strings.Trim(fields[len(fields)-1], `"'.,!?`)
		lower := strings.ToLower(last)
		if lower != "folder" && lower != "directory" {
			return last
		}
	}
	return ""
}
