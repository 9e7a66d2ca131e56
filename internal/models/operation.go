package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
)

// Action names accepted by the execute endpoint.
const (
	ActionFindByExtension = "find_by_extension"
	ActionLargestFiles    = "largest_files"
	ActionCreateFolder    = "create_folder"
	ActionListDirectory   = "list_directory"
	ActionMoveFiles       = "move_files"

	// ActionHelp is a pseudo-action produced by the router; it carries usage
	// text and is never executed.
	ActionHelp = "help"
)

// KnownAction reports whether name is one of the executable actions.
func KnownAction(name string) bool {
	switch name {
	case ActionFindByExtension, ActionLargestFiles, ActionCreateFolder,
		ActionListDirectory, ActionMoveFiles:
		return true
	}
	return false
}

// OperationRequest is the execute endpoint envelope.
type OperationRequest struct {
	Action string         `json:"action" binding:"required"`
	Params map[string]any `json:"params"`
}

// FlexInt is an int that also unmarshals from a JSON string. Model-extracted
// arguments arrive as either.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Tolerate "50.0" style numbers.
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}
		n = int(fl)
	}
	*f = FlexInt(n)
	return nil
}

// FindByExtensionParams holds arguments for find_by_extension.
type FindByExtensionParams struct {
	Directory string  `json:"directory"`
	Extension string  `json:"extension"`
	Limit     FlexInt `json:"limit"`
}

// LargestFilesParams holds arguments for largest_files.
type LargestFilesParams struct {
	Directory string  `json:"directory"`
	Limit     FlexInt `json:"limit"`
}

// CreateFolderParams holds arguments for create_folder.
type CreateFolderParams struct {
	Directory  string `json:"directory"`
	FolderName string `json:"folder_name"`
}

// ListDirectoryParams holds arguments for list_directory.
type ListDirectoryParams struct {
	Directory string `json:"directory"`
}

// MoveFilesParams holds arguments for move_files.
type MoveFilesParams struct {
	SourceDirectory      string `json:"source_directory"`
	DestinationDirectory string `json:"destination_directory"`
	Pattern              string `json:"pattern"`
}

// ParseOperation decodes the generic params map into the typed parameter
// struct for the given action and validates required fields. Defaultable
// fields (directory, limit) are left empty for the caller to fill in.
func ParseOperation(action string, params map[string]any) (any, error) {
	jsonData, err := json.Marshal(params)
	if err != nil {
		return nil, errdefs.NewParamError("params", err.Error())
	}

	switch action {
	case ActionFindByExtension:
		var p FindByExtensionParams
		if err := json.Unmarshal(jsonData, &p); err != nil {
			return nil, errdefs.NewParamError("params", err.Error())
		}
		if p.Extension == "" {
			return nil, errdefs.NewParamError("extension", "required")
		}
		return p, nil
	case ActionLargestFiles:
		var p LargestFilesParams
		if err := json.Unmarshal(jsonData, &p); err != nil {
			return nil, errdefs.NewParamError("params", err.Error())
		}
		return p, nil
	case ActionCreateFolder:
		var p CreateFolderParams
		if err := json.Unmarshal(jsonData, &p); err != nil {
			return nil, errdefs.NewParamError("params", err.Error())
		}
		if p.FolderName == "" {
			return nil, errdefs.NewParamError("folder_name", "required")
		}
		return p, nil
	case ActionListDirectory:
		var p ListDirectoryParams
		if err := json.Unmarshal(jsonData, &p); err != nil {
			return nil, errdefs.NewParamError("params", err.Error())
		}
		return p, nil
	case ActionMoveFiles:
		var p MoveFilesParams
		if err := json.Unmarshal(jsonData, &p); err != nil {
			return nil, errdefs.NewParamError("params", err.Error())
		}
		if p.SourceDirectory == "" {
			return nil, errdefs.NewParamError("source_directory", "required")
		}
		if p.DestinationDirectory == "" {
			return nil, errdefs.NewParamError("destination_directory", "required")
		}
		if p.Pattern == "" {
			return nil, errdefs.NewParamError("pattern", "required")
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown action: %s", errdefs.ErrInvalidArgument, action)
	}
}
