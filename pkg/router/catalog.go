package router

import (
	"github.com/filemanager-agent/filemanager-go/internal/models"
	"github.com/filemanager-agent/filemanager-go/pkg/llm"
)

// actionMap translates the tool names advertised to the model into the
// action enum used by the execute endpoint.
var actionMap = map[string]string{
	"find_files_by_extension": models.ActionFindByExtension,
	"get_largest_files":       models.ActionLargestFiles,
	"create_folder":           models.ActionCreateFolder,
	"list_directory":          models.ActionListDirectory,
	"move_files":              models.ActionMoveFiles,
}

// toolCatalog is the fixed set of tool descriptors sent with every model
// request.
var toolCatalog = []llm.Tool{
	{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        "find_files_by_extension",
			Description: "Find and list files with a specific extension in a directory tree. Use this when the user asks to find, search, or locate files of a certain type.",
			Parameters: llm.ToolParameters{
				Type: "object",
				Properties: map[string]llm.ToolProperty{
					"directory": {Type: "string", Description: "The directory path to search in. Use the user home directory if not specified."},
					"extension": {Type: "string", Description: "The file extension to search for (e.g., .py, .txt, .js). Include the dot."},
					"limit":     {Type: "integer", Description: "Maximum number of files to return. Default is 50."},
				},
				Required: []string{"extension"},
			},
		},
	},
	{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        "get_largest_files",
			Description: "Find the largest files in a directory tree. Use this when the user asks about big files, disk space, or which files take up the most space.",
			Parameters: llm.ToolParameters{
				Type: "object",
				Properties: map[string]llm.ToolProperty{
					"directory": {Type: "string", Description: "The directory path to search in. Use the user home directory if not specified."},
					"limit":     {Type: "integer", Description: "Number of largest files to return. Default is 10."},
				},
				Required: []string{},
			},
		},
	},
	{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        "create_folder",
			Description: "Create a new folder/directory. Use this when the user wants to make, create, or add a new folder.",
			Parameters: llm.ToolParameters{
				Type: "object",
				Properties: map[string]llm.ToolProperty{
					"directory":   {Type: "string", Description: "The parent directory path where the folder should be created."},
					"folder_name": {Type: "string", Description: "The name of the new folder to create."},
				},
				Required: []string{"folder_name"},
			},
		},
	},
	{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        "list_directory",
			Description: "List the contents of a directory, showing files and subdirectories. Use this when the user wants to see what is in a folder or list directory contents.",
			Parameters: llm.ToolParameters{
				Type: "object",
				Properties: map[string]llm.ToolProperty{
					"directory": {Type: "string", Description: "The directory path to list. Use the user home directory if not specified."},
				},
				Required: []string{},
			},
		},
	},
	{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        "move_files",
			Description: "Move files matching a pattern from one directory to another. Use this when the user wants to move, relocate, or organize files by pattern (like Screenshot*.png, *.txt, etc.).",
			Parameters: llm.ToolParameters{
				Type: "object",
				Properties: map[string]llm.ToolProperty{
					"source_directory":      {Type: "string", Description: "The source directory containing files to move."},
					"destination_directory": {Type: "string", Description: "The destination directory where files should be moved to."},
					"pattern":               {Type: "string", Description: `The file pattern to match (e.g., "Screenshot*.png", "*.txt", "report_*.pdf"). Uses glob pattern syntax.`},
				},
				Required: []string{"source_directory", "destination_directory", "pattern"},
			},
		},
	},
}

// HelpText is shown when no operation can be derived from the message.
const HelpText = "I can help you with file operations! Try asking me to:\n" +
	"• Find files by extension (e.g., 'find all .py files')\n" +
	"• Get largest files (e.g., 'show me the largest files')\n" +
	"• Create a folder (e.g., 'create folder my_project')\n" +
	"• List directory contents (e.g., 'list current directory')"
