package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
)

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexInt
		fails bool
	}{
		{"number", `42`, 42, false},
		{"quoted number", `"42"`, 42, false},
		{"float", `50.0`, 50, false},
		{"quoted float", `"50.0"`, 50, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage", `"lots"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestParseOperation(t *testing.T) {
	t.Run("find_by_extension", func(t *testing.T) {
		op, err := ParseOperation(ActionFindByExtension,
			map[string]any{"directory": "/tmp", "extension": ".py", "limit": "20"})
		require.NoError(t, err)
		p, ok := op.(FindByExtensionParams)
		require.True(t, ok)
		assert.Equal(t, ".py", p.Extension)
		assert.Equal(t, FlexInt(20), p.Limit)
	})

	t.Run("find_by_extension requires extension", func(t *testing.T) {
		_, err := ParseOperation(ActionFindByExtension, map[string]any{"directory": "/tmp"})
		require.Error(t, err)
		assert.True(t, errdefs.IsRequestError(err))
	})

	t.Run("largest_files defaults are left empty", func(t *testing.T) {
		op, err := ParseOperation(ActionLargestFiles, nil)
		require.NoError(t, err)
		p, ok := op.(LargestFilesParams)
		require.True(t, ok)
		assert.Empty(t, p.Directory)
		assert.Zero(t, p.Limit)
	})

	t.Run("create_folder requires folder_name", func(t *testing.T) {
		_, err := ParseOperation(ActionCreateFolder, map[string]any{"directory": "/tmp"})
		require.Error(t, err)
		assert.True(t, errdefs.IsRequestError(err))
	})

	t.Run("move_files requires all three params", func(t *testing.T) {
		for _, params := range []map[string]any{
			{"destination_directory": "/d", "pattern": "*"},
			{"source_directory": "/s", "pattern": "*"},
			{"source_directory": "/s", "destination_directory": "/d"},
		} {
			_, err := ParseOperation(ActionMoveFiles, params)
			require.Error(t, err)
			assert.True(t, errdefs.IsRequestError(err))
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := ParseOperation("rm_rf", nil)
		require.Error(t, err)
		assert.True(t, errdefs.IsRequestError(err))
	})
}

func TestKnownAction(t *testing.T) {
	for _, action := range []string{
		ActionFindByExtension, ActionLargestFiles, ActionCreateFolder,
		ActionListDirectory, ActionMoveFiles,
	} {
		assert.True(t, KnownAction(action), action)
	}
	assert.False(t, KnownAction(ActionHelp))
	assert.False(t, KnownAction(""))
	assert.False(t, KnownAction("reboot"))
}
