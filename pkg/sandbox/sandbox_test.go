package sandbox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filemanager-agent/filemanager-go/internal/errdefs"
	"github.com/filemanager-agent/filemanager-go/pkg/sandbox"
)

func newTestGuard(t *testing.T) *sandbox.Guard {
	guard, err := sandbox.New(t.TempDir())
	require.NoError(t, err)
	return guard
}

func TestResolve_Base(t *testing.T) {
	guard := newTestGuard(t)

	t.Run("empty path resolves to base", func(t *testing.T) {
		resolved, err := guard.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, guard.Base(), resolved)
	})

	t.Run("base itself is allowed", func(t *testing.T) {
		resolved, err := guard.Resolve(guard.Base())
		require.NoError(t, err)
		assert.Equal(t, guard.Base(), resolved)
	})
}

func TestResolve_Descendants(t *testing.T) {
	guard := newTestGuard(t)

	t.Run("relative child", func(t *testing.T) {
		resolved, err := guard.Resolve("docs")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(guard.Base(), "docs"), resolved)
	})

	t.Run("nested path that does not exist yet", func(t *testing.T) {
		resolved, err := guard.Resolve("a/b/c")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(guard.Base(), "a", "b", "c"), resolved)
	})

	t.Run("internal dot segments are cleaned", func(t *testing.T) {
		resolved, err := guard.Resolve("docs/../docs/./x")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(guard.Base(), "docs", "x"), resolved)
	})
}

func TestResolve_Escape(t *testing.T) {
	guard := newTestGuard(t)

	cases := []struct {
		name string
		path string
	}{
		{"parent traversal", ".."},
		{"relative traversal", "../outside"},
		{"deep traversal", "docs/../../outside"},
		{"absolute path outside", "/etc/passwd"},
		{"root", "/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := guard.Resolve(tc.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, errdefs.ErrPathEscape)
		})
	}
}

func TestResolve_SymlinkEscape(t *testing.T) {
	guard := newTestGuard(t)

	outside := t.TempDir()
	link := filepath.Join(guard.Base(), "link")
	require.NoError(t, os.Symlink(outside, link))

	_, err := guard.Resolve("link")
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrPathEscape)

	_, err = guard.Resolve("link/file.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrPathEscape)
}

func TestResolve_SymlinkInside(t *testing.T) {
	guard := newTestGuard(t)

	target := filepath.Join(guard.Base(), "real")
	require.NoError(t, os.Mkdir(target, 0755))
	link := filepath.Join(guard.Base(), "alias")
	require.NoError(t, os.Symlink(target, link))

	resolved, err := guard.Resolve("alias")
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestNew_MissingBase(t *testing.T) {
	_, err := sandbox.New(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}
