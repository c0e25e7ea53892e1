package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestAddRecursive_WatchesNestedDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes", "deep"), 0o755))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, addRecursive(w, root))

	watched := w.WatchList()
	require.Contains(t, watched, root)
	require.Contains(t, watched, filepath.Join(root, "notes"))
	require.Contains(t, watched, filepath.Join(root, "notes", "deep"))
}

func TestAddRecursive_HiddenDirectories_NotWatched(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "visible"), 0o755))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, addRecursive(w, root))

	watched := w.WatchList()
	require.NotContains(t, watched, filepath.Join(root, ".git"))
	require.Contains(t, watched, filepath.Join(root, "visible"))
}
