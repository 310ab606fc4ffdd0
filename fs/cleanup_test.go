package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/medium2md"
	"github.com/fwojciec/medium2md/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneMedia(t *testing.T) {
	t.Parallel()

	t.Run("removes only unreferenced files", func(t *testing.T) {
		t.Parallel()

		// Given an article referencing one of two media files
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "Story.md"), "# Story\n\n![](media/media_1.png)\n")
		writeFile(t, filepath.Join(dir, "media", "media_1.png"), "1")
		writeFile(t, filepath.Join(dir, "media", "media_2.png"), "2")

		// When I prune
		removed, err := fs.PruneMedia(dir, medium2md.MediaFolder)

		// Then the unreferenced file is gone
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "media", "media_2.png")}, removed)
		assert.FileExists(t, filepath.Join(dir, "media", "media_1.png"))
		assert.NoFileExists(t, filepath.Join(dir, "media", "media_2.png"))
	})

	t.Run("dot-slash references count", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "Story.md"), "![](./media/media_1.png)")
		writeFile(t, filepath.Join(dir, "media", "media_1.png"), "1")

		removed, err := fs.PruneMedia(dir, medium2md.MediaFolder)

		require.NoError(t, err)
		assert.Empty(t, removed)
	})

	t.Run("empty folder is removed", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "Story.md"), "no images")
		writeFile(t, filepath.Join(dir, "local", "x.png"), "x")

		_, err := fs.PruneMedia(dir, medium2md.LocalFolder, medium2md.AssetsFolder)

		require.NoError(t, err)
		assert.NoDirExists(t, filepath.Join(dir, "local"))
	})
}

func TestRemoveMedia(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Story.md"), "![](media/media_1.png)")
	writeFile(t, filepath.Join(dir, "media", "media_1.png"), "1")

	removed, err := fs.RemoveMedia(dir, medium2md.ImageFolders()...)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "media")}, removed)
	assert.NoDirExists(t, filepath.Join(dir, "media"))
	assert.FileExists(t, filepath.Join(dir, "Story.md"))
}

func TestTidy(t *testing.T) {
	t.Parallel()

	t.Run("none keeps everything", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "media", "media_1.png"), "1")

		removed, err := fs.Tidy(dir, medium2md.CleanupNone, medium2md.MediaFolder)

		require.NoError(t, err)
		assert.Empty(t, removed)
		assert.FileExists(t, filepath.Join(dir, "media", "media_1.png"))
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()

		_, err := fs.Tidy(t.TempDir(), "sometimes")

		assert.Equal(t, medium2md.EINVALID, medium2md.ErrorCode(err))
	})
}
