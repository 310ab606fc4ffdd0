package fs

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/medium2md"
)

// Tidy applies mode to the image folders of dir and returns the removed
// paths.
func Tidy(dir string, mode medium2md.CleanupMode, folders ...string) ([]string, error) {
	switch mode {
	case medium2md.CleanupNone:
		return nil, nil
	case medium2md.CleanupAll:
		return RemoveMedia(dir, folders...)
	case medium2md.CleanupPrune, "":
		return PruneMedia(dir, folders...)
	}
	return nil, medium2md.Errorf(medium2md.EINVALID, "unknown cleanup mode %q", mode)
}

// RemoveMedia deletes the given image folders of dir. Missing folders are
// skipped.
func RemoveMedia(dir string, folders ...string) ([]string, error) {
	var removed []string
	for _, folder := range folders {
		p := filepath.Join(dir, folder)
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		} else if err != nil {
			return removed, err
		}
		if err := os.RemoveAll(p); err != nil {
			return removed, err
		}
		removed = append(removed, p)
	}
	return removed, nil
}

// PruneMedia deletes every file in the given image folders of dir that no
// Markdown file in dir references by its relative path. Folders left empty
// are removed too.
func PruneMedia(dir string, folders ...string) ([]string, error) {
	docs, err := ListMarkdown(dir)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, p := range docs {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		text.Write(data)
		text.WriteByte('\n')
	}
	refs := text.String()

	var removed []string
	for _, folder := range folders {
		folderPath := filepath.Join(dir, folder)
		entries, err := os.ReadDir(folderPath)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return removed, err
		}

		kept := 0
		for _, e := range entries {
			if e.IsDir() || strings.Contains(refs, path.Join(folder, e.Name())) {
				kept++
				continue
			}
			p := filepath.Join(folderPath, e.Name())
			if err := os.Remove(p); err != nil {
				return removed, err
			}
			removed = append(removed, p)
		}

		if kept == 0 {
			if err := os.Remove(folderPath); err != nil {
				return removed, err
			}
		}
	}
	return removed, nil
}
