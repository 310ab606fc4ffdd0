package fs

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/medium2md"
)

// ClaimNames keeps the staged images of one article from replacing files
// of other articles in outputDir. An image whose relative path is already
// taken there by a different file is renamed in place to the first free
// <stem>-<n><ext> and the references in text follow it. A file with the
// same content keeps its name.
func ClaimNames(text string, images []medium2md.LocalImage, outputDir string) (string, []medium2md.LocalImage, error) {
	claimed := make(map[string]bool, len(images))
	for _, img := range images {
		claimed[img.Path] = true
	}

	out := slices.Clone(images)
	var moved []medium2md.LocalImage
	for i, img := range out {
		if img.File == "" {
			continue
		}
		taken, err := takenBy(filepath.Join(outputDir, filepath.FromSlash(img.Path)), img.Hash)
		if err != nil {
			return "", nil, err
		}
		if !taken {
			continue
		}

		rel := freePath(img.Path, outputDir, claimed)
		claimed[rel] = true
		file := filepath.Join(filepath.Dir(img.File), path.Base(rel))
		if err := os.Rename(img.File, file); err != nil {
			return "", nil, fmt.Errorf("rename %s: %w", img.Name, err)
		}

		// ReplaceImageURLs maps URL to Path; here the old path is the "URL".
		moved = append(moved, medium2md.LocalImage{URL: img.Path, Path: rel})
		out[i].Name = path.Base(rel)
		out[i].Path = rel
		out[i].File = file
	}
	return ReplaceImageURLs(text, moved), out, nil
}

// takenBy reports whether p exists with content other than hash.
func takenBy(p, hash string) (bool, error) {
	info, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return true, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return false, err
	}
	return medium2md.ContentHash(data) != hash, nil
}

// freePath returns the first <stem>-<n><ext> variant of rel that is
// neither claimed nor present under outputDir.
func freePath(rel, outputDir string, claimed map[string]bool) string {
	ext := path.Ext(rel)
	stem := strings.TrimSuffix(rel, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if claimed[candidate] {
			continue
		}
		_, err := os.Lstat(filepath.Join(outputDir, filepath.FromSlash(candidate)))
		if errors.Is(err, os.ErrNotExist) {
			return candidate
		}
	}
}
