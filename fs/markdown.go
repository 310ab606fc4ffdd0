// Package fs stores articles on the local file system: staged output
// directories, Markdown files with optional YAML frontmatter, downloaded
// images and their cleanup.
package fs

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/medium2md"
	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// ListMarkdown returns the paths of the .md files directly inside dir,
// sorted by name. Subdirectories are not searched.
func ListMarkdown(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, medium2md.Errorf(medium2md.ENOTFOUND, "directory %q does not exist", dir)
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// FindSingleMarkdown returns the only .md file in dir. It fails with
// ENOTFOUND when there is none and ECONFLICT when there are several.
func FindSingleMarkdown(dir string) (string, error) {
	paths, err := ListMarkdown(dir)
	if err != nil {
		return "", err
	}
	switch len(paths) {
	case 0:
		return "", medium2md.Errorf(medium2md.ENOTFOUND, "no markdown file found in %s", dir)
	case 1:
		return paths[0], nil
	}
	return "", medium2md.Errorf(medium2md.ECONFLICT, "expected one markdown file in %s, found %d", dir, len(paths))
}

// ReadDocument reads a Markdown file, separating a leading YAML
// frontmatter block from the content. A block that is not valid YAML is
// left in the content.
func ReadDocument(path string) (*medium2md.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, medium2md.Errorf(medium2md.ENOTFOUND, "file %q does not exist", path)
		}
		return nil, err
	}

	fm, content := ParseDocument(data)
	return &medium2md.Document{
		Path:        path,
		Frontmatter: fm,
		Content:     content,
	}, nil
}

// ParseDocument splits data into frontmatter and content.
func ParseDocument(data []byte) (*medium2md.Frontmatter, string) {
	if !bytes.HasPrefix(data, []byte(frontmatterDelim+"\n")) {
		return nil, string(data)
	}

	rest := data[len(frontmatterDelim):]
	idx := bytes.Index(rest, []byte("\n"+frontmatterDelim+"\n"))
	if idx < 0 {
		return nil, string(data)
	}

	var fm medium2md.Frontmatter
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return nil, string(data)
	}

	body := rest[idx+len("\n"+frontmatterDelim+"\n"):]
	return &fm, strings.TrimPrefix(string(body), "\n")
}

// FormatDocument renders doc as file content: the frontmatter block, if
// any, followed by a blank line and the content.
func FormatDocument(doc *medium2md.Document) (string, error) {
	if doc.Frontmatter == nil {
		return doc.Content, nil
	}

	y, err := yaml.Marshal(doc.Frontmatter)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(frontmatterDelim + "\n")
	b.Write(y)
	b.WriteString(frontmatterDelim + "\n\n")
	b.WriteString(doc.Content)
	return b.String(), nil
}

// WriteDocument writes doc to doc.Path, creating parent directories.
func WriteDocument(doc *medium2md.Document) error {
	if doc.Path == "" {
		return medium2md.Errorf(medium2md.EINVALID, "document path required")
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(doc.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(doc.Path, []byte(content), 0644)
}
