package medium2md

import "time"

// Frontmatter is the optional YAML block written before the Markdown body.
type Frontmatter struct {
	Source  string    `yaml:"source"`
	Title   string    `yaml:"title"`
	Fetched time.Time `yaml:"fetched"`
	Images  []string  `yaml:"images,omitempty"`
}
