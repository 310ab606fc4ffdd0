package main

import (
	"fmt"

	"github.com/fwojciec/medium2md"
	"github.com/fwojciec/medium2md/fs"
)

// Run executes the clean command. Frontmatter is kept as is.
func (c *CleanCmd) Run(deps *Dependencies) error {
	stripper, err := c.stripper()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medium2md.ErrorMessage(err))
		return err
	}

	paths, err := fs.ListMarkdown(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medium2md.ErrorMessage(err))
		return err
	}

	for _, p := range paths {
		doc, err := fs.ReadDocument(p)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", medium2md.ErrorMessage(err))
			return err
		}
		doc.Content = stripper.Strip(doc.Content)
		if err := fs.WriteDocument(doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", p, err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Cleaned %d files\n", len(paths))
	return nil
}

func (c *CleanCmd) stripper() (*medium2md.Stripper, error) {
	profile, err := medium2md.ParseProfile(c.Profile)
	if err != nil {
		return nil, err
	}
	cfg := medium2md.DefaultStripConfig()
	cfg.TrailingLines = c.TrailingLines
	cfg.MinLines = c.MinLines
	return medium2md.NewStripper(profile, cfg)
}
