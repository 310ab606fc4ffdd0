package main

import (
	"fmt"

	"github.com/fwojciec/medium2md"
	"github.com/fwojciec/medium2md/fs"
)

// Run executes the localize command.
func (c *LocalizeCmd) Run(deps *Dependencies) error {
	path, err := fs.FindSingleMarkdown(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medium2md.ErrorMessage(err))
		return err
	}

	doc, err := fs.ReadDocument(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medium2md.ErrorMessage(err))
		return err
	}

	var namer medium2md.Namer = medium2md.BasenameNamer{}
	if c.Sequential {
		namer = medium2md.SequentialNamer{}
	}
	localizer := fs.NewLocalizer(deps.ImageFetcher,
		fs.WithNamer(namer),
		fs.WithFolder(c.Folder),
		fs.WithAnyAlt(c.AnyAlt),
		fs.WithConcurrency(c.Concurrency),
		fs.WithLogger(deps.Logger),
	)

	text, images, err := localizer.LocalizeImages(deps.Ctx, doc.Content, c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medium2md.ErrorMessage(err))
		return err
	}
	if len(images) == 0 {
		fmt.Fprintln(deps.Stdout, "No images localized")
		return nil
	}

	doc.Content = text
	if doc.Frontmatter != nil {
		for _, img := range images {
			doc.Frontmatter.Images = append(doc.Frontmatter.Images, img.Path)
		}
	}
	if err := fs.WriteDocument(doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", path, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Localized %d images into %s/\n", len(images), localizer.Folder())
	return nil
}
