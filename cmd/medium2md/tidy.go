package main

import (
	"fmt"

	"github.com/fwojciec/medium2md"
	"github.com/fwojciec/medium2md/fs"
)

// Run executes the tidy command.
func (c *TidyCmd) Run(deps *Dependencies) error {
	mode := medium2md.CleanupPrune
	if c.All {
		mode = medium2md.CleanupAll
	}

	removed, err := fs.Tidy(c.Dir, mode, medium2md.ImageFolders()...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medium2md.ErrorMessage(err))
		return err
	}

	for _, p := range removed {
		fmt.Fprintln(deps.Stdout, p)
	}
	fmt.Fprintf(deps.Stdout, "Removed %d entries\n", len(removed))
	return nil
}
