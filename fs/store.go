package fs

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// OutputStore stages the files of one run in a hidden directory inside
// the output directory. Commit merges the staged tree into the output
// directory, replacing files of the same name; Abort discards it. Files of
// earlier runs that this run does not produce are left untouched.
type OutputStore struct {
	dir     string
	staging string
}

// NewOutputStore creates an OutputStore for the output directory dir.
// Nothing is created until Open is called.
func NewOutputStore(dir string) *OutputStore {
	return &OutputStore{
		dir:     dir,
		staging: filepath.Join(dir, ".tmp-"+uuid.NewString()),
	}
}

// Open creates the output and staging directories and returns the staging
// path, which callers write into as if it were the output directory.
func (s *OutputStore) Open() (string, error) {
	if err := os.MkdirAll(s.staging, 0755); err != nil {
		return "", err
	}
	return s.staging, nil
}

// Dir returns the final output directory.
func (s *OutputStore) Dir() string {
	return s.dir
}

// StagingDir returns the directory files are staged in.
func (s *OutputStore) StagingDir() string {
	return s.staging
}

// Commit merges the staged entries into the output directory and removes
// the staging directory.
func (s *OutputStore) Commit() error {
	if err := merge(s.staging, s.dir); err != nil {
		return err
	}
	return os.RemoveAll(s.staging)
}

// merge moves the entries of src into dst. Directories present on both
// sides are merged recursively; anything else in dst is replaced.
func merge(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())

		if e.IsDir() {
			if info, err := os.Stat(to); err == nil && info.IsDir() {
				if err := merge(from, to); err != nil {
					return err
				}
				continue
			}
		}
		if err := os.RemoveAll(to); err != nil {
			return err
		}
		if err := os.Rename(from, to); err != nil {
			return err
		}
	}
	return nil
}

// Abort removes the staging directory and everything in it.
func (s *OutputStore) Abort() error {
	return os.RemoveAll(s.staging)
}
