package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
)

// RemoveTree deletes root and everything below it, the equivalent of
// `rm -rf root` for trees that contain read-only entries.
//
// Entries are removed bottom-up: every file is made writable and unlinked,
// then each directory once its children are gone, then root itself. The
// first failure is returned with a stack trace and nothing is retried.
func RemoveTree(root string) error {
	// Directories need owner rwx before their children can be listed and
	// unlinked, so fix those up top-down while collecting entries.
	var dirs, files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if err := MakeWritable(path); err != nil {
				return errors.Wrapf(err, "making %s writable", path)
			}
			dirs = append(dirs, path)
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "walking %s", root)
	}

	for _, f := range files {
		if err := MakeWritable(f); err != nil {
			return errors.Wrapf(err, "making %s writable", f)
		}
		if err := os.Remove(f); err != nil {
			return errors.Wrapf(err, "removing %s", f)
		}
	}

	// WalkDir visits parents before children; reversed, every directory is
	// already empty by the time it is removed. root is the last entry.
	slices.Reverse(dirs)
	for _, d := range dirs {
		if err := os.Remove(d); err != nil {
			return errors.Wrapf(err, "removing directory %s", d)
		}
	}

	return nil
}
