//go:build !windows

package platform

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/renameio/v2"
)

// WriteFile writes the given file with the given data and permissions.
//
// The data goes to a temporary file in the same directory which is then
// renamed over filename, so a crash or error never leaves a partial file.
// perm always wins over the mode of a file being replaced; the umask still
// applies.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	t, err := renameio.NewPendingFile(filename, renameio.WithPermissions(perm))
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %s", filename)
	}
	defer t.Cleanup()

	if _, err := t.Write(data); err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	return errors.Wrapf(t.CloseAtomicallyReplace(), "replacing %s", filename)
}
