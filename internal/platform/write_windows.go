//go:build windows

package platform

import (
	"os"

	"github.com/cockroachdb/errors"
)

// WriteFile writes the given file with the given data and permissions.
// Windows has no atomic rename-over, so this is a plain write.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	return errors.Wrapf(os.WriteFile(filename, data, perm), "writing %s", filename)
}
