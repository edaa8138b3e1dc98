package platform

import "os"

// MakeWritable grants the owner write access to path, keeping the other
// permission bits. On Windows os.Chmod maps the owner write bit onto the
// read-only attribute, which is what version control checkouts tend to set.
func MakeWritable(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		// chmod would follow the link and touch the target.
		return nil
	}
	mode := info.Mode().Perm() | 0200
	if info.IsDir() {
		mode |= 0700
	}
	if info.Mode().Perm() == mode {
		return nil
	}
	return os.Chmod(path, mode)
}
