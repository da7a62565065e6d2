package fs

import (
	"errors"
	iofs "io/fs"
	"syscall"
)

// defines helpers for classifying filesystem errors.

// IsNotExist reports whether err means the path is absent. A path through a
// regular file ("file/child") counts as absent.
func IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
