//go:build unix

package fs

import (
	"os"
	"syscall"
)

// inode_unix.go extracts device and inode numbers from syscall.Stat_t on Unix systems.
// They let the tree scanner recognise a directory it already visited through a symlink.

func fileIDOf(_ string, info os.FileInfo) FileID {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return FileID{}
	}
	return FileID{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}
}
