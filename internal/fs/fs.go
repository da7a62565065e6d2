// Package fs defines the filesystem abstraction used by par2mirror.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"os"
	"time"
)

// FileID identifies a file independently of the path used to reach it.
// A zero FileID means the platform could not provide one.
type FileID struct {
	Dev uint64
	Ino uint64
}

// IsZero reports whether the identity is unknown.
func (id FileID) IsZero() bool {
	return id == FileID{}
}

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	Mode  os.FileMode
	ID    FileID
}

// IsDir reports whether the entry describes a directory.
func (fi FileInfo) IsDir() bool {
	return fi.Mode.IsDir()
}

// IsRegular reports whether the entry describes a regular file.
func (fi FileInfo) IsRegular() bool {
	return fi.Mode.IsRegular()
}

type FS interface {
	// Stat follows symbolic links.
	Stat(path string) (FileInfo, error)
	// Exists reports false only when the path is absent; any other
	// failure is returned as an error.
	Exists(path string) (bool, error)
	// ReadDir returns the entries of a directory sorted by name. The
	// directory handle is closed before it returns.
	ReadDir(path string) ([]os.DirEntry, error)
	MkdirAll(path string) error
	Remove(path string) error
}
