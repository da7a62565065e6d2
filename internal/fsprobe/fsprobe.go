// Package fsprobe checks the two roots before any tree work starts.
package fsprobe

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/raoulx24/par2mirror/internal/fs"
)

var (
	// ErrSourceMissing means SOURCEDIR does not exist.
	ErrSourceMissing = errors.New("source directory does not exist")
	// ErrNotDirectory means a root exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrOverlappingRoots means the source tree would be walked as part of
	// the recovery tree.
	ErrOverlappingRoots = errors.New("source directory must not be the recovery directory or lie inside it")
)

// Result reports whether a directory is usable as a root and why not.
type Result struct {
	Exists bool
	IsDir  bool
	Reason string // explanation when unusable
}

// Probe inspects dir.
func Probe(filesystem fs.FS, dir string) Result {
	st, err := filesystem.Stat(dir)
	if fs.IsNotExist(err) {
		return Result{Reason: "does not exist"}
	}
	if err != nil {
		return Result{Reason: fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{Exists: true, Reason: "not a directory"}
	}
	return Result{Exists: true, IsDir: true}
}

// CheckRoots fails fast when the source root is missing or not a
// directory, or when the recovery root exists but is not a directory. The
// recovery root itself may be absent. A recovery root inside the source root
// is accepted; the reverse, and equal roots, are not.
func CheckRoots(filesystem fs.FS, sourceRoot, recoveryRoot string) error {
	src := Probe(filesystem, sourceRoot)
	switch {
	case !src.Exists && src.Reason == "does not exist":
		return fmt.Errorf("%s: %w", sourceRoot, ErrSourceMissing)
	case !src.Exists:
		return fmt.Errorf("%s: %s", sourceRoot, src.Reason)
	case !src.IsDir:
		return fmt.Errorf("%s: %w: %w", sourceRoot, ErrSourceMissing, ErrNotDirectory)
	}

	rec := Probe(filesystem, recoveryRoot)
	if rec.Exists && !rec.IsDir {
		return fmt.Errorf("%s: %w", recoveryRoot, ErrNotDirectory)
	}

	if contains(recoveryRoot, sourceRoot) || (rec.Exists && sameDir(filesystem, sourceRoot, recoveryRoot)) {
		return fmt.Errorf("%s, %s: %w", sourceRoot, recoveryRoot, ErrOverlappingRoots)
	}
	return nil
}

// contains reports whether path is root or lies below it.
func contains(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || filepath.IsLocal(rel)
}

// sameDir catches equal roots spelled differently, e.g. through a symlink.
func sameDir(filesystem fs.FS, a, b string) bool {
	ai, err := filesystem.Stat(a)
	if err != nil || ai.ID.IsZero() {
		return false
	}
	bi, err := filesystem.Stat(b)
	if err != nil {
		return false
	}
	return ai.ID == bi.ID
}
