// Package tree walks directory trees and yields the regular files in them.
package tree

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/raoulx24/par2mirror/internal/fs"
	"github.com/raoulx24/par2mirror/internal/logging"
)

// Options tune a Scanner.
type Options struct {
	// FollowSymlinks descends into symlinked directories. Directories
	// already visited (by device and inode) are skipped.
	FollowSymlinks bool
	// Exclude lists directories whose subtrees are never entered.
	Exclude []string
}

// Scanner enumerates regular files below a root.
type Scanner struct {
	fs      fs.FS
	log     logging.Logger
	follow  bool
	exclude map[string]struct{}
}

// New creates a scanner. A nil filesystem means the local OS filesystem.
func New(filesystem fs.FS, log logging.Logger, opts Options) *Scanner {
	if filesystem == nil {
		filesystem = fs.New()
	}
	exclude := make(map[string]struct{}, len(opts.Exclude))
	for _, p := range opts.Exclude {
		exclude[filepath.Clean(p)] = struct{}{}
	}
	return &Scanner{
		fs:      filesystem,
		log:     log,
		follow:  opts.FollowSymlinks,
		exclude: exclude,
	}
}

// Scan yields every regular file below root, depth first, in name order
// within each directory. A root that does not exist yields nothing. The
// walk happens lazily while the sequence is consumed; breaking out of the
// loop stops it, and calling Scan again walks the tree afresh.
//
// Symlinks to regular files are reported with the target's size and
// modification time. The first error ends the sequence.
func (s *Scanner) Scan(root string) iter.Seq2[FileEntry, error] {
	return func(yield func(FileEntry, error) bool) {
		root := filepath.Clean(root)

		info, err := s.fs.Stat(root)
		if fs.IsNotExist(err) {
			s.log.Debug("scan root does not exist", "root", root)
			return
		}
		if err != nil {
			yield(FileEntry{}, fmt.Errorf("scanning %s: %w", root, err))
			return
		}
		if !info.IsDir() {
			yield(FileEntry{}, fmt.Errorf("scanning %s: not a directory", root))
			return
		}

		w := &walk{
			Scanner:      s,
			root:         root,
			yield:        yield,
			visited:      make(map[fs.FileID]struct{}),
			visitedPaths: make(map[string]struct{}),
		}
		if _, err := w.markVisited(root, info); err != nil {
			yield(FileEntry{}, err)
			return
		}
		w.dir(root)
	}
}

// walk holds the state of one Scan call.
type walk struct {
	*Scanner
	root    string
	yield   func(FileEntry, error) bool
	visited map[fs.FileID]struct{}

	// resolved directories, for platforms without file identity
	visitedPaths map[string]struct{}
}

// markVisited records a directory and reports whether it was new. Without
// a file identity the directory is tracked by its symlink-free path.
func (w *walk) markVisited(path string, info fs.FileInfo) (bool, error) {
	if !w.follow {
		return true, nil
	}
	if !info.ID.IsZero() {
		if _, seen := w.visited[info.ID]; seen {
			return false, nil
		}
		w.visited[info.ID] = struct{}{}
		return true, nil
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}
	if _, seen := w.visitedPaths[resolved]; seen {
		return false, nil
	}
	w.visitedPaths[resolved] = struct{}{}
	return true, nil
}

// dir walks one directory. It returns false once the consumer stopped or
// an error was yielded.
func (w *walk) dir(path string) bool {
	// ReadDir closes the handle before we start yielding.
	entries, err := w.fs.ReadDir(path)
	if err != nil {
		w.yield(FileEntry{}, fmt.Errorf("reading directory %s: %w", path, err))
		return false
	}

	for _, e := range entries {
		full := filepath.Join(path, e.Name())
		if _, skip := w.exclude[full]; skip {
			w.log.Debug("skipping excluded directory", "path", full)
			continue
		}

		var ok bool
		switch {
		case e.IsDir():
			ok = w.enter(full)
		case e.Type()&os.ModeSymlink != 0:
			ok = w.symlink(full)
		case e.Type().IsRegular():
			ok = w.file(full)
		default:
			w.log.Debug("skipping special file", "path", full, "type", e.Type().String())
			ok = true
		}
		if !ok {
			return false
		}
	}
	return true
}

func (w *walk) enter(path string) bool {
	if w.follow {
		info, err := w.fs.Stat(path)
		if err != nil {
			w.yield(FileEntry{}, fmt.Errorf("stat %s: %w", path, err))
			return false
		}
		fresh, err := w.markVisited(path, info)
		if err != nil {
			w.yield(FileEntry{}, err)
			return false
		}
		if !fresh {
			w.log.Warn("directory already visited, not descending again", "path", path)
			return true
		}
	}
	return w.dir(path)
}

func (w *walk) file(path string) bool {
	info, err := w.fs.Stat(path)
	if fs.IsNotExist(err) {
		// removed between listing and stat
		w.log.Debug("file vanished during scan", "path", path)
		return true
	}
	if err != nil {
		w.yield(FileEntry{}, fmt.Errorf("stat %s: %w", path, err))
		return false
	}
	return w.yield(FromFileInfo(w.root, info), nil)
}

func (w *walk) symlink(path string) bool {
	info, err := w.fs.Stat(path)
	if fs.IsNotExist(err) {
		w.log.Warn("skipping broken symlink", "path", path)
		return true
	}
	if err != nil {
		w.yield(FileEntry{}, fmt.Errorf("stat %s: %w", path, err))
		return false
	}

	switch {
	case info.IsRegular():
		return w.yield(FromFileInfo(w.root, info), nil)
	case info.IsDir() && w.follow:
		return w.enter(path)
	case info.IsDir():
		w.log.Debug("not following directory symlink", "path", path)
	default:
		w.log.Debug("skipping symlink to special file", "path", path)
	}
	return true
}
