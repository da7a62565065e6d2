package tree

import (
	"path/filepath"
	"time"

	"github.com/raoulx24/par2mirror/internal/fs"
)

// FileEntry describes a single regular file found below a scan root.
type FileEntry struct {
	RelPath string
	Path    string
	ModTime time.Time
	Size    int64
}

// FromFileInfo constructs a FileEntry from a scan root and the stat result of
// a file below it.
func FromFileInfo(root string, info fs.FileInfo) FileEntry {
	rel, err := filepath.Rel(root, info.Path)
	if err != nil {
		rel = info.Path
	}
	return FileEntry{
		RelPath: rel,
		Path:    info.Path,
		ModTime: info.MTime,
		Size:    info.Size,
	}
}
