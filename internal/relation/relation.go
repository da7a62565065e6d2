// Package relation compares a source tree with its recovery tree.
//
// Every relation is a lazy sequence of recovery.Link values computed by
// walking one of the two trees; nothing is cached between calls.
package relation

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"

	"github.com/raoulx24/par2mirror/internal/fs"
	"github.com/raoulx24/par2mirror/internal/logging"
	"github.com/raoulx24/par2mirror/internal/recovery"
	"github.com/raoulx24/par2mirror/internal/tree"
)

// ErrArtifactNotRegular means the path a source file maps to is occupied by
// something other than a regular file.
var ErrArtifactNotRegular = errors.New("artifact path is not a regular file")

// Computer derives relations between a source root and a recovery root.
type Computer struct {
	mapper    recovery.Mapper
	fs        fs.FS
	log       logging.Logger
	source    *tree.Scanner
	artifacts *tree.Scanner
}

// New creates a Computer. When the recovery root lies inside the source
// root it is excluded from the source walk, so artifacts are never treated
// as files to protect. A nil filesystem means the local OS filesystem.
func New(mapper recovery.Mapper, filesystem fs.FS, log logging.Logger, opts tree.Options) *Computer {
	if filesystem == nil {
		filesystem = fs.New()
	}

	sourceOpts := opts
	if isBelow(mapper.SourceRoot(), mapper.RecoveryRoot()) {
		sourceOpts.Exclude = append(append([]string(nil), opts.Exclude...), mapper.RecoveryRoot())
	}

	return &Computer{
		mapper:    mapper,
		fs:        filesystem,
		log:       log,
		source:    tree.New(filesystem, log, sourceOpts),
		artifacts: tree.New(filesystem, log, opts),
	}
}

// Mapper returns the path mapper the relations are computed with.
func (c *Computer) Mapper() recovery.Mapper {
	return c.mapper
}

// Missing yields source files that have no recovery artifact.
func (c *Computer) Missing() iter.Seq2[recovery.Link, error] {
	return c.bySourceArtifact(func(_ tree.FileEntry, _ fs.FileInfo, exists bool) bool {
		return !exists
	})
}

// Existing yields source files that have a recovery artifact.
func (c *Computer) Existing() iter.Seq2[recovery.Link, error] {
	return c.bySourceArtifact(func(_ tree.FileEntry, _ fs.FileInfo, exists bool) bool {
		return exists
	})
}

// Outdated yields source files whose artifact exists but is empty or older
// than the source file. Files without an artifact are not outdated.
func (c *Computer) Outdated() iter.Seq2[recovery.Link, error] {
	return c.bySourceArtifact(func(entry tree.FileEntry, artifact fs.FileInfo, exists bool) bool {
		if !exists {
			return false
		}
		return artifact.Size == 0 || artifact.MTime.Before(entry.ModTime)
	})
}

// DeletedSource walks the recovery tree and yields base artifacts whose
// source file no longer exists. Volume files are never yielded.
func (c *Computer) DeletedSource() iter.Seq2[recovery.Link, error] {
	return func(yield func(recovery.Link, error) bool) {
		for entry, err := range c.artifacts.Scan(c.mapper.RecoveryRoot()) {
			if err != nil {
				yield(recovery.Link{}, err)
				return
			}

			name := filepath.Base(entry.Path)
			if !recovery.IsArtifactName(name) || recovery.IsVolumeName(name) {
				continue
			}

			source := c.mapper.SourcePath(entry.Path)
			exists, err := c.fs.Exists(source)
			if err != nil {
				yield(recovery.Link{}, fmt.Errorf("checking source %s: %w", source, err))
				return
			}
			if exists {
				continue
			}

			c.log.Debug("source deleted", "source", source, "recovery", entry.Path)
			if !yield(recovery.Link{Source: source, Recovery: entry.Path}, nil) {
				return
			}
		}
	}
}

// Stale yields every artifact that should be removed: outdated ones first,
// then orphaned ones. A recovery path is yielded at most once.
func (c *Computer) Stale() iter.Seq2[recovery.Link, error] {
	return func(yield func(recovery.Link, error) bool) {
		seen := make(map[string]struct{})
		for _, seq := range []iter.Seq2[recovery.Link, error]{c.Outdated(), c.DeletedSource()} {
			for link, err := range seq {
				if err != nil {
					yield(recovery.Link{}, err)
					return
				}
				if _, dup := seen[link.Recovery]; dup {
					continue
				}
				seen[link.Recovery] = struct{}{}
				if !yield(link, nil) {
					return
				}
			}
		}
	}
}

// bySourceArtifact walks the source tree, stats each file's artifact and
// yields the links keep accepts. An artifact path that exists but is not a
// regular file ends the sequence with ErrArtifactNotRegular.
func (c *Computer) bySourceArtifact(keep func(entry tree.FileEntry, artifact fs.FileInfo, exists bool) bool) iter.Seq2[recovery.Link, error] {
	return func(yield func(recovery.Link, error) bool) {
		for entry, err := range c.source.Scan(c.mapper.SourceRoot()) {
			if err != nil {
				yield(recovery.Link{}, err)
				return
			}

			link := c.mapper.Link(entry.Path)
			artifact, err := c.fs.Stat(link.Recovery)
			exists := err == nil
			if err != nil && !fs.IsNotExist(err) {
				yield(recovery.Link{}, fmt.Errorf("checking artifact %s: %w", link.Recovery, err))
				return
			}
			if exists && !artifact.IsRegular() {
				// e.g. source x next to a source directory x.par2
				yield(recovery.Link{}, fmt.Errorf("artifact %s for %s: %w", link.Recovery, entry.Path, ErrArtifactNotRegular))
				return
			}

			if !keep(entry, artifact, exists) {
				continue
			}
			if !yield(link, nil) {
				return
			}
		}
	}
}

// isBelow reports whether path lies strictly inside root.
func isBelow(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	return filepath.IsLocal(rel)
}
