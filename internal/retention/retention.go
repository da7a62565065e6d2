// Package retention removes recovery artifacts that are no longer wanted,
// together with the volume files the parity engine wrote next to them.
package retention

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raoulx24/par2mirror/internal/fs"
	"github.com/raoulx24/par2mirror/internal/logging"
	"github.com/raoulx24/par2mirror/internal/recovery"
)

type Engine struct {
	fs  fs.FS
	log logging.Logger
}

// New creates a retention engine. A nil filesystem means the local OS filesystem.
func New(filesystem fs.FS, log logging.Logger) *Engine {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Engine{
		fs:  filesystem,
		log: log,
	}
}

// ArtifactSet is a base artifact plus its volume files.
type ArtifactSet struct {
	Base    string
	Volumes []string
}

// Purge deletes the base artifact at recoveryPath and all of its volume
// files. Volumes go first, so an interrupted purge can leave volumes
// without a base but never a base without its volumes. The first failed
// removal is returned.
func (e *Engine) Purge(ctx context.Context, recoveryPath string) error {
	set, err := e.scanArtifactSet(recoveryPath)
	if err != nil {
		return err
	}

	for _, vol := range set.Volumes {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.log.Debug("removing volume", "path", vol)
		if err := e.fs.Remove(vol); err != nil {
			return fmt.Errorf("removing volume %s: %w", vol, err)
		}
	}

	e.log.Debug("removing artifact", "path", set.Base)
	if err := e.fs.Remove(set.Base); err != nil {
		return fmt.Errorf("removing artifact %s: %w", set.Base, err)
	}
	return nil
}

// scanArtifactSet finds the volume siblings of a base artifact.
func (e *Engine) scanArtifactSet(recoveryPath string) (ArtifactSet, error) {
	folder := filepath.Dir(recoveryPath)
	entries, err := e.fs.ReadDir(folder)
	if err != nil {
		return ArtifactSet{}, fmt.Errorf("reading folder: %w", err)
	}

	set := ArtifactSet{Base: recoveryPath}
	volumes := recovery.VolumePattern(filepath.Base(recoveryPath))
	for _, ent := range entries {
		if ent.IsDir() || !volumes.MatchString(ent.Name()) {
			continue
		}
		set.Volumes = append(set.Volumes, filepath.Join(folder, ent.Name()))
	}

	return set, nil
}
