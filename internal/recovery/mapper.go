// Package recovery maps source files to their PAR2 recovery artifacts and back.
//
// A source file at SourceRoot/rel has its base artifact at
// RecoveryRoot/rel.par2. Large inputs additionally get volume files next to
// the base artifact, see VolumePattern.
package recovery

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Ext is the suffix every recovery artifact carries.
const Ext = ".par2"

// Link pairs a source file with its base recovery artifact.
type Link struct {
	Source   string
	Recovery string
}

// Mapper translates paths between a source tree and its recovery tree.
type Mapper struct {
	sourceRoot   string
	recoveryRoot string
}

// NewMapper returns a Mapper for the two roots. Both should be absolute.
func NewMapper(sourceRoot, recoveryRoot string) Mapper {
	return Mapper{
		sourceRoot:   filepath.Clean(sourceRoot),
		recoveryRoot: filepath.Clean(recoveryRoot),
	}
}

func (m Mapper) SourceRoot() string   { return m.sourceRoot }
func (m Mapper) RecoveryRoot() string { return m.recoveryRoot }

// RecoveryPath returns the base artifact path for a file under the source
// root. It panics if sourcePath is not below the source root.
func (m Mapper) RecoveryPath(sourcePath string) string {
	rel, ok := relativeTo(m.sourceRoot, sourcePath)
	if !ok {
		panic(fmt.Sprintf("recovery: %q is not below source root %q", sourcePath, m.sourceRoot))
	}
	return filepath.Join(m.recoveryRoot, rel) + Ext
}

// SourcePath is the inverse of RecoveryPath. It is only meaningful for base
// artifacts and panics for paths outside the recovery root or without the
// artifact suffix.
func (m Mapper) SourcePath(recoveryPath string) string {
	rel, ok := relativeTo(m.recoveryRoot, recoveryPath)
	if !ok {
		panic(fmt.Sprintf("recovery: %q is not below recovery root %q", recoveryPath, m.recoveryRoot))
	}
	if !IsArtifactName(rel) {
		panic(fmt.Sprintf("recovery: %q has no %s suffix", recoveryPath, Ext))
	}
	return filepath.Join(m.sourceRoot, rel[:len(rel)-len(Ext)])
}

// Link builds the pair for a source file.
func (m Mapper) Link(sourcePath string) Link {
	return Link{Source: sourcePath, Recovery: m.RecoveryPath(sourcePath)}
}

// relativeTo strips root and its trailing separator from path.
func relativeTo(root, path string) (string, bool) {
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(path, prefix) || len(path) == len(prefix) {
		return "", false
	}
	return path[len(prefix):], true
}
