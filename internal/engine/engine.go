// Package engine runs the external parity tool that produces and checks
// recovery artifacts. par2mirror never reads or writes PAR2 data itself.
package engine

import (
	"context"

	"github.com/raoulx24/par2mirror/internal/recovery"
)

// Engine is the contract par2mirror needs from a parity tool.
type Engine interface {
	// Create writes link.Recovery (and any volume files) for link.Source.
	// Paths inside the artifact are stored relative to baseDir.
	Create(ctx context.Context, link recovery.Link, baseDir string, redundancy int) error
	// Verify reports whether link.Source matches its artifact. A mismatch
	// is (false, nil); an error means the check could not be run.
	Verify(ctx context.Context, link recovery.Link, baseDir string) (bool, error)
	// RepairCommand renders the command line an operator can run to repair
	// link.Source from its artifact.
	RepairCommand(link recovery.Link, baseDir string) string
}
