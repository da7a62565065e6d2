package worker

import "github.com/raoulx24/par2mirror/internal/recovery"

// Job is one link handed to the engine.
type Job struct {
	Index int
	Link  recovery.Link
}
