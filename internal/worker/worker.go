// Package worker runs the artifact lifecycle: it consumes a relation and,
// per link, creates, verifies, lists or purges recovery artifacts.
package worker

import (
	"context"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/raoulx24/par2mirror/internal/engine"
	"github.com/raoulx24/par2mirror/internal/fs"
	"github.com/raoulx24/par2mirror/internal/logging"
	"github.com/raoulx24/par2mirror/internal/recovery"
)

// Options configure a Worker.
type Options struct {
	// BaseDir is passed to the engine so artifacts store paths relative
	// to the source root.
	BaseDir    string
	Redundancy int
	// Jobs bounds concurrent engine runs. Values below 2 run inline.
	Jobs int
	// Out receives progress dots and listings, ErrOut verification reports.
	Out    io.Writer
	ErrOut io.Writer
}

// Worker applies lifecycle actions to the links of a relation.
type Worker struct {
	mu         sync.Mutex // serializes writes to out and errOut
	engine     engine.Engine
	retention  Retention
	fs         fs.FS
	log        logging.Logger
	baseDir    string
	redundancy int
	jobs       int
	out        io.Writer
	errOut     io.Writer
}

// New creates a worker. A nil filesystem means the local OS filesystem.
func New(eng engine.Engine, r Retention, filesystem fs.FS, log logging.Logger, opts Options) *Worker {
	log.Debug("creating worker", "jobs", opts.Jobs, "redundancy", opts.Redundancy)
	if filesystem == nil {
		filesystem = fs.New()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.ErrOut == nil {
		opts.ErrOut = io.Discard
	}
	return &Worker{
		engine:     eng,
		retention:  r,
		fs:         filesystem,
		log:        log,
		baseDir:    opts.BaseDir,
		redundancy: opts.Redundancy,
		jobs:       opts.Jobs,
		out:        opts.Out,
		errOut:     opts.ErrOut,
	}
}

// Create runs the engine for every link, printing one dot per artifact.
// The first failure aborts the batch.
func (w *Worker) Create(ctx context.Context, links iter.Seq2[recovery.Link, error]) (int, error) {
	var created atomic.Int64
	err := w.run(ctx, links, func(ctx context.Context, job Job) error {
		dir := filepath.Dir(job.Link.Recovery)
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("creating recovery directory %s: %w", dir, err)
		}
		w.log.Info("creating artifact", "source", job.Link.Source, "recovery", job.Link.Recovery)
		if err := w.engine.Create(ctx, job.Link, w.baseDir, w.redundancy); err != nil {
			return err
		}
		created.Add(1)
		w.progress()
		return nil
	})
	w.endProgress(created.Load())
	return int(created.Load()), err
}

// VerifyResult counts what Verify saw.
type VerifyResult struct {
	Checked int
	Failed  int
}

// Verify checks every link, printing one dot per file. Mismatches are
// reported on the error writer as "BAD <source>" followed by a repair
// command, and do not stop the batch. Only failures to run the engine do.
func (w *Worker) Verify(ctx context.Context, links iter.Seq2[recovery.Link, error]) (VerifyResult, error) {
	var checked, failed atomic.Int64
	err := w.run(ctx, links, func(ctx context.Context, job Job) error {
		ok, err := w.engine.Verify(ctx, job.Link, w.baseDir)
		if err != nil {
			return err
		}
		checked.Add(1)
		w.progress()
		if !ok {
			failed.Add(1)
			w.reportBad(job.Link)
		}
		return nil
	})
	w.endProgress(checked.Load())
	return VerifyResult{Checked: int(checked.Load()), Failed: int(failed.Load())}, err
}

// ListOutdated prints the recovery path of every link, one per line.
func (w *Worker) ListOutdated(links iter.Seq2[recovery.Link, error]) (int, error) {
	n := 0
	for link, err := range links {
		if err != nil {
			return n, err
		}
		w.mu.Lock()
		_, werr := fmt.Fprintln(w.out, link.Recovery)
		w.mu.Unlock()
		if werr != nil {
			return n, werr
		}
		n++
	}
	return n, nil
}

// DeleteOutdated purges the artifact of every link along with its volume
// files. It runs inline because it mutates the tree being walked.
func (w *Worker) DeleteOutdated(ctx context.Context, links iter.Seq2[recovery.Link, error]) (int, error) {
	n := 0
	err := runInline(ctx, links, func(ctx context.Context, job Job) error {
		w.log.Info("deleting artifact", "recovery", job.Link.Recovery)
		if err := w.retention.Purge(ctx, job.Link.Recovery); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func (w *Worker) progress() {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprint(w.out, ".")
}

func (w *Worker) endProgress(n int64) {
	if n == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out)
}

func (w *Worker) reportBad(link recovery.Link) {
	w.log.Info("verification failed", "source", link.Source, "recovery", link.Recovery)
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.errOut, "BAD %s\n    %s\n", link.Source, w.engine.RepairCommand(link, w.baseDir))
}
