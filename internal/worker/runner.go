package worker

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/raoulx24/par2mirror/internal/recovery"
)

// contains the loop that pulls links from a relation and hands them to a
// job handler, either inline or through a pool of w.jobs goroutines.
// The first error stops the batch.

type handler func(ctx context.Context, job Job) error

func (w *Worker) run(ctx context.Context, links iter.Seq2[recovery.Link, error], handle handler) error {
	if w.jobs <= 1 {
		return runInline(ctx, links, handle)
	}
	return runPool(ctx, w.jobs, links, handle)
}

func runInline(ctx context.Context, links iter.Seq2[recovery.Link, error], handle handler) error {
	i := 0
	for link, err := range links {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := handle(ctx, Job{Index: i, Link: link}); err != nil {
			return err
		}
		i++
	}
	return nil
}

func runPool(ctx context.Context, jobs int, links iter.Seq2[recovery.Link, error], handle handler) error {
	g, gctx := errgroup.WithContext(ctx)
	q := NewQueue(jobs)

	g.Go(func() error {
		defer q.Close()
		i := 0
		for link, err := range links {
			if err != nil {
				return err
			}
			if !q.Push(gctx, Job{Index: i, Link: link}) {
				return gctx.Err()
			}
			i++
		}
		return nil
	})

	for range jobs {
		g.Go(func() error {
			for {
				job, ok := q.Pop(gctx)
				if !ok {
					return nil
				}
				if err := handle(gctx, job); err != nil {
					return err
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
