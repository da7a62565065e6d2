package worker

import "context"

// provides a bounded in-memory job queue between the tree walk and the
// engine workers.

type Queue struct {
	ch chan Job
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Job, size)}
}

// Push blocks until the job is queued or ctx is done.
func (q *Queue) Push(ctx context.Context, j Job) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case q.ch <- j:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close tells consumers no more jobs will arrive. Only the producer calls it.
func (q *Queue) Close() {
	close(q.ch)
}

// Pop returns the next job, or false once the queue is closed and drained
// or ctx is done.
func (q *Queue) Pop(ctx context.Context) (Job, bool) {
	if ctx.Err() != nil {
		return Job{}, false
	}
	select {
	case j, ok := <-q.ch:
		return j, ok
	case <-ctx.Done():
		return Job{}, false
	}
}
