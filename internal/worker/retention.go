package worker

import "context"

// defines the hook the worker uses to purge stale artifacts.
// *retention.Engine implements it.

type Retention interface {
	Purge(ctx context.Context, recoveryPath string) error
}
