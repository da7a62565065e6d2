//go:build unix && !linux

package priority

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Lower sets niceness 19 for the whole process. There is no portable I/O
// class on these systems, so I/O priority is left alone.
func Lower() error {
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, Niceness); err != nil {
		return fmt.Errorf("setting niceness: %w", err)
	}
	return nil
}
