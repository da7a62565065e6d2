//go:build linux

package priority

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// ioprio_set(2) arguments, see linux/ioprio.h
const (
	ioprioWhoProcess = 1
	ioprioClassIdle  = 3
	ioprioClassShift = 13
)

// Lower sets niceness 19 and the idle I/O class. Linux keeps both per
// thread, so every thread of the process is adjusted; threads created later
// inherit from their creator.
func Lower() error {
	for _, tid := range threadIDs() {
		err := unix.Setpriority(unix.PRIO_PROCESS, tid, Niceness)
		if err != nil && !errors.Is(err, unix.ESRCH) {
			return fmt.Errorf("setting niceness of thread %d: %w", tid, err)
		}

		_, _, errno := unix.Syscall(unix.SYS_IOPRIO_SET, ioprioWhoProcess, uintptr(tid), ioprioClassIdle<<ioprioClassShift)
		if errno != 0 && errno != unix.ESRCH {
			return fmt.Errorf("setting io class of thread %d: %w", tid, errno)
		}
	}
	return nil
}

// threadIDs lists the threads of this process. Without procfs only the
// calling thread (0) is returned.
func threadIDs() []int {
	entries, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return []int{0}
	}
	tids := make([]int, 0, len(entries))
	for _, e := range entries {
		tid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		tids = append(tids, tid)
	}
	if len(tids) == 0 {
		return []int{0}
	}
	return tids
}
