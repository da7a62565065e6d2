//go:build windows

package priority

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Lower moves the process to the idle priority class, which child
// processes inherit.
func Lower() error {
	if err := windows.SetPriorityClass(windows.CurrentProcess(), windows.IDLE_PRIORITY_CLASS); err != nil {
		return fmt.Errorf("setting priority class: %w", err)
	}
	return nil
}
