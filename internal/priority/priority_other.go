//go:build !unix && !windows

package priority

import "errors"

func Lower() error {
	return errors.New("lowering priority is not supported on this platform, use --fast")
}
