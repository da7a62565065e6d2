//go:build !unix && !windows

package fs

import "os"

func fileIDOf(_ string, _ os.FileInfo) FileID {
	return FileID{}
}
