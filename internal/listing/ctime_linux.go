//go:build linux

package listing

import (
	"time"

	"golang.org/x/sys/unix"
)

// createTime returns the birth time, or the epoch when the filesystem
// does not record one.
func createTime(path string) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return time.Unix(0, 0)
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Unix(0, 0)
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
