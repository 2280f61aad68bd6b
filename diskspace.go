// FILE: diskspace.go
package log

import "syscall"

// statfsFreeMB reports free space on the filesystem containing dir, in
// megabytes. Returns 0 on any error rather than propagating, since
// heartbeat diagnostics must never block or fail the pipeline.
func statfsFreeMB(dir string) int64 {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(dir, &stat); err != nil {
		return 0
	}
	const mb = 1024 * 1024
	return int64(stat.Bavail) * int64(stat.Bsize) / mb
}
