//go:build darwin

package ring

import "golang.org/x/sys/unix"

// probeCacheLineSize asks the kernel for hw.cachelinesize, the macOS
// equivalent of the sysctlbyname("hw.cachelinesize", ...) call in the
// original C++ header. Returns cacheLineSizeUnknown if the sysctl fails.
func probeCacheLineSize() uint64 {
	v, err := unix.SysctlUint32("hw.cachelinesize")
	if err != nil {
		return cacheLineSizeUnknown
	}
	return uint64(v)
}
