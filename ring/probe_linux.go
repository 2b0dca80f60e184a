//go:build linux

package ring

import (
	"os"
	"strconv"
	"strings"
)

// probeCacheLineSize reads the L1 data-cache line size from sysfs, the
// Linux analogue of sysconf(_SC_LEVEL1_DCACHE_LINESIZE) used by the
// original C++ implementation this package is derived from. Returns
// cacheLineSizeUnknown if the file is missing or unparsable.
func probeCacheLineSize() uint64 {
	const path = "/sys/devices/system/cpu/cpu0/cache/index0/coherency_line_size"
	data, err := os.ReadFile(path)
	if err != nil {
		return cacheLineSizeUnknown
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return cacheLineSizeUnknown
	}
	return n
}
