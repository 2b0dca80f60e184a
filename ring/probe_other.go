//go:build !linux && !darwin

package ring

// probeCacheLineSize has no portable implementation on this platform; the
// original C++ header falls back to the same sentinel for any OS besides
// Linux and Apple.
func probeCacheLineSize() uint64 {
	return cacheLineSizeUnknown
}
