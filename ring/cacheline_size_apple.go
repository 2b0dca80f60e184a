//go:build darwin && arm64

package ring

// CacheLineSize is 128 bytes on Apple Silicon. std::hardware_destructive_interference_size
// is unreliable here, which is exactly why Init probes the real value at startup
// instead of trusting the compile-time constant alone.
const CacheLineSize = 128
