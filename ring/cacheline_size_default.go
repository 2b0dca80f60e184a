//go:build !(darwin && arm64)

package ring

// CacheLineSize is 64 bytes on every supported ISA except Apple Silicon.
const CacheLineSize = 64
