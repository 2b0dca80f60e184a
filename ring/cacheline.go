// cacheline.go — compile-time cache-line size and its runtime cross-check.
//
// The ring's side-state and shared-cursor blocks are padded to this constant
// so the producer's cache line, the consumer's cache line, and the two
// shared cursors never share a coherence unit. Getting the constant wrong on
// a heterogeneous fleet (64-byte x86 vs. 128-byte Apple Silicon) silently
// reintroduces false sharing, so Init cross-checks it against the OS-probed
// value and refuses to start on a mismatch. CacheLineSize itself is set per
// platform in cacheline_size_*.go.

package ring

// cacheLineSizeUnknown is returned by probeCacheLineSize when the platform
// exposes no way to query the L1 data-cache line size.
const cacheLineSizeUnknown = 0
