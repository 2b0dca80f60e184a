//go:build arm64 && !noasm && !nocgo

package ring

/*
#ifdef __aarch64__
static inline void ring_cpu_yield() {
    __asm__ __volatile__("yield" ::: "memory");
}
#else
#error "this file requires arm64"
#endif
*/
import "C"

// cpuRelax emits the ARM64 YIELD instruction. Same rationale as the amd64
// variant: a pipeline hint, not a scheduler yield.
//
//go:nosplit
//go:inline
func cpuRelax() {
	C.ring_cpu_yield()
}
