//go:build amd64 && !noasm && !nocgo

package ring

/*
#ifdef __x86_64__
static inline void ring_cpu_pause() {
    __asm__ __volatile__("pause" ::: "memory");
}
#else
#error "this file requires amd64"
#endif
*/
import "C"

// cpuRelax emits the x86-64 PAUSE instruction inside the space-acquisition
// spin loop. PAUSE is a pipeline hint, not an OS yield, so calling it here
// does not turn the wait-free loop into a blocking one: the loop still
// exits the instant the other side's cursor makes it true.
//
//go:nosplit
//go:inline
func cpuRelax() {
	C.ring_cpu_pause()
}
