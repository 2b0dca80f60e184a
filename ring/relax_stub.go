//go:build !amd64 && !arm64 || noasm || nocgo

package ring

// cpuRelax is a no-op on architectures without a dedicated spin-wait hint,
// or when cgo/asm is disabled. The compiler eliminates the empty inlined
// call entirely, so the spin loop behaves exactly as the plain C++ for(;;)
// loop it is derived from.
//
//go:nosplit
//go:inline
func cpuRelax() {}
