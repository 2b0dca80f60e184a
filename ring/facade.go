// facade.go — typed convenience helpers over the raw byte protocol.
//
// These compute (unsafe.Sizeof(T), unsafe.Alignof(T)) and hand the raw
// pointer back to the caller reinterpreted as *T. They add no semantics
// beyond PrepareWrite/PrepareRead — the raw operations remain the core, and
// callers free to bypass the façade entirely, exactly as
// daugaard::rb::RingBuffer::Write<T>/Read<T> are thin wrappers around
// PrepareWrite/PrepareRead in the original C++.
//
// T must be a fixed-layout, pointer-free type: the bytes may be read back
// by a different process than the one that wrote them, where any pointer
// field would be meaningless. The façade does not and cannot enforce this;
// it is the caller's contract to uphold.

package ring

import "unsafe"

// Write copies value into the ring, blocking until space is available, and
// publishes it. Equivalent to PrepareWrite + manual copy + FinishWrite.
func Write[T any](r *Ring, value T) {
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	align := uint64(unsafe.Alignof(zero))
	dst := r.PrepareWrite(size, align)
	*(*T)(dst) = value
	r.FinishWrite()
}

// Read blocks until a matching record is available, reinterprets it as *T,
// and publishes the consumption. The returned value is a copy; the
// underlying ring bytes may be overwritten by the producer immediately
// after FinishRead returns.
func Read[T any](r *Ring) T {
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	align := uint64(unsafe.Alignof(zero))
	src := r.PrepareRead(size, align)
	value := *(*T)(src)
	r.FinishRead()
	return value
}

// WriteArray copies count contiguous values of T into the ring as a single
// aligned record and publishes it in one FinishWrite.
func WriteArray[T any](r *Ring, values []T) {
	var zero T
	elemSize := uint64(unsafe.Sizeof(zero))
	align := uint64(unsafe.Alignof(zero))
	dst := r.PrepareWrite(elemSize*uint64(len(values)), align)
	if len(values) > 0 {
		out := unsafe.Slice((*T)(dst), len(values))
		copy(out, values)
	}
	r.FinishWrite()
}

// ReadArray reads count contiguous values of T published as a single record.
func ReadArray[T any](r *Ring, count int) []T {
	var zero T
	elemSize := uint64(unsafe.Sizeof(zero))
	align := uint64(unsafe.Alignof(zero))
	src := r.PrepareRead(elemSize*uint64(count), align)
	out := make([]T, count)
	if count > 0 {
		copy(out, unsafe.Slice((*T)(src), count))
	}
	r.FinishRead()
	return out
}
