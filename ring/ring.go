// ════════════════════════════════════════════════════════════════════════════════════════════════
// LOCK-FREE SPSC BYTE-RING BUFFER
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: byteqring
// Component: variable-size, aligned record transport between one producer and one consumer
//
// Description:
//   Wait-free coordination protocol over a caller-supplied contiguous byte region. The region may
//   be a normal heap allocation or a shared-memory segment mapped independently by two cooperating
//   processes — Init lays out producer state, consumer state, and the two shared cursors so a
//   second party can re-bind its own local pointer after the fact with ReattachWriter/ReattachReader.
//
// Architecture overview:
//   - Two monotonically growing shared cursors (W, R), never taken modulo capacity
//   - Per-side cached {buffer, pos, end, base, size}, cache-line isolated from each other
//   - "Skip the tail, wrap at base" policy: no record ever crosses a window boundary
//   - Records aligned within the buffer so the consumer may reinterpret bytes as typed values
//
// Safety model:
//   - Single producer, single consumer only — concurrent callers on either side is undefined
//   - No record framing: producer and consumer must agree out-of-band on sizes and alignments
//   - No torn-write recovery, no durability: a crashed or killed party leaves
//     the other blocked forever with no detection
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package ring

import (
	"errors"
	"sync/atomic"
	"unsafe"
)

// ErrCapacityNotPowerOfTwo is returned by Init when capacity is not a power of two.
// Init also returns it when the buffer is shorter than capacity.
var ErrCapacityNotPowerOfTwo = errors.New("ring: capacity must be a power of two")

// ErrBufferMisaligned is returned by Init when the buffer's start address is
// not aligned to CacheLineSize.
var ErrBufferMisaligned = errors.New("ring: buffer is not cache-line aligned")

// ErrCacheLineMismatch is returned by Init when the OS-probed L1 data-cache
// line size disagrees with the compile-time CacheLineSize constant.
var ErrCacheLineMismatch = errors.New("ring: runtime cache line size disagrees with compile-time constant")

// ════════════════════════════════════════════════════════════════════════════════════════════════
// SIDE STATE
// ════════════════════════════════════════════════════════════════════════════════════════════════

// writerState is the producer's private, cache-line isolated cursor window.
// Only the producer goroutine/thread ever touches these fields.
type writerState struct {
	buffer unsafe.Pointer // this process's view of the backing buffer
	pos    uint64         // next offset to write within the current window
	end    uint64         // upper bound of the window known safe to write
	base   uint64         // bytes retired before the current window
	size   uint64         // ring capacity, mirrors Ring.capacity

	_ [CacheLineSize]byte // isolate from readerState and from wCursor/rCursor
}

// readerState is the consumer's symmetric counterpart to writerState.
type readerState struct {
	buffer unsafe.Pointer
	pos    uint64
	end    uint64
	base   uint64
	size   uint64

	_ [CacheLineSize]byte
}

// ════════════════════════════════════════════════════════════════════════════════════════════════
// SHARED CURSORS
// ════════════════════════════════════════════════════════════════════════════════════════════════

// sharedCursor is one of the two monotonically growing shared counters (W or R),
// isolated on its own cache line so producer and consumer updates never collide.
//
// Go's sync/atomic has no separate acquire/release knobs: Load/Store on an
// atomic.Uint64 compile to the platform's strongest barrier, which is at
// least as strong as the acquire/release pair the protocol requires.
type sharedCursor struct {
	v atomic.Uint64

	_ [CacheLineSize - 8]byte
}

func (c *sharedCursor) load() uint64   { return c.v.Load() }
func (c *sharedCursor) store(n uint64) { c.v.Store(n) }

// ════════════════════════════════════════════════════════════════════════════════════════════════
// RING
// ════════════════════════════════════════════════════════════════════════════════════════════════

// Ring is the wait-free SPSC coordination object. Its field order is the
// shared-memory wire contract: writer state, reader state, writer cursor,
// reader cursor. Only writer/reader buffer pointers are address-space-local;
// every other field is position-independent and may live in memory shared
// verbatim between two processes.
type Ring struct {
	writer writerState
	reader readerState

	wCursor sharedCursor // bytes the producer has published (release-stored)
	rCursor sharedCursor // bytes the consumer has consumed (release-stored)

	capacity uint64
	// NoAlign collapses per-record alignment to 1 byte. Benchmarking-only:
	// disables the implicit-object-lifetime guarantee the typed façade relies on.
	NoAlign bool
}

// New allocates a Ring and a capacity-byte buffer, then initializes it.
// The returned buffer is cache-line aligned: New allocates CacheLineSize
// extra bytes and starts the buffer at the first aligned address within
// them. For shared-memory deployments, use Init with a caller-supplied,
// explicitly aligned region instead.
func New(capacity uint64) (*Ring, []byte, error) {
	buf := make([]byte, capacity+CacheLineSize)
	aligned := alignSlice(buf, CacheLineSize)
	r := &Ring{}
	if err := r.Init(aligned, capacity); err != nil {
		return nil, nil, err
	}
	return r, aligned, nil
}

// alignSlice returns the sub-slice of buf starting at the next address
// aligned to 'to', with at least 'cap(buf)-to' bytes remaining.
func alignSlice(buf []byte, to uintptr) []byte {
	if len(buf) == 0 {
		return buf
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	pad := (to - addr%to) % to
	return buf[pad:]
}

// Init binds the ring to buffer (which must be at least capacity bytes and
// aligned to CacheLineSize) and resets all state. capacity must be a power
// of two. Init probes the OS for the real L1 data-cache line size and
// refuses to start if it disagrees with the compile-time CacheLineSize —
// a guard against miscompiled binaries on heterogeneous hardware.
func (r *Ring) Init(buffer []byte, capacity uint64) error {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		return ErrCapacityNotPowerOfTwo
	}
	if uint64(len(buffer)) < capacity {
		return ErrCapacityNotPowerOfTwo
	}
	addr := uintptr(unsafe.Pointer(&buffer[0]))
	if addr%uintptr(CacheLineSize) != 0 {
		return ErrBufferMisaligned
	}
	if probed := probeCacheLineSize(); probed != cacheLineSizeUnknown && probed != uint64(CacheLineSize) {
		return ErrCacheLineMismatch
	}

	r.capacity = capacity
	r.Reset()
	r.ReattachWriter(buffer)
	r.ReattachReader(buffer)
	r.writer.size, r.reader.size = capacity, capacity
	r.writer.end = capacity
	return nil
}

// ReattachWriter rebinds the producer's local view of the backing buffer.
// Only the buffer pointer is address-space-local; call this once per
// attaching process after mapping shared memory at its own virtual address.
func (r *Ring) ReattachWriter(buffer []byte) {
	if len(buffer) == 0 {
		r.writer.buffer = nil
		return
	}
	r.writer.buffer = unsafe.Pointer(&buffer[0])
}

// ReattachReader is the consumer-side symmetric counterpart to ReattachWriter.
func (r *Ring) ReattachReader(buffer []byte) {
	if len(buffer) == 0 {
		r.reader.buffer = nil
		return
	}
	r.reader.buffer = unsafe.Pointer(&buffer[0])
}

// Reset zeroes all counters and side state as if the ring had just been
// initialized with the same buffer and capacity. Must not be called while
// either side is active: there is no coordination between Reset and a
// concurrent PrepareWrite/PrepareRead, so a racing attach would observe a
// cursor jumping backwards.
func (r *Ring) Reset() {
	r.assertResettable()
	r.writer = writerState{buffer: r.writer.buffer, end: r.capacity, size: r.capacity}
	r.reader = readerState{buffer: r.reader.buffer, size: r.capacity}
	r.wCursor.store(0)
	r.rCursor.store(0)
}

// ════════════════════════════════════════════════════════════════════════════════════════════════
// ALIGNMENT
// ════════════════════════════════════════════════════════════════════════════════════════════════

// align rounds pos up to the next multiple of alignment. alignment must be
// a power of two; this is a programmer-error precondition checked by callers
// (PrepareWrite/PrepareRead panic rather than silently misalign).
func align(pos, alignment uint64) uint64 {
	return (pos + alignment - 1) &^ (alignment - 1)
}

// ════════════════════════════════════════════════════════════════════════════════════════════════
// PRODUCER OPERATIONS
// ════════════════════════════════════════════════════════════════════════════════════════════════

// PrepareWrite returns a pointer to size bytes aligned to alignment within
// the ring, blocking (via a CPU spin, never a syscall) until the consumer
// has retired enough space. size and alignment must exactly match the
// consumer's next PrepareRead call, by convention external to the ring.
//
// Panics if the record cannot possibly fit in the ring (s+(a-1) > capacity)
// or if alignment is not a power of two — both are programmer errors.
func (r *Ring) PrepareWrite(size, alignment uint64) unsafe.Pointer {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		panic("ring: alignment must be a power of two")
	}
	if size+alignment-1 > r.capacity {
		panic("ring: record does not fit in ring capacity")
	}
	a := alignment
	if r.NoAlign {
		a = 1
	}

	pos := align(r.writer.pos, a)
	end := pos + size

	if end > r.writer.end {
		pos, end = r.acquireWriteSpace(pos, end)
	}

	r.writer.pos = end
	return unsafe.Add(r.writer.buffer, pos)
}

// acquireWriteSpace implements the writer side of the space-acquisition
// loop: skip the unused tail of the window on wrap, then spin on the
// consumer's published cursor until enough of the new window is free.
func (r *Ring) acquireWriteSpace(pos, end uint64) (uint64, uint64) {
	if end > r.writer.size {
		end -= pos
		pos = 0
		r.writer.base += r.writer.size
	}
	for {
		rpos := r.rCursor.load() // acquire: makes the reader's frees visible
		available := rpos - r.writer.base + r.writer.size
		if int64(available) >= int64(end) {
			r.writer.end = min(available, r.writer.size)
			return pos, end
		}
		cpuRelax()
	}
}

// FinishWrite publishes the producer's new cursor with a release store. All
// writes into the region returned by PrepareWrite happen-before any
// consumer load that acquires the new value of this cursor.
func (r *Ring) FinishWrite() {
	r.wCursor.store(r.writer.base + r.writer.pos)
}

// ════════════════════════════════════════════════════════════════════════════════════════════════
// CONSUMER OPERATIONS
// ════════════════════════════════════════════════════════════════════════════════════════════════

// PrepareRead is the consumer's symmetric counterpart to PrepareWrite. The
// caller must supply the exact (size, alignment) the producer used for this
// record, or the two sides' wrap/alignment decisions diverge silently.
func (r *Ring) PrepareRead(size, alignment uint64) unsafe.Pointer {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		panic("ring: alignment must be a power of two")
	}
	if size+alignment-1 > r.capacity {
		panic("ring: record does not fit in ring capacity")
	}
	a := alignment
	if r.NoAlign {
		a = 1
	}

	pos := align(r.reader.pos, a)
	end := pos + size

	if end > r.reader.end {
		pos, end = r.acquireReadSpace(pos, end)
	}

	r.reader.pos = end
	return unsafe.Add(r.reader.buffer, pos)
}

// acquireReadSpace is the reader-side space-acquisition loop.
func (r *Ring) acquireReadSpace(pos, end uint64) (uint64, uint64) {
	if end > r.reader.size {
		end -= pos
		pos = 0
		r.reader.base += r.reader.size
	}
	for {
		wpos := r.wCursor.load() // acquire: makes the writer's publishes visible
		available := wpos - r.reader.base
		if int64(available) >= int64(end) {
			r.reader.end = min(available, r.reader.size)
			return pos, end
		}
		cpuRelax()
	}
}

// FinishRead publishes the consumer's new cursor with a release store,
// making the freed space visible to the producer's next space check.
func (r *Ring) FinishRead() {
	r.rCursor.store(r.reader.base + r.reader.pos)
}

// ════════════════════════════════════════════════════════════════════════════════════════════════
// DIAGNOSTICS
// ════════════════════════════════════════════════════════════════════════════════════════════════

// State is a point-in-time snapshot for debugging. It
// is safe to call from either side or a third-party observer thread; the
// values may be stale the instant they are read.
type State struct {
	Capacity uint64
	Written  uint64 // W
	Consumed uint64 // R
	Occupied uint64 // W - R, signed-interpreted
}

// Snapshot reads both shared cursors and computes current occupancy.
func (r *Ring) Snapshot() State {
	w := r.wCursor.load()
	rd := r.rCursor.load()
	return State{
		Capacity: r.capacity,
		Written:  w,
		Consumed: rd,
		Occupied: uint64(int64(w - rd)),
	}
}
