// ============================================================================
// SPSC BYTE-RING CORRECTNESS VALIDATION SUITE
// ============================================================================
//
// Test categories:
//   - Constructor validation: power-of-two capacity, alignment checks
//   - Round-trip law: bytes written equal bytes read, in order
//   - Wraparound logic: tail-skip-and-base-advance across window boundaries
//   - Boundary behaviors: exact-fit writes, full-ring spinning
//   - Concurrent correctness: one producer goroutine, one consumer goroutine
//
// ============================================================================

package ring

import (
	"encoding/binary"
	"sync"
	"testing"
	"time"
)

func mustNewRing(t *testing.T, capacity uint64) *Ring {
	t.Helper()
	r, _, err := New(capacity)
	if err != nil {
		t.Fatalf("New(%d): %v", capacity, err)
	}
	return r
}

// ── Constructor validation ─────────────────────────────────────────────

func TestInitRejectsNonPowerOfTwo(t *testing.T) {
	buf := make([]byte, 256)
	var r Ring
	if err := r.Init(buf, 100); err != ErrCapacityNotPowerOfTwo {
		t.Fatalf("got %v, want ErrCapacityNotPowerOfTwo", err)
	}
}

func TestInitRejectsMisalignedBuffer(t *testing.T) {
	buf := make([]byte, 256+CacheLineSize)
	aligned := alignSlice(buf, CacheLineSize)
	// offset by one byte to break alignment
	misaligned := aligned[1:]
	var r Ring
	if err := r.Init(misaligned, 64); err != ErrBufferMisaligned {
		t.Fatalf("got %v, want ErrBufferMisaligned", err)
	}
}

func TestNewValidCapacities(t *testing.T) {
	for _, cap := range []uint64{1, 2, 4, 16, 64, 1024, 65536} {
		r := mustNewRing(t, cap)
		if r.capacity != cap {
			t.Errorf("capacity = %d, want %d", r.capacity, cap)
		}
	}
}

// ── Scenario 1: single small aligned record ────────────────────────────

func TestSingleRecordRoundTrip(t *testing.T) {
	r := mustNewRing(t, 64)

	dst := r.PrepareWrite(4, 4)
	binary.LittleEndian.PutUint32((*[4]byte)(dst)[:], 0x11223344)
	r.FinishWrite()

	src := r.PrepareRead(4, 4)
	got := binary.LittleEndian.Uint32((*[4]byte)(src)[:])
	r.FinishRead()

	if got != 0x11223344 {
		t.Fatalf("got %#x, want %#x", got, 0x11223344)
	}
	if r.writer.pos != 4 || r.reader.pos != 4 {
		t.Fatalf("pos mismatch: writer.pos=%d reader.pos=%d", r.writer.pos, r.reader.pos)
	}
	snap := r.Snapshot()
	if snap.Written != 4 || snap.Consumed != 4 {
		t.Fatalf("snapshot mismatch: %+v", snap)
	}
}

// ── Scenario 2: 16 x 4-byte records fill a 64-byte ring exactly; the 17th wraps ──

func TestWrapAcrossWindow(t *testing.T) {
	r := mustNewRing(t, 64)

	for i := uint32(0); i < 16; i++ {
		dst := r.PrepareWrite(4, 4)
		binary.LittleEndian.PutUint32((*[4]byte)(dst)[:], i)
		r.FinishWrite()
	}
	// An exact fit ends on the window boundary without wrapping.
	if r.writer.base != 0 || r.writer.pos != 64 {
		t.Fatalf("writer state after exact fill: base=%d pos=%d", r.writer.base, r.writer.pos)
	}

	for i := uint32(0); i < 16; i++ {
		src := r.PrepareRead(4, 4)
		got := binary.LittleEndian.Uint32((*[4]byte)(src)[:])
		r.FinishRead()
		if got != i {
			t.Fatalf("record %d: got %d", i, got)
		}
	}

	// The next record no longer fits in the current window, so both sides
	// skip to a fresh one.
	dst := r.PrepareWrite(4, 4)
	binary.LittleEndian.PutUint32((*[4]byte)(dst)[:], 16)
	r.FinishWrite()
	if r.writer.base != 64 || r.writer.pos != 4 {
		t.Fatalf("writer state after wrap: base=%d pos=%d", r.writer.base, r.writer.pos)
	}

	src := r.PrepareRead(4, 4)
	got := binary.LittleEndian.Uint32((*[4]byte)(src)[:])
	r.FinishRead()
	if got != 16 {
		t.Fatalf("record 16: got %d", got)
	}
	if r.reader.base != 64 {
		t.Fatalf("reader.base = %d, want 64", r.reader.base)
	}
}

// ── Scenario 3: alignment padding is silently dropped, never observable ─

func TestAlignmentPaddingIsSkipped(t *testing.T) {
	r := mustNewRing(t, 64)

	b := r.PrepareWrite(1, 1)
	*(*byte)(b) = 0xAA
	r.FinishWrite()

	d := r.PrepareWrite(8, 8)
	*(*uint64)(d) = 0xDEADBEEFCAFEBABE
	r.FinishWrite()

	if r.writer.pos != 16 {
		t.Fatalf("writer.pos = %d, want 16 (offset 8, size 8)", r.writer.pos)
	}

	got1 := r.PrepareRead(1, 1)
	if *(*byte)(got1) != 0xAA {
		t.Fatalf("first byte mismatch")
	}
	r.FinishRead()

	got2 := r.PrepareRead(8, 8)
	if *(*uint64)(got2) != 0xDEADBEEFCAFEBABE {
		t.Fatalf("second record mismatch")
	}
	r.FinishRead()
}

// ── Scenario 4: exact fill then wrap, producer spins until consumer frees ─

func TestProducerSpinsUntilConsumerCatchesUp(t *testing.T) {
	r := mustNewRing(t, 16)

	d := r.PrepareWrite(12, 4)
	*(*[12]byte)(d) = [12]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	r.FinishWrite()

	done := make(chan struct{})
	go func() {
		d2 := r.PrepareWrite(8, 8) // must wrap, then spin until reader frees 12 bytes
		*(*[8]byte)(d2) = [8]byte{9, 9, 9, 9, 9, 9, 9, 9}
		r.FinishWrite()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second write completed before the first read freed space")
	case <-time.After(20 * time.Millisecond):
	}

	src := r.PrepareRead(12, 4)
	_ = src
	r.FinishRead()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second write never unblocked after the read freed space")
	}

	if r.writer.base != 16 || r.writer.pos != 8 {
		t.Fatalf("writer state after unblocked wrap: base=%d pos=%d", r.writer.base, r.writer.pos)
	}
}

// ── Concurrent correctness: one producer goroutine, one consumer goroutine ─

func TestConcurrentProducerConsumer(t *testing.T) {
	const n = 20000
	r := mustNewRing(t, 1024)

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := uint32(0); i < n; i++ {
			d := r.PrepareWrite(4, 4)
			binary.LittleEndian.PutUint32((*[4]byte)(d)[:], i)
			r.FinishWrite()
		}
	}()

	var mismatch uint32
	go func() {
		defer wg.Done()
		<-start
		for i := uint32(0); i < n; i++ {
			s := r.PrepareRead(4, 4)
			got := binary.LittleEndian.Uint32((*[4]byte)(s)[:])
			r.FinishRead()
			if got != i {
				mismatch = i
			}
		}
	}()

	close(start)
	wg.Wait()

	if mismatch != 0 {
		t.Fatalf("order violated at record %d", mismatch)
	}
}

// ── Idempotence ──────────────────────────────────────────────────────────

func TestResetMatchesFreshInit(t *testing.T) {
	r := mustNewRing(t, 64)
	d := r.PrepareWrite(4, 4)
	*(*uint32)(d) = 7
	r.FinishWrite()
	_ = r.PrepareRead(4, 4)
	r.FinishRead()

	r.Reset()
	if r.writer.pos != 0 || r.reader.pos != 0 || r.writer.base != 0 || r.reader.base != 0 {
		t.Fatalf("state not reset: %+v / %+v", r.writer, r.reader)
	}
	if snap := r.Snapshot(); snap.Written != 0 || snap.Consumed != 0 {
		t.Fatalf("cursors not reset: %+v", snap)
	}
}

// ── Panics on programmer error ──────────────────────────────────────────

func TestPrepareWritePanicsWhenRecordExceedsCapacity(t *testing.T) {
	r := mustNewRing(t, 16)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized record")
		}
	}()
	r.PrepareWrite(20, 1)
}

func TestPrepareWritePanicsOnNonPowerOfTwoAlignment(t *testing.T) {
	r := mustNewRing(t, 16)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-power-of-two alignment")
		}
	}()
	r.PrepareWrite(4, 3)
}
