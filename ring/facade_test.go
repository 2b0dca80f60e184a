package ring

import "testing"

type tick struct {
	Seq   uint64
	Price int64
	Qty   int32
	_     [4]byte // pad to 8-byte alignment, mirrors struct layout expectations
}

func TestTypedWriteReadRoundTrip(t *testing.T) {
	r := mustNewRing(t, 256)

	want := tick{Seq: 42, Price: -100, Qty: 7}
	Write(r, want)
	got := Read[tick](r)

	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTypedWriteReadMultipleRecords(t *testing.T) {
	r := mustNewRing(t, 256)

	for i := uint64(0); i < 8; i++ {
		Write(r, tick{Seq: i, Price: int64(i) * 10, Qty: int32(i)})
	}
	for i := uint64(0); i < 8; i++ {
		got := Read[tick](r)
		if got.Seq != i {
			t.Fatalf("record %d: got Seq=%d", i, got.Seq)
		}
	}
}

func TestWriteArrayReadArrayRoundTrip(t *testing.T) {
	r := mustNewRing(t, 256)

	values := []uint32{1, 2, 3, 4, 5, 6}
	WriteArray(r, values)
	got := ReadArray[uint32](r, len(values))

	if len(got) != len(values) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("index %d: got %d, want %d", i, got[i], values[i])
		}
	}
}

func TestWriteArrayEmptySlice(t *testing.T) {
	r := mustNewRing(t, 64)

	WriteArray[uint32](r, nil)
	got := ReadArray[uint32](r, 0)
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestTypedFacadeWrapsAcrossWindow(t *testing.T) {
	r := mustNewRing(t, 32)

	// 20 records of 4 bytes exceed the 32-byte ring, so the producer runs in
	// its own goroutine and waits for the reader to free space.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := uint32(0); i < 20; i++ {
			Write(r, i)
		}
	}()
	for i := uint32(0); i < 20; i++ {
		if got := Read[uint32](r); got != i {
			t.Fatalf("record %d: got %d", i, got)
		}
	}
	<-done
}
