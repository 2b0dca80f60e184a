// ═══════════════════════════════════════════════════════════════════════════════════════════════
// ringstress — long-running produced/consumed stream equality check
// ───────────────────────────────────────────────────────────────────────────────────────────────
// Pushes a large number of randomly sized, randomly aligned records through a ring while hashing
// both the producer's and the consumer's byte stream with SHA3-256, then compares the two digests.
// A mismatch means bytes were dropped, duplicated, or reordered — a coordination bug in the ring.
// ═══════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"flag"
	"math/rand"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/crypto/sha3"

	"byteqring/diag"
	"byteqring/ring"
)

func main() {
	capacity := flag.Uint64("capacity", 1<<16, "ring capacity in bytes, must be a power of two")
	recordCount := flag.Int("count", 5_000_000, "number of records to transfer")
	seed := flag.Int64("seed", 1, "PRNG seed for record sizes and alignments")
	flag.Parse()

	r, _, err := ring.New(*capacity)
	if err != nil {
		diag.DropError("ringstress: create", err)
		os.Exit(1)
	}

	sizes := make([]uint32, *recordCount)
	aligns := make([]uint32, *recordCount)
	rng := rand.New(rand.NewSource(*seed))
	for i := range sizes {
		switch rng.Intn(4) {
		case 0:
			sizes[i], aligns[i] = 4, 4
		case 1:
			sizes[i], aligns[i] = 8, 8
		case 2:
			sizes[i], aligns[i] = uint32(1+rng.Intn(32)), 1
		default:
			sizes[i], aligns[i] = 16, 16
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	var producerDigest, consumerDigest [32]byte

	go func() {
		defer wg.Done()
		h := sha3.New256()
		scratch := make([]byte, 32)
		for i, size := range sizes {
			align := uint64(aligns[i])
			dst := r.PrepareWrite(uint64(size), align)
			for j := uint32(0); j < size; j++ {
				scratch[j] = byte(i) ^ byte(j)
			}
			out := unsafe.Slice((*byte)(dst), size)
			copy(out, scratch[:size])
			h.Write(out)
			r.FinishWrite()
		}
		copy(producerDigest[:], h.Sum(nil))
	}()

	go func() {
		defer wg.Done()
		h := sha3.New256()
		for i, size := range sizes {
			align := uint64(aligns[i])
			src := r.PrepareRead(uint64(size), align)
			in := unsafe.Slice((*byte)(src), size)
			h.Write(in)
			r.FinishRead()
		}
		copy(consumerDigest[:], h.Sum(nil))
	}()

	wg.Wait()

	if producerDigest != consumerDigest {
		diag.DropMessage("MISMATCH", "produced and consumed stream digests differ")
		os.Exit(1)
	}
	diag.DropMessage("OK", "streams match over "+flag.Lookup("count").Value.String()+" records")
}
