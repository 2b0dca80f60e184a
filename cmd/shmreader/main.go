// ═══════════════════════════════════════════════════════════════════════════════════════════════
// shmreader — consumer side of a two-process shared-memory ring demo
// ───────────────────────────────────────────────────────────────────────────────────────────────
// Maps the same file shmwriter created, casts the header region as *ring.Ring, and rebinds only
// its own reader-side buffer pointer with ReattachReader. It never calls Init — doing so would
// re-zero cursors the writer may already have advanced — and never touches the writer side.
//
// Loads the same config.Config document as shmwriter so capacity and the shared memory path
// never have to be typed twice or drift between the two processes.
// ═══════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"encoding/binary"
	"flag"
	"os"
	"syscall"
	"unsafe"

	"byteqring/diag"
	"byteqring/ring"
	"byteqring/ring/config"
)

func headerSize() int64 {
	raw := int64(unsafe.Sizeof(ring.Ring{}))
	line := int64(ring.CacheLineSize)
	return (raw + line - 1) &^ (line - 1)
}

func main() {
	configPath := flag.String("config", "ring.json", "path to the ring configuration document")
	recordCount := flag.Uint64("count", 1_000_000, "number of 8-byte records to read")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		diag.DropError("shmreader: load config", err)
		os.Exit(1)
	}
	if cfg.SharedMemoryPath == "" {
		diag.DropMessage("shmreader", "config is missing shared_memory_path")
		os.Exit(1)
	}

	hdr := headerSize()
	total := hdr + int64(cfg.Capacity)

	file, err := os.OpenFile(cfg.SharedMemoryPath, os.O_RDWR, 0o666)
	if err != nil {
		diag.DropError("shmreader: open", err)
		os.Exit(1)
	}
	defer file.Close()

	mapped, err := syscall.Mmap(int(file.Fd()), 0, int(total), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		diag.DropError("shmreader: mmap", err)
		os.Exit(1)
	}
	defer syscall.Munmap(mapped)

	r := (*ring.Ring)(unsafe.Pointer(&mapped[0]))
	dataBuf := mapped[hdr:]
	r.ReattachReader(dataBuf)

	diag.DropMessage("READY", "consumer attached to "+cfg.SharedMemoryPath)

	var mismatches uint64
	for i := uint64(0); i < *recordCount; i++ {
		src := r.PrepareRead(8, 8)
		got := binary.LittleEndian.Uint64(unsafe.Slice((*byte)(src), 8))
		r.FinishRead()
		if got != i {
			mismatches++
		}
	}

	if mismatches != 0 {
		diag.DropMessage("MISMATCH", "sequence violated at least once")
		os.Exit(1)
	}
	diag.DropMessage("DONE", "consumer verified full sequence")
}
