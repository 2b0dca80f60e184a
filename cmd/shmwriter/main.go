// ═══════════════════════════════════════════════════════════════════════════════════════════════
// shmwriter — producer side of a two-process shared-memory ring demo
// ───────────────────────────────────────────────────────────────────────────────────────────────
// A Ring's numeric fields (cursors, positions, bases) are the coordination protocol's actual wire
// contract, not just the data bytes — so this maps a file large enough to hold the Ring struct
// itself plus its data buffer, casts the header portion in place as *ring.Ring, and calls Init
// once. shmreader maps the same file and rebinds its own buffer pointer over the same bytes
// without re-initializing, so the cursors the writer has already published survive the attach.
//
// Capacity and the shared memory path are agreed out of band via a config.Config document loaded
// from disk, so both this process and shmreader start from the same values.
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

// headerSize is sizeof(ring.Ring) rounded up to a whole number of cache
// lines, so the data buffer that follows starts cache-line aligned too.
func headerSize() int64 {
	raw := int64(unsafe.Sizeof(ring.Ring{}))
	line := int64(ring.CacheLineSize)
	return (raw + line - 1) &^ (line - 1)
}

func main() {
	configPath := flag.String("config", "ring.json", "path to the ring configuration document")
	recordCount := flag.Uint64("count", 1_000_000, "number of 8-byte records to write")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		diag.DropError("shmwriter: load config", err)
		os.Exit(1)
	}
	if cfg.SharedMemoryPath == "" {
		diag.DropMessage("shmwriter", "config is missing shared_memory_path")
		os.Exit(1)
	}

	hdr := headerSize()
	total := hdr + int64(cfg.Capacity)

	file, err := os.OpenFile(cfg.SharedMemoryPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		diag.DropError("shmwriter: open", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := syscall.Ftruncate(int(file.Fd()), total); err != nil {
		diag.DropError("shmwriter: ftruncate", err)
		os.Exit(1)
	}

	mapped, err := syscall.Mmap(int(file.Fd()), 0, int(total), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		diag.DropError("shmwriter: mmap", err)
		os.Exit(1)
	}
	defer syscall.Munmap(mapped)

	r := (*ring.Ring)(unsafe.Pointer(&mapped[0]))
	dataBuf := mapped[hdr:]

	if err := r.Init(dataBuf, cfg.Capacity); err != nil {
		diag.DropError("shmwriter: init", err)
		os.Exit(1)
	}
	r.NoAlign = cfg.NoAlign

	diag.DropMessage("READY", "producer bound to "+cfg.SharedMemoryPath+", writing "+flag.Lookup("count").Value.String()+" records")

	for i := uint64(0); i < *recordCount; i++ {
		dst := r.PrepareWrite(8, 8)
		binary.LittleEndian.PutUint64(unsafe.Slice((*byte)(dst), 8), i)
		r.FinishWrite()
	}

	diag.DropMessage("DONE", "producer finished")
}
