// ════════════════════════════════════════════════════════════════════════════════════════════════
// RING CONFIGURATION LOADING
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: JSON-file configuration for ring deployments
//
// Description:
//   Deployments that share a ring across two independently-launched processes need to agree, out
//   of band, on capacity, alignment policy, and where the backing region lives. Config captures
//   that agreement as a small JSON document loaded by both sides at startup, parsed with the
//   Sonnet decoder for the same drop-in encoding/json performance win the harvester pipeline uses.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package config

import (
	"errors"
	"os"

	"github.com/sugawarayuuta/sonnet"
)

// Config describes one ring's deployment parameters.
type Config struct {
	// Capacity is the ring's byte capacity. Must be a power of two.
	Capacity uint64 `json:"capacity"`

	// NoAlign disables per-record alignment. Benchmarking only; production
	// deployments that use the typed façade must leave this false.
	NoAlign bool `json:"no_align,omitempty"`

	// SharedMemoryPath names the file (for example one under /dev/shm)
	// that both processes open and map instead of a private heap
	// allocation. cmd/shmwriter and cmd/shmreader refuse an empty value.
	SharedMemoryPath string `json:"shared_memory_path,omitempty"`
}

// ErrCapacityMissing is returned by Load when capacity is zero or absent.
var ErrCapacityMissing = errors.New("config: capacity must be set and non-zero")

// Load reads and parses a ring configuration document from path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes a ring configuration document from an in-memory buffer,
// as when the caller already has the bytes (fetched over the network,
// embedded, or read by some other means).
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := sonnet.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Capacity == 0 {
		return Config{}, ErrCapacityMissing
	}
	return cfg, nil
}
