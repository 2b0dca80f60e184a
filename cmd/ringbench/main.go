// ═══════════════════════════════════════════════════════════════════════════════════════════════
// ringbench — throughput benchmark harness with SQLite-backed run history
// ───────────────────────────────────────────────────────────────────────────────────────────────
// Runs a producer/consumer pair over a Ring for a fixed record count at a chosen (size, alignment)
// and records the elapsed wall time into a local SQLite database, so successive runs can be
// compared without re-running the whole history by hand.
// ═══════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"database/sql"
	"flag"
	"strconv"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"byteqring/diag"
	"byteqring/ring"
)

func openDatabase(dbPath string) *sql.DB {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		panic("failed to open database " + dbPath + ": " + err.Error())
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			capacity INTEGER NOT NULL,
			record_size INTEGER NOT NULL,
			alignment INTEGER NOT NULL,
			record_count INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL
		)`); err != nil {
		panic("failed to create runs table: " + err.Error())
	}
	return db
}

func recordRun(db *sql.DB, capacity, recordSize, alignment, recordCount uint64, elapsed time.Duration) int64 {
	res, err := db.Exec(
		`INSERT INTO runs (capacity, record_size, alignment, record_count, elapsed_ns) VALUES (?, ?, ?, ?, ?)`,
		capacity, recordSize, alignment, recordCount, elapsed.Nanoseconds(),
	)
	if err != nil {
		panic("failed to record run: " + err.Error())
	}
	id, err := res.LastInsertId()
	if err != nil {
		panic("failed to read inserted run id: " + err.Error())
	}
	return id
}

func runBenchmark(capacity, recordSize, alignment, recordCount uint64) time.Duration {
	r, _, err := ring.New(capacity)
	if err != nil {
		panic("failed to create ring: " + err.Error())
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := uint64(0); i < recordCount; i++ {
			r.PrepareWrite(recordSize, alignment)
			r.FinishWrite()
		}
	}()
	go func() {
		defer wg.Done()
		<-start
		for i := uint64(0); i < recordCount; i++ {
			r.PrepareRead(recordSize, alignment)
			r.FinishRead()
		}
	}()

	t0 := time.Now()
	close(start)
	wg.Wait()
	return time.Since(t0)
}

func main() {
	dbPath := flag.String("db", "ringbench.db", "path to the SQLite database used for run history")
	capacity := flag.Uint64("capacity", 1<<20, "ring capacity in bytes, must be a power of two")
	recordSize := flag.Uint64("size", 64, "record size in bytes")
	alignment := flag.Uint64("align", 8, "record alignment in bytes, must be a power of two")
	recordCount := flag.Uint64("count", 10_000_000, "number of records to transfer")
	flag.Parse()

	db := openDatabase(*dbPath)
	defer db.Close()

	elapsed := runBenchmark(*capacity, *recordSize, *alignment, *recordCount)
	id := recordRun(db, *capacity, *recordSize, *alignment, *recordCount, elapsed)

	perRecord := elapsed / time.Duration(*recordCount)
	diag.DropMessage("RUN", "id "+strconv.FormatInt(id, 10)+" completed in "+elapsed.String()+" ("+perRecord.String()+"/record)")
}
