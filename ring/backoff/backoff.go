// ════════════════════════════════════════════════════════════════════════════════════════════════
// ADAPTIVE HOT/COLD BACKOFF FOR RING POLLING
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: caller-side polling strategy layered over ring.CanWrite/ring.CanRead
//
// Description:
//   The ring core never surfaces "would block" — a caller wanting non-blocking behavior must
//   peek availability itself and decide how hard to spin while waiting. Waiter implements the
//   same adaptive strategy the fixed-slot ring family used: stay in a tight hot-spin while
//   traffic is recent, then fall back to cpuRelax-throttled cold-spin once the feed goes quiet.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package backoff

import "time"

const (
	// hotWindow is how long after the last successful poll the waiter keeps
	// spinning tightly, assuming more work is imminent.
	hotWindow = 5 * time.Second

	// spinBudget is the number of consecutive empty polls in cold mode
	// before yielding a relax hint to the CPU.
	spinBudget = 224
)

// Waiter tracks recent hit/miss history for one side of a ring so repeated
// Wait calls can decide, poll by poll, whether to hot-spin or relax. It is
// not safe for concurrent use — one Waiter per producer or consumer.
type Waiter struct {
	miss    int
	lastHit time.Time
}

// New returns a Waiter primed as if a hit had just occurred, so the first
// Wait call starts in hot-spin mode.
func New() *Waiter {
	return &Waiter{lastHit: time.Now()}
}

// Poll reports one iteration's outcome. ready is whatever the caller's own
// availability check (ring.CanWrite/ring.CanRead) returned this iteration.
// Poll returns true when the caller should proceed (ready was true), and
// otherwise applies the adaptive relax strategy before returning false.
func (w *Waiter) Poll(ready bool, relax func()) bool {
	if ready {
		w.miss = 0
		w.lastHit = time.Now()
		return true
	}
	if time.Since(w.lastHit) <= hotWindow {
		return false // hot-spin: no relax call, caller should retry immediately
	}
	if w.miss++; w.miss >= spinBudget {
		w.miss = 0
		relax()
	}
	return false
}

// Wait blocks the calling goroutine, invoking ready on each iteration, until
// ready reports true. relax is called periodically once the waiter has gone
// cold, and should be a cheap CPU hint — never a syscall or channel receive,
// or the caller loses the latency this package exists to provide.
func Wait(ready func() bool, relax func()) {
	w := New()
	for {
		if w.Poll(ready(), relax) {
			return
		}
	}
}
