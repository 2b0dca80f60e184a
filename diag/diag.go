// ─────────────────────────────────────────────────────────────────────────────
// diag.go — zero-alloc diagnostic logging for cold paths
//
// Purpose:
//   - Logs setup errors, config problems, and infrequent ring-lifecycle events
//     without introducing heap pressure.
//   - Never called from PrepareWrite/PrepareRead/FinishWrite/FinishRead — those
//     stay allocation-free and syscall-free by construction.
//
// Notes:
//   - Avoids fmt.Sprintf; concatenates and writes directly to stderr.
//
// ⚠️ Never invoke from the space-acquisition spin loop.
// ─────────────────────────────────────────────────────────────────────────────

package diag

import "os"

// DropError logs prefix concatenated with err's message, or just prefix when
// err is nil (a cheap trace/tag form).
//
//go:nosplit
//go:inline
func DropError(prefix string, err error) {
	if err != nil {
		os.Stderr.WriteString(prefix + ": " + err.Error() + "\n")
		return
	}
	os.Stderr.WriteString(prefix + "\n")
}

// DropMessage logs a prefix/message pair for cold-path diagnostics: ring
// attach/detach, config load failures, reset events.
//
//go:nosplit
//go:inline
func DropMessage(prefix, message string) {
	os.Stderr.WriteString(prefix + ": " + message + "\n")
}
