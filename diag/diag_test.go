package diag

import (
	"errors"
	"os"
	"testing"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	old := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()
	w.Close()

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	return string(buf[:n])
}

func TestDropErrorWithError(t *testing.T) {
	got := captureStderr(t, func() {
		DropError("ring init", errors.New("bad capacity"))
	})
	if got != "ring init: bad capacity\n" {
		t.Fatalf("got %q", got)
	}
}

func TestDropErrorWithoutError(t *testing.T) {
	got := captureStderr(t, func() {
		DropError("ring reset complete", nil)
	})
	if got != "ring reset complete\n" {
		t.Fatalf("got %q", got)
	}
}

func TestDropMessage(t *testing.T) {
	got := captureStderr(t, func() {
		DropMessage("ring attach", "reader bound to shared segment")
	})
	if got != "ring attach: reader bound to shared segment\n" {
		t.Fatalf("got %q", got)
	}
}
