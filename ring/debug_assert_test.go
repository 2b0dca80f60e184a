//go:build ringdebug

package ring

import "testing"

func TestResetPanicsWithWriterWindowMidFlight(t *testing.T) {
	r := mustNewRing(t, 64)
	r.PrepareWrite(4, 4) // moves writer.pos past the published cursor, no FinishWrite

	defer func() {
		if recover() == nil {
			t.Fatal("expected Reset to panic with an in-flight writer window")
		}
	}()
	r.Reset()
}
