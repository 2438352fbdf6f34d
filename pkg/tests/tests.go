// Package tests holds helpers shared by the detector test suites.
package tests

import (
	"slices"
	"testing"

	"github.com/stateforward/go-seqdetect/embedded"
)

// Stream feeds every symbol of stream to detector and fails the test if a
// step errors or the final counts differ from want.
func Stream(t testing.TB, detector embedded.Detector, stream string, want ...uint64) {
	t.Helper()
	for i := 0; i < len(stream); i++ {
		if err := detector.Step(stream[i]); err != nil {
			t.Fatalf("step %d (%q): %v", i, stream[i], err)
		}
	}
	if got := detector.Counts(); !slices.Equal(got, want) {
		t.Fatalf("patterns %v over %q: counts %v, want %v", detector.Patterns(), stream, got, want)
	}
}
