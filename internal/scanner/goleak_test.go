package scanner

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures Scan's errgroup worker pool leaves no goroutines
// behind once a scan completes.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
