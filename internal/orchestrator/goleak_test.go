package orchestrator

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures the concurrent frecency/scan join point leaves no
// goroutines running once Run/RunFromInputs returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
