package debugx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogIsSilentWhenDisabled(t *testing.T) {
	timingEnabled.Store(false)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Log("parse", time.Millisecond)
	assert.Empty(t, buf.String())
}

func TestLogWritesWhenEnabled(t *testing.T) {
	timingEnabled.Store(true)
	defer timingEnabled.Store(false)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Log("parse", time.Millisecond)
	assert.Contains(t, buf.String(), "parse")
}

func TestLogWithCountHandlesZero(t *testing.T) {
	timingEnabled.Store(true)
	defer timingEnabled.Store(false)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	assert.NotPanics(t, func() { LogWithCount("extract", time.Second, 0) })
	assert.Contains(t, buf.String(), "0 items")
}
