package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("hidden id=%d", 1)
	log.Warn("shown id=%d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown id=2")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "info")
	require.NoError(t, err)

	log.With("request_id", "abc").Info("handled")

	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}
