package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_ActionAndFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&buf, "DEBUG")
	require.NoError(t, err)

	l.With("service", "order-service").Action("order_created").Info("Order created", "order_id", "o1")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "Order created", lines[0]["message"])
	assert.Equal(t, "order_created", lines[0]["action"])
	assert.Equal(t, "order-service", lines[0]["service"])
	assert.Equal(t, "o1", lines[0]["order_id"])
	assert.Contains(t, lines[0], "timestamp")
	assert.Contains(t, lines[0], "hostname")
}

func TestLogger_ActionOverridesPrevious(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&buf, "INFO")
	require.NoError(t, err)

	l.Action("first").Action("second").Info("msg")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "second", lines[0]["action"])
}

func TestLogger_ErrorCarriesMessage(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&buf, "INFO")
	require.NoError(t, err)

	l.Action("db_failed").Error("Failed to connect", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR", lines[0]["level"])
	assert.Equal(t, "boom", lines[0]["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&buf, "WARN")
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "LOUD")
	assert.Error(t, err)
}
