// File: trace/trace_test.go
// Author: momentics <momentics@gmail.com>

package trace

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterProducesValidJSONArray(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.Duration("frame", "engine", 0, 0, 16.6, nil))
	require.NoError(t, w.Instant("NewFrame", "host", 0, 16.6))
	require.NoError(t, w.Counter("channel_depth", 0, 16.6, map[string]any{"main": 3}))
	require.NoError(t, w.Close())

	var events []Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &events))
	require.Len(t, events, 3)
	require.Equal(t, PhaseComplete, events[0].Ph)
	require.Equal(t, PhaseInstant, events[1].Ph)
	require.Equal(t, PhaseCounter, events[2].Ph)
}

func TestEmitAfterCloseFails(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Error(t, w.Emit(Event{Name: "late", Ph: PhaseInstant}))
}

func TestEmptyTraceIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var events []Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &events))
	require.Len(t, events, 0)
}
