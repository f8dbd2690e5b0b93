// control/metrics_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistrySnapshotTracksCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	mr := NewMetricsRegistry(reg)

	mr.IncFrameCompleted()
	mr.IncFrameCompleted()
	mr.IncWorkUnitYield()

	snap := mr.GetSnapshot()
	require.EqualValues(t, 2, snap["frames_completed"])
	require.EqualValues(t, 1, snap["work_unit_yields"])
}

func TestMetricsRegistryChannelDepthGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	mr := NewMetricsRegistry(reg)
	mr.SetChannelDepth("main", 5)

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "lune_channel_depth" {
			found = true
		}
	}
	require.True(t, found)
}
