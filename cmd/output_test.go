package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/swarmpack/sim"
	"github.com/inference-sim/swarmpack/sim/pack"
	"github.com/inference-sim/swarmpack/sim/trace"
)

func TestWriteCircles_OmitsGrowingFlag(t *testing.T) {
	var buf bytes.Buffer
	circles := []sim.Circle{{X: 1, Y: 2, Z: 0.5, R: 0.3, Growing: true}}

	require.NoError(t, writeCircles(&buf, circles))

	assert.NotContains(t, buf.String(), "Growing")
	var got []map[string]float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]float64{{"x": 1, "y": 2, "z": 0.5, "r": 0.3}}, got)
}

func TestPrintPackSummary(t *testing.T) {
	// GIVEN packed circles
	var buf bytes.Buffer
	circles := []sim.Circle{{R: 0.2}, {R: 0.4}, {R: 0.9}}

	// WHEN printing
	printPackSummary(&buf, 100, circles, pack.Stats{Batches: 2, Attempts: 600, Rejected: 597, FinePasses: 30})

	// THEN the section carries the counts and radius statistics
	output := buf.String()
	assert.Contains(t, output, "=== Packing Metrics ===")
	assert.Contains(t, output, "Circles              : 3")
	assert.Contains(t, output, "Radius P50           : 0.4000")
	assert.Contains(t, output, "Radius Max           : 0.9000")
}

func TestPrintPackSummary_NoCircles_NoRadiusStats(t *testing.T) {
	var buf bytes.Buffer
	printPackSummary(&buf, 0, nil, pack.Stats{})
	assert.NotContains(t, buf.String(), "Radius")
}

func TestPrintRunMetrics_NoTrace_TicksOnly(t *testing.T) {
	var buf bytes.Buffer
	printRunMetrics(&buf, 12, trace.Summarize(nil))
	assert.Contains(t, buf.String(), "Ticks                : 12")
	assert.NotContains(t, buf.String(), "Peak Speed")
}

func TestFrameWriter_RowsPerAgent(t *testing.T) {
	var buf bytes.Buffer
	fw, err := newFrameWriter(&buf)
	require.NoError(t, err)

	frame := []sim.Transform{{X: 1, Y: 2, Z: 3, Scale: 0.5}, {X: -1, Scale: 0.25}}
	require.NoError(t, fw.WriteFrame(0, frame))
	require.NoError(t, fw.WriteFrame(10, frame))
	require.NoError(t, fw.Flush())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"tick", "agent", "x", "y", "z", "scale"}, rows[0])
	assert.Equal(t, []string{"0", "0", "1.00000", "2.00000", "3.00000", "0.50000"}, rows[1])
	assert.Equal(t, []string{"10", "1", "-1.00000", "0.00000", "0.00000", "0.25000"}, rows[4])
}
