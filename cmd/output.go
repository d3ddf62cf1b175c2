package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/swarmpack/sim"
	"github.com/inference-sim/swarmpack/sim/pack"
	"github.com/inference-sim/swarmpack/sim/trace"
)

// writeCircles emits the circle list as indented JSON, index order preserved.
func writeCircles(w io.Writer, circles []sim.Circle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(circles)
}

// printPackSummary writes the packing statistics block.
func printPackSummary(w io.Writer, points int, circles []sim.Circle, stats pack.Stats) {
	fmt.Fprintln(w, "=== Packing Metrics ===")
	fmt.Fprintf(w, "Input Points         : %d\n", points)
	fmt.Fprintf(w, "Circles              : %d\n", len(circles))
	fmt.Fprintf(w, "Batches              : %d\n", stats.Batches)
	fmt.Fprintf(w, "Attempts             : %d (rejected %d)\n", stats.Attempts, stats.Rejected)
	fmt.Fprintf(w, "Fine Passes          : %d\n", stats.FinePasses)
	if len(circles) == 0 {
		return
	}
	radii := make([]float64, len(circles))
	for i, c := range circles {
		radii[i] = c.R
	}
	sort.Float64s(radii)
	fmt.Fprintf(w, "Radius Mean          : %.4f\n", stat.Mean(radii, nil))
	fmt.Fprintf(w, "Radius P50           : %.4f\n", stat.Quantile(0.5, stat.Empirical, radii, nil))
	fmt.Fprintf(w, "Radius Max           : %.4f\n", radii[len(radii)-1])
}

// printRunMetrics writes the simulation statistics block.
func printRunMetrics(w io.Writer, ticks int64, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Ticks                : %d\n", ticks)
	if summary.TicksRecorded == 0 {
		return
	}
	fmt.Fprintf(w, "Recorded Ticks       : %d\n", summary.TicksRecorded)
	fmt.Fprintf(w, "Final Goal Distance  : %.4f\n", summary.FinalMeanGoalDistance)
	fmt.Fprintf(w, "Peak Speed           : %.4f\n", summary.PeakSpeed)
	fmt.Fprintf(w, "Mean Fleeing Agents  : %.2f\n", summary.MeanFleeing)
	fmt.Fprintf(w, "Ticks With Fleeing   : %d\n", summary.FleeingTicks)
}

// frameWriter streams agent transforms as CSV rows: tick,agent,x,y,z,scale.
type frameWriter struct {
	w      *csv.Writer
	record []string
}

func newFrameWriter(w io.Writer) (*frameWriter, error) {
	fw := &frameWriter{w: csv.NewWriter(w), record: make([]string, 6)}
	if err := fw.w.Write([]string{"tick", "agent", "x", "y", "z", "scale"}); err != nil {
		return nil, err
	}
	return fw, nil
}

// WriteFrame appends one row per transform; slot i is agent i.
func (fw *frameWriter) WriteFrame(tick int64, transforms []sim.Transform) error {
	for i, tr := range transforms {
		fw.record[0] = strconv.FormatInt(tick, 10)
		fw.record[1] = strconv.Itoa(i)
		fw.record[2] = strconv.FormatFloat(tr.X, 'f', 5, 64)
		fw.record[3] = strconv.FormatFloat(tr.Y, 'f', 5, 64)
		fw.record[4] = strconv.FormatFloat(tr.Z, 'f', 5, 64)
		fw.record[5] = strconv.FormatFloat(tr.Scale, 'f', 5, 64)
		if err := fw.w.Write(fw.record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered rows and reports any write error.
func (fw *frameWriter) Flush() error {
	fw.w.Flush()
	return fw.w.Error()
}
