// Package bench provides benchmarking primitives for the tsdist bench
// command: synthetic series generation and throughput reporting, so a
// batch run can be exercised end-to-end without a CSV fixture dependency.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// GenerateSeries returns count deterministic series of length sampleLen,
// each a closed-form ramp-plus-sine curve offset by its index so that
// distinct rows are not identical. No randomness is used, so results are
// reproducible across runs.
func GenerateSeries(count, sampleLen int) [][]float32 {
	out := make([][]float32, count)
	for i := range out {
		series := make([]float32, sampleLen)
		phase := float64(i) * 0.37
		for t := range series {
			x := float64(t) / float64(sampleLen)
			series[t] = float32(x + 0.5*math.Sin(2*math.Pi*x*3+phase))
		}
		out[i] = series
	}
	return out
}

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and throughput for a single batch run.
type RunResult struct {
	Index          int
	Cold           bool // true for the first run (engine creation is not timed)
	Duration       time.Duration
	Cells          int64 // sum of a_len*b_len over every pair in the batch
	CellsPerSecond float64
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// An empty slice yields the zero Stats.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// CellsPerSecond returns cells/duration, or 0 if duration is zero or negative.
func CellsPerSecond(cells int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(cells) / d.Seconds()
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %14s  %16s\n", "Run", "Cold", "MS", "Cells", "Cells/sec")
	fmt.Fprintln(sb, strings.Repeat("-", 58))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.1f  %14d  %16.0f\n",
			r.Index+1,
			cold,
			float64(r.Duration.Milliseconds()),
			r.Cells,
			r.CellsPerSecond,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 58))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %14s  %16s  (min)\n", "", "", float64(stats.Min.Milliseconds()), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %14s  %16s  (mean)\n", "", "", float64(stats.Mean.Milliseconds()), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %14s  %16s  (max)\n", "", "", float64(stats.Max.Milliseconds()), "", "")

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index          int     `json:"index"`
	Cold           bool    `json:"cold"`
	DurationMS     float64 `json:"duration_ms"`
	Cells          int64   `json:"cells"`
	CellsPerSecond float64 `json:"cells_per_second"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:  float64(stats.Min.Milliseconds()),
			MeanMS: float64(stats.Mean.Milliseconds()),
			MaxMS:  float64(stats.Max.Milliseconds()),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:          r.Index,
			Cold:           r.Cold,
			DurationMS:     float64(r.Duration.Milliseconds()),
			Cells:          r.Cells,
			CellsPerSecond: r.CellsPerSecond,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
