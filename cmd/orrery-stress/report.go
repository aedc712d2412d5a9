package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/plus3/orrery/nbody"
	"gonum.org/v1/gonum/stat"
)

const plotWidth = 72

type Report struct {
	// Configuration
	Duration    time.Duration
	Bodies      int
	TrailLength int
	Seed        uint64

	// Results
	TotalTime      time.Duration
	FrameTime      Stats
	Stage          nbody.StageStats
	StartStats     nbody.SpaceStats
	EndStats       nbody.SpaceStats
	Drift          []float64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarizes frame durations in microseconds.
type Stats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P99    float64
}

func NewStats(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	return Stats{
		Count:  len(sorted),
		Mean:   mean,
		StdDev: std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P99:    stat.Quantile(0.99, stat.Empirical, sorted, nil),
	}
}

// downsample keeps at most n evenly spaced points of series.
func downsample(series []float64, n int) []float64 {
	if len(series) <= n {
		return series
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = series[i*(len(series)-1)/(n-1)]
	}
	return out
}

func (r *Report) DriftPlot() string {
	if len(r.Drift) < 2 {
		return "(not enough frames)"
	}
	return asciigraph.Plot(downsample(r.Drift, plotWidth),
		asciigraph.Height(10),
		asciigraph.Precision(6),
		asciigraph.Caption("relative energy drift"),
	)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# N-Body Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Bodies:** {{.Bodies}}
- **Trail Length:** {{.TrailLength}}
- **Seed:** {{.Seed}}

## Performance Results
- **Total Frames:** {{.FrameTime.Count}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time (µs):**
  - **Mean:** {{printf "%.1f" .FrameTime.Mean}} ± {{printf "%.1f" .FrameTime.StdDev}}
  - **Min:** {{printf "%.1f" .FrameTime.Min}}
  - **P50:** {{printf "%.1f" .FrameTime.P50}}
  - **P99:** {{printf "%.1f" .FrameTime.P99}}
  - **Max:** {{printf "%.1f" .FrameTime.Max}}
{{range .Stage.Systems}}- **{{.Name}}:** avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Physics
- **Steps:** {{.EndStats.Steps}}
- **Energy:** {{printf "%.6g" .StartStats.TotalEnergy}} -> {{printf "%.6g" .EndStats.TotalEnergy}}
- **Momentum:** ({{printf "%.3e" (index .StartStats.Momentum 0)}}, {{printf "%.3e" (index .StartStats.Momentum 1)}}) -> ({{printf "%.3e" (index .EndStats.Momentum 0)}}, {{printf "%.3e" (index .EndStats.Momentum 1)}})
- **Finite:** {{.EndStats.Finite}}

{{.DriftPlot}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
