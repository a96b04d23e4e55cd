package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/plus3/glide/internal/scenario"
)

type Report struct {
	// Configuration
	Scenario       *scenario.Scenario
	GCPauseMetrics bool

	// Results
	Frames        int64
	TotalTime     time.Duration
	SimulatedTime time.Duration
	UpdateTime    Stats
	FixedSteps    uint64
	Teleports     int
	Easing        easing.Stats
	Systems       []ecs.SystemStats
	Storage       ecs.StorageStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P50     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P50 = sorted[len(sorted)/2]
	s.P99 = sorted[(len(sorted)*99)/100]
}

// Collect copies the counters of w into the report and finalizes the timings.
func (r *Report) Collect(w *world) {
	r.UpdateTime.Finalize()

	stats := w.scheduler.GetStats()
	r.FixedSteps = stats.FixedSteps
	r.Systems = stats.Systems
	r.Teleports = w.teleports.Teleports
	r.Easing = w.controller.Stats()
	r.Storage = w.storage.CollectStats()
}

// StepsPerFrame is the average number of fixed steps run per frame.
func (r *Report) StepsPerFrame() float64 {
	if r.Frames == 0 {
		return 0
	}
	return float64(r.FixedSteps) / float64(r.Frames)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Easing Benchmark Report

## Scenario
- **Name:** {{.Scenario.Name}}
- **Run Duration:** {{.Scenario.Duration}}
- **Entities:** {{.Scenario.Entities}}
- **Fixed Timestep:** {{.Scenario.Timestep}}
- **Frame Time:** {{.Scenario.Frame.Mean}} ± {{.Scenario.Frame.Jitter}}
- **Blend Workers:** {{.Scenario.Workers}}
{{range .Scenario.Groups}}  - {{.Name}}: {{.Count}} entities{{if .Mode}}, {{.Mode}}{{end}}{{if .Backend}} ({{.Backend}}){{end}}{{if .TeleportEvery}}, teleport every {{.TeleportEvery}} frames{{end}}
{{end}}
## Performance Results
- **Frames:** {{.Frames}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Time:** {{.SimulatedTime}}
- **Fixed Steps:** {{.FixedSteps}} ({{printf "%.2f" .StepsPerFrame}} per frame)
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **P50:** {{.UpdateTime.P50}}
  - **P99:** {{.UpdateTime.P99}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Easing
- **Windows Closed:** {{.Easing.Windows}}
- **Display Transforms Blended:** {{.Easing.Blended}}
- **Channels Invalidated:** {{.Easing.Invalidations}}
- **Teleports Issued:** {{.Teleports}}

## Systems
| System | Schedule | Runs | Avg | Max |
|---|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.Schedule}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Storage
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Entities:** {{.Storage.TotalEntityCount}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} B
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} B
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns int64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
