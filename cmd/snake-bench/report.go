package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/snake/snake"
)

type Report struct {
	// Configuration
	Games          int
	Seed           uint64
	MaxTicks       int
	GCPauseMetrics bool

	// Results
	TotalTicks    int
	TotalTime     time.Duration
	GamesOver     int
	LongestSnake  int
	TickTime      Stats
	Score         Summary[int]
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

func (r *Report) addGame(final snake.TickResult) {
	r.TotalTicks += int(final.Tick)
	r.LongestSnake = max(r.LongestSnake, final.Len())
	if final.Status == snake.Over {
		r.GamesOver++
	}
	r.Score.Samples = append(r.Score.Samples, final.Score)
}

// Stats summarises durations.
type Stats = Summary[time.Duration]

type number interface {
	~int | ~int64 | ~float64
}

// Summary holds the minimum, maximum and mean of its samples once
// Finalize has run.
type Summary[T number] struct {
	Min     T
	Max     T
	Avg     T
	Samples []T
}

func (s *Summary[T]) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total T
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / T(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Snake Bench Report

## Configuration
- **Games:** {{.Games}}
- **First Seed:** {{.Seed}}
- **Tick Limit:** {{.MaxTicks}}

## Games
- **Games Over:** {{.GamesOver}} of {{.Games}}
- **Longest Snake:** {{.LongestSnake}}
- **Score:**
  - **Avg:** {{.Score.Avg}}
  - **Min:** {{.Score.Min}}
  - **Max:** {{.Score.Max}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

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
