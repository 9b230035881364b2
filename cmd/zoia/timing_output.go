package main

import (
	"fmt"
	"io"
	"time"

	"zoia/internal/pipeline"
)

// printStageTimings prints the summed per-file time of every stage that ran.
func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range pipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage))); err != nil {
			panic(err)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
