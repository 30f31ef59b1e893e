package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sonar/internal/observ"
)

// phaseTimer returns a timer when --timings is set, nil otherwise.
func phaseTimer(cmd *cobra.Command) *observ.Timer {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !on {
		return nil
	}
	return observ.NewTimer()
}

// track is Timer.Track that tolerates a nil timer.
func track(t *observ.Timer, name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	return t.Track(name)
}

func printTimings(out io.Writer, title string, rep observ.Report) {
	if out == nil || len(rep.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "timings: %s\n", title)
	for _, p := range rep.Phases {
		if p.Note != "" {
			fmt.Fprintf(out, "  %-14s %7.3f ms  (%s)\n", p.Name, p.DurationMS, p.Note)
			continue
		}
		fmt.Fprintf(out, "  %-14s %7.3f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(out, "  %-14s %7.3f ms\n", "total", rep.TotalMS)
}

func flushTimings(cmd *cobra.Command, t *observ.Timer, title string) {
	if t == nil {
		return
	}
	printTimings(cmd.ErrOrStderr(), title, t.Report())
}
