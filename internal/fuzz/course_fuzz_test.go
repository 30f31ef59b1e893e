package fuzztests

import (
	"errors"
	"testing"

	"sonar/internal/dive"
	"sonar/internal/sweep"
)

func FuzzDepthSweep(f *testing.F) {
	addCorpusSeeds(f, "sweeps")
	f.Add([]byte("199\n200\n-3\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		depths, err := sweep.ParseDepths(loadVirtual(clampInput(input)))
		if err != nil {
			return
		}
		for window := 1; window <= 4; window++ {
			n, err := sweep.CountWindowIncreases(depths, window)
			if err != nil {
				t.Fatalf("window %d: %v", window, err)
			}
			if n > max(len(depths)-window, 0) {
				t.Fatalf("window %d: %d increases over %d readings", window, n, len(depths))
			}
			if window == 1 && n != sweep.CountIncreases(depths) {
				t.Fatalf("window 1 disagrees with pairwise count")
			}
		}
	})
}

func FuzzDiveCommands(f *testing.F) {
	addCorpusSeeds(f, "courses")
	f.Add([]byte("forward 5\ndown 5\nup 3\n"))
	f.Add([]byte("sideways 1\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		cmds, err := dive.ParseCommands(loadVirtual(clampInput(input)))
		if err != nil {
			var ce *dive.CommandError
			if !errors.As(err, &ce) || ce.Line == 0 {
				t.Fatalf("unlocated command error: %v", err)
			}
			return
		}
		plain := dive.Run(cmds, dive.ModePlain)
		aim := dive.Run(cmds, dive.ModeAim)
		if plain.Horizontal != aim.Horizontal {
			t.Fatalf("modes disagree on horizontal position: %d vs %d", plain.Horizontal, aim.Horizontal)
		}
		if plain.Depth != aim.Aim {
			t.Fatalf("plain depth %d must equal aim %d", plain.Depth, aim.Aim)
		}
	})
}
