package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sonar/internal/analysis"
	"sonar/internal/rating"
	"sonar/internal/report"
)

var lifeSupportCmd = &cobra.Command{
	Use:     "life-support [flags] <report>",
	Aliases: []string{"ls"},
	Short:   "Compute oxygen generator, CO2 scrubber and life support ratings",
	Args:    cobra.ExactArgs(1),
	RunE:    runLifeSupport,
}

func init() {
	lifeSupportCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	lifeSupportCmd.Flags().Bool("steps", false, "print every filter transition")
	lifeSupportCmd.Flags().String("only", "", "run a single filter (oxygen|co2)")
}

type stepJSON struct {
	Position int    `json:"position"`
	Zeros    int    `json:"zeros"`
	Ones     int    `json:"ones"`
	Keep     string `json:"keep"`
	Tie      bool   `json:"tie,omitempty"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
}

type ratingJSON struct {
	Rating   string     `json:"rating"`
	Selector string     `json:"selector"`
	Survivor string     `json:"survivor"`
	Value    uint64     `json:"value"`
	Steps    []stepJSON `json:"steps,omitempty"`
}

type lifeSupportJSON struct {
	Count       int               `json:"count"`
	Width       int               `json:"width"`
	Ratings     []ratingJSON      `json:"ratings"`
	LifeSupport *analysis.Product `json:"life_support_rating,omitempty"`
}

func runLifeSupport(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	formatStr, err := flagString(cmd, "format")
	if err != nil {
		return err
	}
	format, err := readFormat(formatStr, "pretty", "json")
	if err != nil {
		return err
	}
	showSteps, err := flagBool(cmd, "steps")
	if err != nil {
		return err
	}
	only, err := flagString(cmd, "only")
	if err != nil {
		return err
	}
	var single *rating.Selector
	if only != "" {
		sel, err := rating.ParseSelector(only)
		if err != nil {
			return err
		}
		single = &sel
	}

	timer := phaseTimer(cmd)
	defer flushTimings(cmd, timer, args[0])

	done := track(timer, "load")
	fileSet, file, err := loadInput(cmd, args[0])
	done("")
	if err != nil {
		return err
	}

	done = track(timer, "parse")
	rep, err := report.Parse(file)
	if err != nil {
		done("error")
		return reportFailure(cmd, fileSet, file, err)
	}
	done(fmt.Sprintf("%d×%d", rep.Len(), rep.Width()))

	var (
		results []rating.Result
		total   *analysis.Product
	)
	if single != nil {
		done = track(timer, "rating")
		res, err := rating.Filter(cmd.Context(), rep.Sequences(), *single)
		if err != nil {
			done("error")
			return reportFailure(cmd, fileSet, file, err)
		}
		done(single.String())
		results = []rating.Result{res}
	} else {
		done = track(timer, "life-support")
		ls, err := analysis.AnalyzeLifeSupport(cmd.Context(), rep)
		if err != nil {
			done("error")
			return reportFailure(cmd, fileSet, file, err)
		}
		done("")
		results = []rating.Result{ls.Oxygen, ls.CO2}
		total = &ls.Value
	}

	if format == "json" {
		out := lifeSupportJSON{Count: rep.Len(), Width: rep.Width(), LifeSupport: total}
		for _, res := range results {
			out.Ratings = append(out.Ratings, newRatingJSON(res, showSteps))
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}
	return renderLifeSupport(cmd.OutOrStdout(), results, total, showSteps, colorize)
}

func newRatingJSON(res rating.Result, steps bool) ratingJSON {
	out := ratingJSON{
		Rating:   res.Selector.Rating(),
		Selector: res.Selector.String(),
		Survivor: res.Survivor.String(),
		Value:    res.Value,
	}
	if steps {
		out.Steps = make([]stepJSON, len(res.Steps))
		for i, s := range res.Steps {
			out.Steps[i] = stepJSON{
				Position: s.Position,
				Zeros:    s.Table.Zeros,
				Ones:     s.Table.Ones,
				Keep:     s.Target.String(),
				Tie:      s.Table.Tie(),
				Before:   s.Before,
				After:    s.After,
			}
		}
	}
	return out
}

func renderLifeSupport(out io.Writer, results []rating.Result, total *analysis.Product, steps, colorize bool) error {
	rows := make([]row, 0, len(results)+1)
	for _, res := range results {
		rows = append(rows, row{label: res.Selector.Rating(), value: res.Survivor.String(), note: grouped(res.Value)})
	}
	if total != nil {
		rows = append(rows, row{label: "life support rating", value: groupedProduct(*total)})
	}
	if err := renderRows(out, rows, colorize); err != nil {
		return err
	}
	if !steps {
		return nil
	}
	for _, res := range results {
		fmt.Fprintf(out, "\n%s (%s):\n", res.Selector.Rating(), res.Selector)
		stepRows := make([]row, 0, len(res.Steps))
		for _, s := range res.Steps {
			keep := "keep " + s.Target.String()
			if s.Table.Tie() {
				keep += " (tie)"
			}
			stepRows = append(stepRows, row{
				label: fmt.Sprintf("  bit %d", s.Position),
				value: keep,
				note:  fmt.Sprintf("%s, %d → %d", s.Table, s.Before, s.After),
			})
		}
		if err := renderRows(out, stepRows, colorize); err != nil {
			return err
		}
	}
	return nil
}
