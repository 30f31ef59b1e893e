package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"sonar/internal/analysis"
	"sonar/internal/report"
)

var powerCmd = &cobra.Command{
	Use:   "power [flags] <report>",
	Short: "Compute gamma, epsilon and power consumption of a diagnostic report",
	Args:  cobra.ExactArgs(1),
	RunE:  runPower,
}

func init() {
	powerCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	powerCmd.Flags().Bool("positions", false, "print the per-position bit counts")
}

type positionJSON struct {
	Position int  `json:"position"`
	Zeros    int  `json:"zeros"`
	Ones     int  `json:"ones"`
	Common   int  `json:"most_common"`
	Tie      bool `json:"tie,omitempty"`
}

type powerJSON struct {
	Count        int              `json:"count"`
	Width        int              `json:"width"`
	Gamma        string           `json:"gamma"`
	Epsilon      string           `json:"epsilon"`
	GammaValue   uint64           `json:"gamma_value"`
	EpsilonValue uint64           `json:"epsilon_value"`
	Power        analysis.Product `json:"power_consumption"`
	Positions    []positionJSON   `json:"positions,omitempty"`
}

func runPower(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	formatStr, err := flagString(cmd, "format")
	if err != nil {
		return err
	}
	format, err := readFormat(formatStr, "pretty", "json")
	if err != nil {
		return err
	}
	showPositions, err := flagBool(cmd, "positions")
	if err != nil {
		return err
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

	done = track(timer, "power")
	p, err := analysis.AnalyzePower(cmd.Context(), rep)
	if err != nil {
		done("error")
		return reportFailure(cmd, fileSet, file, err)
	}
	done("")

	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), newPowerJSON(rep, p, showPositions))
	}
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}
	return renderPower(cmd.OutOrStdout(), rep, p, showPositions, colorize)
}

func newPowerJSON(rep *report.Report, p analysis.Power, positions bool) powerJSON {
	out := powerJSON{
		Count:        rep.Len(),
		Width:        rep.Width(),
		Gamma:        p.Gamma.String(),
		Epsilon:      p.Epsilon.String(),
		GammaValue:   p.GammaValue,
		EpsilonValue: p.EpsilonValue,
		Power:        p.Value,
	}
	if positions {
		out.Positions = make([]positionJSON, len(p.Tables))
		for i, t := range p.Tables {
			out.Positions[i] = positionJSON{
				Position: i,
				Zeros:    t.Zeros,
				Ones:     t.Ones,
				Common:   int(p.Gamma.At(i)),
				Tie:      t.Tie(),
			}
		}
	}
	return out
}

func renderPower(out io.Writer, rep *report.Report, p analysis.Power, positions, colorize bool) error {
	rows := []row{
		{label: "readings", value: grouped(rep.Len()), note: strconv.Itoa(rep.Width()) + " bits each"},
		{label: "gamma", value: p.Gamma.String(), note: grouped(p.GammaValue)},
		{label: "epsilon", value: p.Epsilon.String(), note: grouped(p.EpsilonValue)},
		{label: "power consumption", value: groupedProduct(p.Value)},
	}
	if err := renderRows(out, rows, colorize); err != nil {
		return err
	}
	if !positions {
		return nil
	}
	fmt.Fprintln(out)
	rows = rows[:0]
	for i, t := range p.Tables {
		note := "most common " + p.Gamma.At(i).String()
		if t.Tie() {
			note += " (tie)"
		}
		rows = append(rows, row{label: fmt.Sprintf("bit %d", i), value: t.String(), note: note})
	}
	return renderRows(out, rows, colorize)
}
