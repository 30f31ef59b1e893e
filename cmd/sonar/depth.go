package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"sonar/internal/sweep"
)

var depthCmd = &cobra.Command{
	Use:   "depth [flags] <sweep>",
	Short: "Count how often a sonar sweep reading increases",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepth,
}

func init() {
	depthCmd.Flags().Int("window", 3, "sliding window size")
	depthCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type depthJSON struct {
	Readings        int `json:"readings"`
	Increases       int `json:"increases"`
	Window          int `json:"window"`
	WindowIncreases int `json:"window_increases"`
}

func runDepth(cmd *cobra.Command, args []string) error {
	window, err := flagInt(cmd, "window")
	if err != nil {
		return err
	}
	formatStr, err := flagString(cmd, "format")
	if err != nil {
		return err
	}
	format, err := readFormat(formatStr, "pretty", "json")
	if err != nil {
		return err
	}

	fileSet, file, err := loadInput(cmd, args[0])
	if err != nil {
		return err
	}
	depths, err := sweep.ParseDepths(file)
	if err != nil {
		return reportFailure(cmd, fileSet, file, err)
	}
	windowed, err := sweep.CountWindowIncreases(depths, window)
	if err != nil {
		return err
	}

	out := depthJSON{
		Readings:        len(depths),
		Increases:       sweep.CountIncreases(depths),
		Window:          window,
		WindowIncreases: windowed,
	}
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}
	return renderRows(cmd.OutOrStdout(), []row{
		{label: "readings", value: grouped(out.Readings)},
		{label: "increases", value: grouped(out.Increases)},
		{label: "window increases", value: grouped(out.WindowIncreases), note: "window " + strconv.Itoa(window)},
	}, colorize)
}
