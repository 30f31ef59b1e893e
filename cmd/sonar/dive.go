package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sonar/internal/dive"
)

var diveCmd = &cobra.Command{
	Use:   "dive [flags] <course>",
	Short: "Replay a piloting course and report the final position",
	Args:  cobra.ExactArgs(1),
	RunE:  runDive,
}

func init() {
	diveCmd.Flags().String("mode", "both", "interpretation of up/down (plain|aim|both)")
	diveCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type positionReport struct {
	Mode       string `json:"mode"`
	Horizontal int64  `json:"horizontal"`
	Depth      int64  `json:"depth"`
	Aim        int64  `json:"aim"`
	Product    int64  `json:"product"`
}

func readDiveModes(value string) ([]dive.Mode, error) {
	switch value {
	case "plain":
		return []dive.Mode{dive.ModePlain}, nil
	case "aim":
		return []dive.Mode{dive.ModeAim}, nil
	case "", "both":
		return []dive.Mode{dive.ModePlain, dive.ModeAim}, nil
	default:
		return nil, fmt.Errorf("invalid --mode value %q (expected plain|aim|both)", value)
	}
}

func runDive(cmd *cobra.Command, args []string) error {
	modeStr, err := flagString(cmd, "mode")
	if err != nil {
		return err
	}
	modes, err := readDiveModes(modeStr)
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
	cmds, err := dive.ParseCommands(file)
	if err != nil {
		return reportFailure(cmd, fileSet, file, err)
	}

	reports := make([]positionReport, 0, len(modes))
	for _, m := range modes {
		s := dive.Run(cmds, m)
		reports = append(reports, positionReport{
			Mode:       m.String(),
			Horizontal: s.Horizontal,
			Depth:      s.Depth,
			Aim:        s.Aim,
			Product:    s.Product(),
		})
	}

	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), reports)
	}
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}
	rows := make([]row, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, row{
			label: r.Mode,
			value: grouped(r.Product),
			note:  numbers.Sprintf("horizontal %d, depth %d", r.Horizontal, r.Depth),
		})
	}
	return renderRows(cmd.OutOrStdout(), rows, colorize)
}
