package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sonar/internal/analysis"
	"sonar/internal/diag"
	"sonar/internal/diagfmt"
	"sonar/internal/driver"
	"sonar/internal/observ"
	"sonar/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <report|directory>",
	Short: "Analyze a diagnostic report or every report in a directory",
	Long: `Analyze a diagnostic report, or every report file within a directory,
computing power consumption and life support ratings and reporting any
problem with the input as a diagnostic`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

// init registers CLI flags for the diag command used by runDiagnose.
func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().String("ext", driver.DefaultExt, "report file extension in directory mode")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Bool("disk-cache", false, "cache results on disk keyed by report content")
	diagCmd.Flags().Bool("clear-cache", false, "drop every cached result before analyzing")
	diagCmd.Flags().Bool("check-invariants", false, "verify filter and power invariants on every result")
}

type fileJSON struct {
	Path        string                    `json:"path"`
	Cached      bool                      `json:"cached,omitempty"`
	Count       int                       `json:"count"`
	Width       int                       `json:"width"`
	Power       *powerSummaryJSON         `json:"power,omitempty"`
	LifeSupport *lifeSupportSummaryJSON   `json:"life_support,omitempty"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Timing      *observ.Report            `json:"timing,omitempty"`
}

type powerSummaryJSON struct {
	Gamma   string           `json:"gamma"`
	Epsilon string           `json:"epsilon"`
	Value   analysis.Product `json:"value"`
}

type lifeSupportSummaryJSON struct {
	Oxygen      string           `json:"oxygen"`
	CO2         string           `json:"co2"`
	OxygenValue uint64           `json:"oxygen_value"`
	CO2Value    uint64           `json:"co2_value"`
	Value       analysis.Product `json:"value"`
}

// runDiagnose executes the "diag" command: it analyzes the given report or
// directory, prints results and diagnostics in the chosen format and exits
// with status 1 when any file produced an error diagnostic.
func runDiagnose(cmd *cobra.Command, args []string) error {
	// Ensure trace is dumped on panic
	defer dumpTraceOnPanic()

	target := args[0]

	formatStr, err := flagString(cmd, "format")
	if err != nil {
		return err
	}
	format, err := readFormat(formatStr, "pretty", "json", "short")
	if err != nil {
		return err
	}
	uiStr, err := flagString(cmd, "ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}
	jobs, err := flagInt(cmd, "jobs")
	if err != nil {
		return err
	}
	ext, err := flagString(cmd, "ext")
	if err != nil {
		return err
	}
	withNotes, err := flagBool(cmd, "with-notes")
	if err != nil {
		return err
	}
	fullPath, err := flagBool(cmd, "fullpath")
	if err != nil {
		return err
	}
	diskCache, err := flagBool(cmd, "disk-cache")
	if err != nil {
		return err
	}
	clearCache, err := flagBool(cmd, "clear-cache")
	if err != nil {
		return err
	}
	checkInvariants, err := flagBool(cmd, "check-invariants")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts := driver.Options{
		Jobs:            jobs,
		Ext:             ext,
		MaxDiagnostics:  maxDiagnostics,
		CheckInvariants: checkInvariants,
		EnableTimings:   showTimings,
		Logger:          logger,
	}
	if diskCache || clearCache {
		cache, err := driver.OpenDiskCache("sonar")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear disk cache: %w", err)
			}
			logger.Info("disk cache cleared", zap.String("dir", cache.Dir()))
		}
		if diskCache {
			opts.Cache = cache
		}
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if st.IsDir() {
		files, err := driver.ListReportFiles(target, opts.Extension())
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}
		if wantProgressUI(mode, format, quiet(cmd)) && len(files) > 0 {
			fileSet, results, err = runDirWithUI(cmd.Context(), cmd.OutOrStdout(), "analyzing "+target, target, files, opts)
		} else {
			fileSet, results, err = driver.AnalyzeDir(cmd.Context(), target, opts)
		}
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		if len(files) == 0 && !quiet(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "no %s files under %s\n", opts.Extension(), target)
		}
	} else {
		var res *driver.FileResult
		fileSet, res, err = driver.AnalyzeFile(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		results = []driver.FileResult{*res}
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	} else if st.IsDir() {
		pathMode = diagfmt.PathModeRelative
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		if err := renderDiagJSON(out, fileSet, results, pathMode, withNotes); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "short":
		renderDiagShort(out, fileSet, results, withNotes)
	default:
		colorize, err := useColor(cmd)
		if err != nil {
			return err
		}
		if err := renderDiagPretty(out, fileSet, results, diagfmt.PrettyOpts{
			Color:     colorize,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		}, quiet(cmd)); err != nil {
			return err
		}
	}

	if showTimings && format != "json" {
		for _, res := range results {
			if res.Timing != nil {
				printTimings(cmd.ErrOrStderr(), res.Path, *res.Timing)
			}
		}
	}

	for _, res := range results {
		if res.Bag.HasErrors() {
			return &exitError{code: 1}
		}
	}
	return nil
}

func renderDiagPretty(out io.Writer, fileSet *source.FileSet, results []driver.FileResult, opts diagfmt.PrettyOpts, quietOut bool) error {
	for _, res := range results {
		if res.Bag.Len() > 0 {
			res.Bag.Sort()
			diagfmt.Pretty(out, res.Bag, fileSet, opts)
		}
	}
	if quietOut {
		return nil
	}
	rows := make([]row, 0, len(results))
	for _, res := range results {
		rows = append(rows, summaryRow(displayPath(fileSet, res, opts.PathMode), res))
	}
	return renderRows(out, rows, opts.Color)
}

func summaryRow(path string, res driver.FileResult) row {
	s := res.Summary
	var parts []string
	if s.PowerOK {
		parts = append(parts, "power "+groupedProduct(s.Power))
	}
	if s.LifeSupportOK {
		parts = append(parts, "life support "+groupedProduct(s.LifeSupport))
	}
	value := strings.Join(parts, ", ")
	if value == "" {
		value = "failed"
	}
	var note string
	switch {
	case res.Cached:
		note = "cached"
	case s.Count > 0:
		note = fmt.Sprintf("%d×%d", s.Count, s.Width)
	}
	return row{label: path, value: value, note: note}
}

func displayPath(fileSet *source.FileSet, res driver.FileResult, mode diagfmt.PathMode) string {
	f := fileSet.Get(res.FileID)
	if f == nil {
		return res.Path
	}
	switch mode {
	case diagfmt.PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case diagfmt.PathModeRelative:
		return f.FormatPath("relative", fileSet.BaseDir())
	default:
		return filepath.ToSlash(res.Path)
	}
}

func renderDiagShort(out io.Writer, fileSet *source.FileSet, results []driver.FileResult, withNotes bool) {
	var all []diag.Diagnostic
	for _, res := range results {
		all = append(all, res.Bag.Items()...)
	}
	if text := diag.FormatShortDiagnostics(all, fileSet, withNotes); text != "" {
		fmt.Fprintln(out, text)
	}
}

func renderDiagJSON(out io.Writer, fileSet *source.FileSet, results []driver.FileResult, pathMode diagfmt.PathMode, withNotes bool) error {
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
	}
	files := make([]fileJSON, 0, len(results))
	for _, res := range results {
		res.Bag.Sort()
		s := res.Summary
		fj := fileJSON{
			Path:        displayPath(fileSet, res, pathMode),
			Cached:      res.Cached,
			Count:       s.Count,
			Width:       s.Width,
			Diagnostics: diagfmt.BuildDiagnosticsOutput(res.Bag, fileSet, jsonOpts),
			Timing:      res.Timing,
		}
		if s.PowerOK {
			fj.Power = &powerSummaryJSON{Gamma: s.Gamma, Epsilon: s.Epsilon, Value: s.Power}
		}
		if s.LifeSupportOK {
			fj.LifeSupport = &lifeSupportSummaryJSON{
				Oxygen:      s.Oxygen,
				CO2:         s.CO2,
				OxygenValue: s.OxygenValue,
				CO2Value:    s.CO2Value,
				Value:       s.LifeSupport,
			}
		}
		files = append(files, fj)
	}
	return writeJSON(out, struct {
		Files []fileJSON `json:"files"`
	}{Files: files})
}
