package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sonar/internal/diag"
	"sonar/internal/diagfmt"
	"sonar/internal/driver"
	"sonar/internal/source"
)

// loadInput reads one input file into a fresh FileSet. Load failures are
// reported as diagnostics like every other input problem.
func loadInput(cmd *cobra.Command, path string) (*source.FileSet, *source.File, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		logger.Debug("load failed", zap.String("path", path), zap.Error(err))
		bag := diag.NewBag(1)
		at := source.Span{File: fileSet.AddVirtual(path, nil)}
		bag.Add(diag.NewError(diag.IOLoadFailed, at, "failed to load file: "+err.Error()))
		return nil, nil, printBag(cmd, bag, fileSet)
	}
	return fileSet, fileSet.Get(fileID), nil
}

// reportFailure prints err as a located diagnostic and returns the error that
// makes the command exit with status 1.
func reportFailure(cmd *cobra.Command, fileSet *source.FileSet, file *source.File, err error) error {
	logger.Debug("analysis failed", zap.String("path", file.Path), zap.Error(err))
	bag := diag.NewBag(1)
	bag.Add(driver.ErrorDiagnostic(err, file.ID))
	return printBag(cmd, bag, fileSet)
}

func printBag(cmd *cobra.Command, bag *diag.Bag, fileSet *source.FileSet) error {
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fileSet, diagfmt.PrettyOpts{
		Color:     colorize,
		Context:   1,
		ShowNotes: true,
	})
	if bag.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}

// quiet reports whether --quiet was given.
func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}

func flagString(cmd *cobra.Command, name string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

func flagBool(cmd *cobra.Command, name string) (bool, error) {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

func flagInt(cmd *cobra.Command, name string) (int, error) {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}
