package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sonar/internal/bits"
	"sonar/internal/driver"
	"sonar/internal/version"
)

// build is what "sonar version" knows about the running binary. Besides the
// ldflags metadata it names the cache schema and the widest reading the
// analyzer converts, the two things that decide whether cached results and
// reports carry over between builds.
type build struct {
	Tool        string `json:"tool"`
	Version     string `json:"version"`
	Tagline     string `json:"tagline"`
	CacheSchema uint16 `json:"cache_schema"`
	MaxWidth    int    `json:"max_width"`
	GitCommit   string `json:"git_commit,omitempty"`
	GitMessage  string `json:"git_message,omitempty"`
	BuildDate   string `json:"build_date,omitempty"`
}

type buildDetails struct {
	hash    bool
	message bool
	date    bool
}

const versionTagline = "listening below the surface"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sonar build fingerprints",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	formatStr, err := flagString(cmd, "format")
	if err != nil {
		return err
	}
	format, err := readFormat(formatStr, "pretty", "json")
	if err != nil {
		return err
	}
	full, err := flagBool(cmd, "full")
	if err != nil {
		return err
	}
	var details buildDetails
	for name, dst := range map[string]*bool{"hash": &details.hash, "message": &details.message, "date": &details.date} {
		v, err := flagBool(cmd, name)
		if err != nil {
			return err
		}
		*dst = v || full
	}

	b := currentBuild(details)
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), b)
	}
	colorize, err := useColor(cmd)
	if err != nil {
		return err
	}
	return renderVersion(cmd.OutOrStdout(), b, colorize)
}

func currentBuild(d buildDetails) build {
	b := build{
		Tool:        "sonar",
		Version:     strings.TrimSpace(version.Version),
		Tagline:     versionTagline,
		CacheSchema: driver.CacheSchemaVersion,
		MaxWidth:    bits.MaxWidth,
	}
	if b.Version == "" {
		b.Version = "dev"
	}
	if d.hash {
		b.GitCommit = orUnknown(version.GitCommit)
	}
	if d.message {
		b.GitMessage = orUnknown(version.GitMessage)
	}
	if d.date {
		b.BuildDate = orUnknown(version.BuildDate)
	}
	return b
}

func renderVersion(out io.Writer, b build, colorize bool) error {
	if _, err := fmt.Fprintf(out, "sonar %s: %s\n", b.Version, b.Tagline); err != nil {
		return err
	}
	rows := []row{
		{label: "cache schema", value: strconv.Itoa(int(b.CacheSchema))},
		{label: "max width", value: strconv.Itoa(b.MaxWidth), note: "bits per reading"},
	}
	for _, meta := range []row{
		{label: "commit", value: b.GitCommit},
		{label: "message", value: b.GitMessage},
		{label: "built", value: b.BuildDate},
	} {
		if meta.value != "" {
			rows = append(rows, meta)
		}
	}
	return renderRows(out, rows, colorize)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
