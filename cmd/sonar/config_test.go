package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newConfigTestCmd(name string) *cobra.Command {
	cmd := &cobra.Command{Use: name}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("ext", ".txt", "")
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().String("format", "pretty", "")
	cmd.Flags().Bool("check-invariants", false, "")
	cmd.Flags().String("log-level", "warn", "")
	return cmd
}

func TestFindConfigWalksParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeFile(t, root, yamlConfigName, "diag:\n  jobs: 2\n")

	got, err := findConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("findConfig = %q, want %q", got, want)
	}
}

func TestFindConfigPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, yamlConfigName, "")
	want := writeFile(t, dir, tomlConfigName, "")
	got, err := findConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("findConfig = %q, want %q", got, want)
	}
}

func TestApplyConfigTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), tomlConfigName, `
[report]
extension = ".rep"

[diag]
jobs = 4
format = "json"
check_invariants = true

[log]
level = "debug"
`)
	cmd := newConfigTestCmd("diag")
	if err := cmd.ParseFlags([]string{"--config", path, "--jobs", "8"}); err != nil {
		t.Fatal(err)
	}
	if err := applyConfig(cmd); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}

	checks := map[string]string{
		"ext":              ".rep",
		"jobs":             "8", // флаг командной строки важнее файла
		"format":           "json",
		"check-invariants": "true",
		"log-level":        "debug",
	}
	for name, want := range checks {
		if got := cmd.Flags().Lookup(name).Value.String(); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestApplyConfigFormatOnlyForDiag(t *testing.T) {
	path := writeFile(t, t.TempDir(), yamlConfigName, "diag:\n  format: short\n")
	cmd := newConfigTestCmd("power")
	if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
		t.Fatal(err)
	}
	if err := applyConfig(cmd); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if got := cmd.Flags().Lookup("format").Value.String(); got != "pretty" {
		t.Errorf("format = %q, want pretty", got)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown toml key", "a.toml", "[diag]\nthreads = 3\n", "unknown key"},
		{"unknown yaml key", "b.yaml", "diag:\n  threads: 3\n", "threads"},
		{"negative jobs", "c.toml", "[diag]\njobs = -1\n", "diag.jobs"},
		{"bad format", "d.yaml", "diag:\n  format: xml\n", "diag.format"},
		{"bad extension", "e.toml", "[report]\nextension = \"txt\"\n", "report.extension"},
		{"unsupported file", "f.ini", "", "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := loadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("loadConfig error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestApplyConfigMissingExplicitFile(t *testing.T) {
	cmd := newConfigTestCmd("diag")
	missing := filepath.Join(t.TempDir(), "sonar.toml")
	if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
		t.Fatal(err)
	}
	if err := applyConfig(cmd); err == nil {
		t.Error("expected error for missing config file")
	}
}
