package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config file names searched from the working directory upwards.
const (
	tomlConfigName = "sonar.toml"
	yamlConfigName = ".sonar.yaml"
)

// fileConfig mirrors sonar.toml / .sonar.yaml. Pointer fields distinguish
// "absent" from zero values.
type fileConfig struct {
	Report struct {
		Extension *string `toml:"extension" yaml:"extension"`
	} `toml:"report" yaml:"report"`
	Diag struct {
		Jobs            *int    `toml:"jobs" yaml:"jobs"`
		Format          *string `toml:"format" yaml:"format"`
		CheckInvariants *bool   `toml:"check_invariants" yaml:"check_invariants"`
		DiskCache       *bool   `toml:"disk_cache" yaml:"disk_cache"`
	} `toml:"diag" yaml:"diag"`
	Log struct {
		Level *string `toml:"level" yaml:"level"`
	} `toml:"log" yaml:"log"`
}

// findConfig walks from dir to the filesystem root and returns the first
// sonar.toml or .sonar.yaml found; "" when there is none.
func findConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range []string{tomlConfigName, yamlConfigName} {
			p := filepath.Join(dir, name)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// loadConfig decodes path by its extension and validates the values.
func loadConfig(path string) (*fileConfig, error) {
	var cfg fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
		if meta.IsDefined("diag", "jobs") && *cfg.Diag.Jobs < 0 {
			return nil, fmt.Errorf("%s: diag.jobs must be >= 0", path)
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if cfg.Diag.Jobs != nil && *cfg.Diag.Jobs < 0 {
			return nil, fmt.Errorf("%s: diag.jobs must be >= 0", path)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format (expected .toml or .yaml)", path)
	}

	if f := cfg.Diag.Format; f != nil && *f != "pretty" && *f != "json" && *f != "short" {
		return nil, fmt.Errorf("%s: diag.format must be pretty, json or short, got %q", path, *f)
	}
	if e := cfg.Report.Extension; e != nil && !strings.HasPrefix(*e, ".") {
		return nil, fmt.Errorf("%s: report.extension must start with '.', got %q", path, *e)
	}
	return &cfg, nil
}

// applyConfig loads the config file (explicit --config or discovered) and
// sets every flag of cmd the user did not set on the command line.
func applyConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if path, err = findConfig(wd); err != nil || path == "" {
			return err
		}
	} else if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config file %s not found", path)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	values := map[string]string{}
	if v := cfg.Report.Extension; v != nil {
		values["ext"] = *v
	}
	if v := cfg.Diag.Jobs; v != nil {
		values["jobs"] = strconv.Itoa(*v)
	}
	if v := cfg.Diag.Format; v != nil && cmd.Name() == "diag" {
		values["format"] = *v
	}
	if v := cfg.Diag.CheckInvariants; v != nil {
		values["check-invariants"] = strconv.FormatBool(*v)
	}
	if v := cfg.Diag.DiskCache; v != nil {
		values["disk-cache"] = strconv.FormatBool(*v)
	}
	if v := cfg.Log.Level; v != nil {
		values["log-level"] = *v
	}

	flags := cmd.Flags()
	for name, value := range values {
		fl := flags.Lookup(name)
		if fl == nil || fl.Changed {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("%s: %s: %w", path, name, err)
		}
	}
	return nil
}
