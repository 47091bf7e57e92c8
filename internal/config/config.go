// Package config resolves rotalign settings from built-in defaults and an
// optional config file. Command-line flags are applied on top by the CLI.
//
// Two file formats are accepted, chosen by extension:
//   - .yaml / .yml: decoded strictly, unknown keys are errors
//   - .cue: unified with the embedded #Config schema, which is closed and
//     carries the value constraints
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/rotalign/internal/aligner"
)

// Default values.
const (
	DefaultShift      = 50
	DefaultIterations = 5
	DefaultOutputDir  = "."
	DefaultWrap       = 60
)

// AlignerConfig selects the external aligner.
type AlignerConfig struct {
	Binary string   `yaml:"binary" json:"binary"`
	Args   []string `yaml:"args" json:"args"`
}

// Config is the fully resolved run configuration.
type Config struct {
	Aligner     AlignerConfig `yaml:"aligner" json:"aligner"`
	Shift       int           `yaml:"shift" json:"shift"`
	Iterations  int           `yaml:"iterations" json:"iterations"`
	OutputDir   string        `yaml:"output_dir" json:"output_dir"`
	Wrap        int           `yaml:"wrap" json:"wrap"`
	Ledger      string        `yaml:"ledger" json:"ledger"`
	MetricsFile string        `yaml:"metrics_file" json:"metrics_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Aligner: AlignerConfig{
			Binary: aligner.DefaultBinary,
			Args:   append([]string(nil), aligner.DefaultArgs...),
		},
		Shift:      DefaultShift,
		Iterations: DefaultIterations,
		OutputDir:  DefaultOutputDir,
		Wrap:       DefaultWrap,
	}
}

// Load reads the config file at path over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Path: path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".cue":
		err = decodeCUE(path, data, &cfg)
	default:
		err = fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .cue)", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, &Error{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, &Error{Path: path, Err: err}
	}
	return cfg, nil
}

// Validate checks value constraints. Every violation is reported.
func (c Config) Validate() error {
	var errs []error
	if c.Shift < 0 {
		errs = append(errs, fmt.Errorf("shift must be >= 0, got %d", c.Shift))
	}
	if c.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must be >= 0, got %d", c.Iterations))
	}
	if c.Wrap < 0 {
		errs = append(errs, fmt.Errorf("wrap must be >= 0, got %d", c.Wrap))
	}
	if strings.TrimSpace(c.Aligner.Binary) == "" {
		errs = append(errs, errors.New("aligner.binary must not be empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}
	return errors.Join(errs...)
}

// Error reports an unreadable or invalid config file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
