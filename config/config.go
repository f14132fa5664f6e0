// Package config loads simulator run settings from a YAML document.
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/cpusim/emulator"
	"github.com/ezrec/cpusim/internal"
	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

// Run modes.
const (
	MODE_BATCH = "batch" // Run the whole program, report final state.
	MODE_STEP  = "step"  // Step one line at a time, report every step.
)

var (
	ErrMode          = errors.New(f("mode invalid"))
	ErrPolicy        = errors.New(f("policy invalid"))
	ErrProgramSource = errors.New(f("program and program_file are exclusive"))
)

// Config holds the settings of a simulator run.
type Config struct {
	Program     []string `yaml:"program"`      // Program lines.
	ProgramFile string   `yaml:"program_file"` // Program text file, relative to the config.
	Mode        string   `yaml:"mode"`
	Policy      string   `yaml:"policy"`
	Verbose     bool     `yaml:"verbose"`
	Language    string   `yaml:"language"`

	dir string
}

// Load decodes a configuration document. Missing settings take their
// defaults.
func Load(input io.Reader) (cfg *Config, err error) {
	cfg = &Config{}

	err = yaml.NewDecoder(input).Decode(cfg)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		cfg = nil
		return
	}

	if len(cfg.Mode) == 0 {
		cfg.Mode = MODE_BATCH
	}
	if len(cfg.Policy) == 0 {
		cfg.Policy = emulator.POLICY_ABORT.String()
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}

	return
}

// LoadFile loads a configuration file.
func LoadFile(path string) (cfg *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cfg, err = Load(inf)
	if err != nil {
		return
	}

	cfg.dir = filepath.Dir(path)

	return
}

// Validate checks the mode, policy, and program source.
func (cfg *Config) Validate() (err error) {
	switch strings.ToLower(cfg.Mode) {
	case MODE_BATCH, MODE_STEP:
	default:
		return ErrMode
	}

	_, err = cfg.ParsePolicy()
	if err != nil {
		return
	}

	if len(cfg.Program) != 0 && len(cfg.ProgramFile) != 0 {
		return ErrProgramSource
	}

	return
}

// Step is true if the config selects step mode.
func (cfg *Config) Step() bool {
	return strings.ToLower(cfg.Mode) == MODE_STEP
}

// ParsePolicy returns the failure policy for batch runs.
func (cfg *Config) ParsePolicy() (policy emulator.Policy, err error) {
	policy, err = emulator.ParsePolicy(cfg.Policy)
	if err != nil {
		err = errors.Join(ErrPolicy, err)
	}

	return
}

// Lines returns the program lines, reading ProgramFile if set.
func (cfg *Config) Lines() (lines []string, err error) {
	if len(cfg.ProgramFile) == 0 {
		lines = cfg.Program
		return
	}

	path := cfg.ProgramFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.dir, path)
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return internal.ReadLines(inf)
}
