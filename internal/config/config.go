// Package config loads tool configuration from an optional YAML file with
// environment-variable overrides. A .env file in the working directory is
// honored for the env layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/stainprep/stainprep/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config holds worksheet-independent settings: where the session database
// lives and the lab's instrument defaults.
type Config struct {
	DBPath          string             `yaml:"db_path"`
	Instrument      string             `yaml:"instrument"`
	WarnThresholdUL float64            `yaml:"warn_threshold_ul"`
	DeadVolumes     map[string]float64 `yaml:"dead_volumes"`
	LogUseCases     bool               `yaml:"log_use_cases"`
}

// Load reads ~/.stainprep/config.yaml when present, then applies .env and
// environment overrides (STAINPREP_DB, STAINPREP_INSTRUMENT,
// STAINPREP_THRESHOLD, STAINPREP_LOG).
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	return load(filepath.Join(home, ".stainprep"))
}

func load(dir string) (*Config, error) {
	cfg := &Config{
		DBPath:          filepath.Join(dir, "stainprep.db"),
		Instrument:      string(domain.InstrumentBondRX),
		WarnThresholdUL: domain.DefaultWarnThresholdUL,
	}

	path := filepath.Join(dir, "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Missing .env is fine.
	_ = godotenv.Load()

	if v := os.Getenv("STAINPREP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STAINPREP_INSTRUMENT"); v != "" {
		cfg.Instrument = v
	}
	if v := os.Getenv("STAINPREP_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil || threshold <= 0 {
			return nil, fmt.Errorf("STAINPREP_THRESHOLD must be a positive number, got %q", v)
		}
		cfg.WarnThresholdUL = threshold
	}
	if v := os.Getenv("STAINPREP_LOG"); v == "1" || v == "true" {
		cfg.LogUseCases = true
	}

	if !domain.ValidInstrumentModels[cfg.Instrument] {
		return nil, fmt.Errorf("unknown instrument %q (use bond_rx or bond_iii)", cfg.Instrument)
	}

	return cfg, nil
}

// RunSetupDefaults translates the config into the worksheet's initial setup.
func (c *Config) RunSetupDefaults() domain.RunSetup {
	s := *domain.DefaultRunSetup()
	s.Instrument = domain.InstrumentModel(c.Instrument)
	s.DeadVolumeUL = s.Instrument.DefaultDeadVolumeUL()
	if dv, ok := c.DeadVolumes[c.Instrument]; ok && dv > 0 {
		s.DeadVolumeUL = dv
	}
	s.WarnThresholdUL = c.WarnThresholdUL
	return s
}
