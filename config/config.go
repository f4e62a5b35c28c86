// Package config loads and validates the stratbench configuration file.
// YAML is the primary format with JSON accepted as a fallback.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stratbench/stratbench/scoring"
	"github.com/stratbench/stratbench/sim"
)

// Config represents the complete tool configuration.
type Config struct {
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Scoring  scoring.Config `json:"scoring" yaml:"scoring"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Advisory AdvisoryConfig `json:"advisory" yaml:"advisory"`
	Scan     ScanConfig     `json:"scan" yaml:"scan"`
}

// EngineConfig contains the simulation parameters.
type EngineConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
	SlippageRate   float64 `json:"slippage_rate" yaml:"slippage_rate"`
	TransactionFee float64 `json:"transaction_fee" yaml:"transaction_fee"`
	MaxPositionPct float64 `json:"max_position_pct" yaml:"max_position_pct"`
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	MinLookback    int     `json:"min_lookback" yaml:"min_lookback"`
}

// ExecConfig converts the engine section into the execution model's config.
func (e EngineConfig) ExecConfig() sim.Config {
	return sim.Config{
		CommissionRate: e.CommissionRate,
		SlippageRate:   e.SlippageRate,
		TransactionFee: e.TransactionFee,
		MaxPositionPct: e.MaxPositionPct,
	}
}

// JournalConfig contains persistence parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// AdvisoryConfig points at the optional advisory endpoint.
type AdvisoryConfig struct {
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Timeout  string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "10s"
}

// ScanConfig drives the scheduled comparison daemon.
type ScanConfig struct {
	Cron       string   `json:"cron" yaml:"cron"` // e.g. "0 18 * * MON-FRI"
	DataDir    string   `json:"data_dir" yaml:"data_dir"`
	Symbols    []string `json:"symbols" yaml:"symbols"`
	Strategies []string `json:"strategies" yaml:"strategies"`
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration, choosing the format by extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Engine.InitialCapital <= 0 {
		return fmt.Errorf("engine.initial_capital must be positive")
	}
	if c.Engine.CommissionRate < 0 || c.Engine.CommissionRate >= 1 {
		return fmt.Errorf("engine.commission_rate must be in [0, 1)")
	}
	if c.Engine.SlippageRate < 0 || c.Engine.SlippageRate >= 1 {
		return fmt.Errorf("engine.slippage_rate must be in [0, 1)")
	}
	if c.Engine.TransactionFee < 0 {
		return fmt.Errorf("engine.transaction_fee must not be negative")
	}
	if c.Engine.MaxPositionPct <= 0 || c.Engine.MaxPositionPct > 1 {
		return fmt.Errorf("engine.max_position_pct must be in (0, 1]")
	}
	if c.Engine.MinLookback <= 0 {
		return fmt.Errorf("engine.min_lookback must be positive")
	}
	if c.Scoring.ImplementationScore < 0 {
		return fmt.Errorf("scoring.implementation_score must not be negative")
	}

	switch c.Journal.Type {
	case "", "none":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for csv journal")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// Default returns a configuration with the reference defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			InitialCapital: 100000,
			CommissionRate: 0.001,
			SlippageRate:   0.0005,
			TransactionFee: 5.0,
			MaxPositionPct: 0.10,
			RiskFreeRate:   0.02,
			MinLookback:    20,
		},
		Scoring: scoring.DefaultConfig(),
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./stratbench.sqlite",
		},
		Advisory: AdvisoryConfig{
			Timeout: "10s",
		},
		Scan: ScanConfig{
			Cron:       "0 18 * * MON-FRI",
			DataDir:    "./data",
			Strategies: []string{"sma-cross", "momentum", "rsi-reversion"},
		},
	}
}
