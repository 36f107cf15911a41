// Package config loads fairlens settings from a YAML file, environment
// variables, and defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/fairlens/fairlens/internal/dataset"
	"github.com/fairlens/fairlens/internal/fairness"
)

// Config holds all audit settings.
type Config struct {
	// Columns maps record fields to CSV column names.
	Columns dataset.Schema `mapstructure:"columns"`

	// Groups selects the two compared groups. GroupA is the group
	// alleged to be disadvantaged.
	GroupA string `mapstructure:"group_a"`
	GroupB string `mapstructure:"group_b"`

	// Threshold is the decile score flagged as high risk.
	Threshold int `mapstructure:"threshold"`

	// Window is the max number of days between screening and arrest.
	Window int `mapstructure:"window"`

	// ScoreRange bounds the predictive parity threshold sweep.
	ScoreMin int `mapstructure:"score_min"`
	ScoreMax int `mapstructure:"score_max"`
}

// Default returns the COMPAS audit defaults.
func Default() *Config {
	return &Config{
		Columns:   dataset.DefaultSchema(),
		GroupA:    "African-American",
		GroupB:    "Caucasian",
		Threshold: dataset.DefaultThreshold,
		Window:    dataset.DefaultWindow,
		ScoreMin:  fairness.MinScore,
		ScoreMax:  fairness.MaxScore,
	}
}

// Load reads configuration from the given file, or from .fairlens.yaml
// in the working directory or home directory when path is empty. A
// missing config file is fine; defaults and FAIRLENS_* environment
// variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	// Leaf-level defaults so a config file can override single columns.
	v.SetDefault("columns.group", cfg.Columns.Group)
	v.SetDefault("columns.score", cfg.Columns.Score)
	v.SetDefault("columns.score_text", cfg.Columns.ScoreText)
	v.SetDefault("columns.outcome", cfg.Columns.Outcome)
	v.SetDefault("columns.screening_days", cfg.Columns.ScreeningDays)
	v.SetDefault("columns.charge_degree", cfg.Columns.ChargeDegree)
	v.SetDefault("columns.recid_flag", cfg.Columns.RecidFlag)
	v.SetDefault("group_a", cfg.GroupA)
	v.SetDefault("group_b", cfg.GroupB)
	v.SetDefault("threshold", cfg.Threshold)
	v.SetDefault("window", cfg.Window)
	v.SetDefault("score_min", cfg.ScoreMin)
	v.SetDefault("score_max", cfg.ScoreMax)

	v.SetEnvPrefix("FAIRLENS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".fairlens")
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(homeDir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.GroupA == "" || c.GroupB == "" {
		return fmt.Errorf("both compared groups must be set")
	}
	if c.GroupA == c.GroupB {
		return fmt.Errorf("compared groups must differ, both are %q", c.GroupA)
	}
	if c.Threshold < fairness.MinScore || c.Threshold > fairness.MaxScore {
		return fmt.Errorf("threshold %d outside [%d,%d]", c.Threshold, fairness.MinScore, fairness.MaxScore)
	}
	if c.ScoreMin > c.ScoreMax {
		return fmt.Errorf("score range [%d,%d] is empty", c.ScoreMin, c.ScoreMax)
	}
	return nil
}
