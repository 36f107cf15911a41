package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/fairness"
)

var (
	cfgFile   string
	verbose   bool
	groupA    string
	groupB    string
	threshold int
)

var rootCmd = &cobra.Command{
	Use:   "fairlens",
	Short: "Group-fairness audit for risk-score datasets",
	Long: `fairlens audits COMPAS-style recidivism datasets for group fairness:
disparate impact under the 80% rule, calibration and predictive parity
across score thresholds, and error-rate ratios at shared ROC operating
points for two compared demographic groups.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.fairlens.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringVar(&groupA, "group-a", "",
		"group alleged to be disadvantaged (default from config)")
	rootCmd.PersistentFlags().StringVar(&groupB, "group-b", "",
		"group compared against (default from config)")
	rootCmd.PersistentFlags().IntVar(&threshold, "threshold", 0,
		"decile score flagged as high risk (default from config)")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if groupA != "" {
		cfg.GroupA = groupA
	}
	if groupB != "" {
		cfg.GroupB = groupB
	}
	if threshold != 0 {
		if threshold < fairness.MinScore || threshold > fairness.MaxScore {
			return nil, fmt.Errorf("threshold %d outside [%d,%d]",
				threshold, fairness.MinScore, fairness.MaxScore)
		}
		cfg.Threshold = threshold
	}
	if cfg.GroupA == cfg.GroupB {
		return nil, fmt.Errorf("compared groups must differ, both are %q", cfg.GroupA)
	}
	return cfg, nil
}
