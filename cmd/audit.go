package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/connectors"
	"github.com/fairlens/fairlens/internal/dataset"
	"github.com/fairlens/fairlens/internal/fairness"
	"github.com/fairlens/fairlens/internal/report"
)

var (
	auditRecursive bool
	auditOutput    string
	auditMinSize   int64
	auditMaxSize   int64
)

var auditCmd = &cobra.Command{
	Use:   "audit [file or directory]",
	Short: "Compute group-fairness metrics for CSV risk-score datasets",
	Long: `Audit one CSV file, or every CSV file in a directory, for group
fairness between the two configured demographic groups.

Examples:
  fairlens audit compas-scores.csv
  fairlens audit /data/exports/ --recursive
  fairlens audit compas-scores.csv --group-a African-American --group-b Caucasian
  fairlens audit compas-scores.csv --threshold 7 --output audit.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		target := args[0]
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", target, err)
		}

		var files []connectors.FileMeta
		if info.IsDir() {
			files, err = connectors.DiscoverFiles(target, "csv", connectors.DiscoveryOptions{
				Recursive: auditRecursive,
				MinSize:   auditMinSize,
				MaxSize:   auditMaxSize,
			})
			if err != nil {
				return fmt.Errorf("failed to discover files: %w", err)
			}
		} else {
			if !strings.EqualFold(filepath.Ext(target), ".csv") {
				return fmt.Errorf("file must be a CSV file: %s", target)
			}
			files = []connectors.FileMeta{{Path: target}}
		}

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Auditing files..."),
			progressbar.OptionSetWidth(20),
		)

		start := time.Now()
		results := make([]report.Audit, 0, len(files))
		for _, f := range files {
			results = append(results, auditFile(f.Path, cfg))
			bar.Add(1)
		}
		bar.Finish()

		return writeOutput(report.Render(results, time.Since(start)), auditOutput)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().BoolVarP(&auditRecursive, "recursive", "r", false,
		"process directories recursively")
	auditCmd.Flags().StringVar(&auditOutput, "output", "",
		"output file to save results (default: stdout)")
	auditCmd.Flags().Int64Var(&auditMinSize, "min-size", 0,
		"minimum file size in bytes")
	auditCmd.Flags().Int64Var(&auditMaxSize, "max-size", 0,
		"maximum file size in bytes")
}

// auditFile loads one dataset and computes every fairness metric.
// Empty-group failures abort the file's audit; data-conditional metric
// failures (empty cells, degenerate ROC curves) become report notes.
func auditFile(path string, cfg *config.Config) report.Audit {
	start := time.Now()
	audit := report.Audit{
		Path:      path,
		GroupA:    cfg.GroupA,
		GroupB:    cfg.GroupB,
		Threshold: cfg.Threshold,
	}

	loader := dataset.NewLoader(dataset.Options{
		Schema:    cfg.Columns,
		GroupA:    cfg.GroupA,
		GroupB:    cfg.GroupB,
		Threshold: cfg.Threshold,
		Window:    cfg.Window,
	})
	records, err := loader.Load(path)
	if err != nil {
		audit.Err = err
		return audit
	}
	audit.Rows = loader.Rows
	audit.Kept = len(records)
	audit.Drops = loader.Drops
	audit.Summaries = dataset.Summarize(records)

	if audit.PredictionDI, err = fairness.DisparateImpact(records, cfg.GroupA, cfg.GroupB, fairness.ByPrediction); err != nil {
		audit.Err = err
		return audit
	}
	if audit.OutcomeDI, err = fairness.DisparateImpact(records, cfg.GroupA, cfg.GroupB, fairness.ByOutcome); err != nil {
		audit.Err = err
		return audit
	}

	if audit.Calibration, err = fairness.Calibration(records, cfg.GroupA, cfg.GroupB, cfg.Threshold); err != nil {
		audit.Notes = append(audit.Notes, err.Error())
	}
	if audit.Parity, err = fairness.PredictiveParityCurve(records, cfg.GroupA, cfg.GroupB, cfg.ScoreMin, cfg.ScoreMax); err != nil {
		audit.Notes = append(audit.Notes, err.Error())
	}
	if audit.ErrorRates, err = fairness.ErrorRateRatioCurve(records, cfg.GroupA, cfg.GroupB); err != nil {
		var empty *fairness.EmptyGroupError
		if errors.As(err, &empty) {
			audit.Err = err
			return audit
		}
		audit.Notes = append(audit.Notes, err.Error())
	}

	audit.ProcessingTime = time.Since(start)
	logrus.WithFields(logrus.Fields{
		"path":    path,
		"kept":    audit.Kept,
		"elapsed": audit.ProcessingTime,
	}).Debug("audit complete")
	return audit
}

// writeOutput prints the report, or saves it when an output path is set.
func writeOutput(content, outputFile string) error {
	if outputFile == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write to output file %s: %w", outputFile, err)
	}
	fmt.Printf("Results saved to %s\n", outputFile)
	return nil
}
