package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/fairlens/fairlens/internal/dataset"
	"github.com/fairlens/fairlens/internal/fairness"
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Show per-group descriptive statistics for a dataset",
	Long: `Load and clean a CSV risk-score dataset and print descriptive
statistics for the two compared groups: record counts, observed outcome
base rates, high-risk rates, mean scores, and the decile histogram.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		loader := dataset.NewLoader(dataset.Options{
			Schema:    cfg.Columns,
			GroupA:    cfg.GroupA,
			GroupB:    cfg.GroupB,
			Threshold: cfg.Threshold,
			Window:    cfg.Window,
		})

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Reading rows..."),
			progressbar.OptionSetWidth(20),
		)
		loader.Progress = func(rows int) { bar.Add(1) }

		start := time.Now()
		records, err := loader.Load(args[0])
		bar.Finish()
		if err != nil {
			return err
		}

		fmt.Printf("\nFile: %s\n", args[0])
		fmt.Printf("- Rows: %s\n", humanize.Comma(int64(loader.Rows)))
		fmt.Printf("- Kept after cleaning: %s\n", humanize.Comma(int64(len(records))))
		fmt.Printf("- Dropped: %s\n", humanize.Comma(int64(loader.Drops.Total())))
		fmt.Printf("- Processing time: %v\n", time.Since(start).Round(time.Millisecond))

		for _, s := range dataset.Summarize(records) {
			fmt.Printf("\nGroup: %s\n", s.Group)
			fmt.Printf("  Count: %s\n", humanize.Comma(int64(s.Count)))
			fmt.Printf("  Base rate: %.1f%%\n", s.BaseRate*100)
			fmt.Printf("  High-risk rate (score >= %d): %.1f%%\n", cfg.Threshold, s.HighRate*100)
			fmt.Printf("  Mean score: %.2f\n", s.MeanScore)

			if verbose {
				fmt.Println("  Decile histogram:")
				for score := fairness.MinScore; score <= fairness.MaxScore; score++ {
					fmt.Printf("    %2d: %d\n", score, s.Deciles[score-1])
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
