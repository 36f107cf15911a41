// Package report renders audit results as plain-text tables for stdout
// or an output file.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/fairlens/fairlens/internal/dataset"
	"github.com/fairlens/fairlens/internal/fairness"
)

// Audit holds everything computed for one dataset file.
type Audit struct {
	Path      string
	Rows      int
	Kept      int
	Drops     dataset.DropCounts
	GroupA    string
	GroupB    string
	Threshold int

	Summaries    []dataset.GroupSummary
	PredictionDI float64
	OutcomeDI    float64
	Calibration  float64
	Parity       []fairness.ParityPoint
	ErrorRates   *fairness.RatioCurve

	// Notes carries metric-level failures that did not abort the audit,
	// e.g. a degenerate ROC curve.
	Notes []string

	ProcessingTime time.Duration
	Err            error
}

// Render formats all audit results into one report.
func Render(results []Audit, totalTime time.Duration) string {
	var out strings.Builder

	out.WriteString("=== FAIRNESS AUDIT SUMMARY ===\n")
	out.WriteString(fmt.Sprintf("Files audited: %d\n", len(results)))

	var totalRows, totalKept int
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		totalRows += r.Rows
		totalKept += r.Kept
	}
	out.WriteString(fmt.Sprintf("Rows read: %s, kept after cleaning: %s\n",
		humanize.Comma(int64(totalRows)), humanize.Comma(int64(totalKept))))
	out.WriteString(fmt.Sprintf("Total processing time: %v\n\n", totalTime.Round(time.Millisecond)))

	for _, r := range results {
		renderAudit(&out, r)
	}
	return out.String()
}

func renderAudit(out *strings.Builder, r Audit) {
	out.WriteString(fmt.Sprintf("File: %s\n", filepath.Base(r.Path)))
	if r.Err != nil {
		out.WriteString(fmt.Sprintf("  FAILED: %v\n\n", r.Err))
		return
	}

	out.WriteString(fmt.Sprintf("  Rows: %s read, %s kept, %s dropped\n",
		humanize.Comma(int64(r.Rows)), humanize.Comma(int64(r.Kept)),
		humanize.Comma(int64(r.Drops.Total()))))
	renderDrops(out, r.Drops)
	out.WriteString(fmt.Sprintf("  Compared groups: %s vs %s, high-risk threshold: score >= %d\n\n",
		r.GroupA, r.GroupB, r.Threshold))

	renderGroupProfile(out, r.Summaries)
	renderDisparateImpact(out, r)
	renderParity(out, r.Parity)
	renderErrorRates(out, r.ErrorRates)

	for _, note := range r.Notes {
		out.WriteString(fmt.Sprintf("  note: %s\n", note))
	}
	out.WriteString("\n")
}

func renderDrops(out *strings.Builder, d dataset.DropCounts) {
	if d.Total() == 0 {
		return
	}
	parts := make([]string, 0, 6)
	add := func(n int, reason string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(n)), reason))
		}
	}
	add(d.ScreeningWindow, "outside screening window")
	add(d.NoRecidRecord, "no recidivism record")
	add(d.TrafficCharge, "traffic charge")
	add(d.Unscored, "unscored")
	add(d.OtherGroup, "other group")
	add(d.BadRow, "malformed")
	out.WriteString(fmt.Sprintf("  Dropped: %s\n", strings.Join(parts, ", ")))
}

func renderGroupProfile(out *strings.Builder, summaries []dataset.GroupSummary) {
	if len(summaries) == 0 {
		return
	}
	out.WriteString("  === GROUP PROFILE ===\n")
	out.WriteString(fmt.Sprintf("  %-20s %10s %10s %12s %11s\n",
		"Group", "Count", "Base Rate", "High-Risk %", "Mean Score"))
	for _, s := range summaries {
		out.WriteString(fmt.Sprintf("  %-20s %10s %9.1f%% %11.1f%% %11.2f\n",
			s.Group, humanize.Comma(int64(s.Count)),
			s.BaseRate*100, s.HighRate*100, s.MeanScore))
	}
	out.WriteString("\n")
}

func renderDisparateImpact(out *strings.Builder, r Audit) {
	out.WriteString("  === DISPARATE IMPACT (80% RULE) ===\n")
	out.WriteString(fmt.Sprintf("  High-risk rate ratio (%s / %s): %.3f %s\n",
		r.GroupB, r.GroupA, r.PredictionDI, verdict(r.PredictionDI)))
	out.WriteString(fmt.Sprintf("  Outcome rate ratio   (%s / %s): %.3f %s\n",
		r.GroupB, r.GroupA, r.OutcomeDI, verdict(r.OutcomeDI)))
	out.WriteString(fmt.Sprintf("  Calibration at threshold %d (%s / %s): %.3f\n\n",
		r.Threshold, r.GroupA, r.GroupB, r.Calibration))
}

func verdict(ratio float64) string {
	if fairness.AdverseImpact(ratio) {
		return "⚠️  adverse impact"
	}
	return "ok"
}

func renderParity(out *strings.Builder, points []fairness.ParityPoint) {
	if len(points) == 0 {
		return
	}
	out.WriteString("  === PREDICTIVE PARITY BY THRESHOLD ===\n")
	out.WriteString(fmt.Sprintf("  %10s %12s\n", "Threshold", "Ratio"))
	for _, p := range points {
		if p.Valid {
			out.WriteString(fmt.Sprintf("  %10d %12.3f\n", p.Threshold, p.Ratio))
		} else {
			out.WriteString(fmt.Sprintf("  %10d %12s\n", p.Threshold, "undefined"))
		}
	}
	out.WriteString("\n")
}

func renderErrorRates(out *strings.Builder, curve *fairness.RatioCurve) {
	if curve == nil || len(curve.Thresholds) == 0 {
		return
	}
	out.WriteString("  === ERROR RATE RATIOS (A / B) ===\n")
	out.WriteString(fmt.Sprintf("  %10s %12s %12s\n", "Threshold", "FPR Ratio", "TPR Ratio"))
	for i, t := range curve.Thresholds {
		out.WriteString(fmt.Sprintf("  %10.2f %12.3f %12.3f\n",
			t, curve.FPRRatio[i], curve.TPRRatio[i]))
	}
	out.WriteString("\n")
}
