package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/fairlens/fairlens/internal/fairness"
)

// Default cleaning parameters.
const (
	DefaultWindow    = 30 // max days between screening and arrest
	DefaultThreshold = 5  // decile score flagged as high risk
)

// Sentinel values the COMPAS export uses for unusable rows.
const (
	trafficChargeDegree = "O"
	unscoredText        = "N/A"
	noRecidRecord       = -1
)

// Options configures loading and cleaning.
type Options struct {
	Schema    Schema
	GroupA    string // group alleged to be disadvantaged
	GroupB    string
	Threshold int // Predicted = Score >= Threshold
	Window    int // max |days between screening and arrest|
}

// DropCounts tallies rows excluded during cleaning, by reason.
type DropCounts struct {
	BadRow          int // malformed or out-of-range fields
	ScreeningWindow int // screening too far from the arrest date
	NoRecidRecord   int // no recidivism record available
	TrafficCharge   int // ordinary traffic offense
	Unscored        int // case was never scored
	OtherGroup      int // outside the two compared groups
}

// Total returns the number of dropped rows across all reasons.
func (d DropCounts) Total() int {
	return d.BadRow + d.ScreeningWindow + d.NoRecidRecord +
		d.TrafficCharge + d.Unscored + d.OtherGroup
}

// ProgressCallback reports rows read so far during loading.
type ProgressCallback func(rowsRead int)

// Loader streams a CSV into validated fairness records. After Load
// returns, Rows and Drops describe what was read and what was excluded.
type Loader struct {
	Progress ProgressCallback
	Rows     int
	Drops    DropCounts

	opts Options
}

// NewLoader creates a loader, filling unset options with defaults.
func NewLoader(opts Options) *Loader {
	if opts.Schema == (Schema{}) {
		opts.Schema = DefaultSchema()
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Window == 0 {
		opts.Window = DefaultWindow
	}
	return &Loader{opts: opts}
}

// columns holds resolved header indexes; optional columns are -1.
type columns struct {
	group, score, outcome                             int
	scoreText, screeningDays, chargeDegree, recidFlag int
}

// Load reads the file and returns the cleaned two-group record set.
func (l *Loader) Load(path string) ([]fairness.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}

	cols, err := l.resolveColumns(headers)
	if err != nil {
		return nil, err
	}

	var records []fairness.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		l.Rows++
		if l.Progress != nil && l.Rows%1000 == 0 {
			l.Progress(l.Rows)
		}

		if rec, ok := l.cleanRow(row, cols); ok {
			records = append(records, rec)
		}
	}
	if l.Progress != nil {
		l.Progress(l.Rows)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"rows":    l.Rows,
		"kept":    len(records),
		"dropped": l.Drops.Total(),
	}).Debug("dataset loaded")

	return records, nil
}

// resolveColumns maps schema names to header positions. The group,
// score, and outcome columns must exist; filter columns may be absent.
func (l *Loader) resolveColumns(headers []string) (columns, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}

	lookup := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	s := l.opts.Schema
	cols := columns{
		group:         lookup(s.Group),
		score:         lookup(s.Score),
		outcome:       lookup(s.Outcome),
		scoreText:     lookup(s.ScoreText),
		screeningDays: lookup(s.ScreeningDays),
		chargeDegree:  lookup(s.ChargeDegree),
		recidFlag:     lookup(s.RecidFlag),
	}
	for _, required := range []struct {
		name string
		idx  int
	}{
		{s.Group, cols.group},
		{s.Score, cols.score},
		{s.Outcome, cols.outcome},
	} {
		if required.idx < 0 {
			return columns{}, fmt.Errorf("required column %q not found in header", required.name)
		}
	}
	return cols, nil
}

// cleanRow applies the cleaning filters to one row and converts it to a
// record. It returns false when the row was dropped, after counting the
// reason.
func (l *Loader) cleanRow(row []string, cols columns) (fairness.Record, bool) {
	field := func(idx int) (string, bool) {
		if idx < 0 || idx >= len(row) {
			return "", false
		}
		return row[idx], true
	}

	if v, ok := field(cols.screeningDays); ok {
		days, err := strconv.ParseFloat(v, 64)
		if err != nil || math.Abs(days) > float64(l.opts.Window) {
			l.Drops.ScreeningWindow++
			return fairness.Record{}, false
		}
	}
	if v, ok := field(cols.recidFlag); ok {
		flag, err := strconv.Atoi(v)
		if err != nil {
			l.Drops.BadRow++
			return fairness.Record{}, false
		}
		if flag == noRecidRecord {
			l.Drops.NoRecidRecord++
			return fairness.Record{}, false
		}
	}
	if v, ok := field(cols.chargeDegree); ok && v == trafficChargeDegree {
		l.Drops.TrafficCharge++
		return fairness.Record{}, false
	}
	if v, ok := field(cols.scoreText); ok && v == unscoredText {
		l.Drops.Unscored++
		return fairness.Record{}, false
	}

	group, _ := field(cols.group)
	if group != l.opts.GroupA && group != l.opts.GroupB {
		l.Drops.OtherGroup++
		return fairness.Record{}, false
	}

	scoreField, _ := field(cols.score)
	score, err := strconv.Atoi(scoreField)
	if err != nil {
		l.Drops.BadRow++
		return fairness.Record{}, false
	}
	outcomeField, _ := field(cols.outcome)
	outcome, err := strconv.Atoi(outcomeField)
	if err != nil || (outcome != 0 && outcome != 1) {
		l.Drops.BadRow++
		return fairness.Record{}, false
	}

	rec := fairness.Record{
		Group:     group,
		Score:     score,
		Predicted: score >= l.opts.Threshold,
		Outcome:   outcome == 1,
	}
	if err := rec.Validate(); err != nil {
		l.Drops.BadRow++
		return fairness.Record{}, false
	}
	return rec, true
}
