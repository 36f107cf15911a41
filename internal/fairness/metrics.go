// Package fairness computes group-comparative fairness metrics over a
// cleaned, two-group collection of defendant-case records: disparate
// impact, calibration / predictive parity across score thresholds, and
// error-rate ratios at shared ROC operating points.
//
// Every function is pure: it reads the record slice, derives aggregates,
// and never mutates shared state. Zero-denominator cases surface as typed
// errors instead of default ratios, since a silent fallback would
// misrepresent the result of an audit.
package fairness

// AdverseImpactThreshold is the conventional 80%-rule cutoff: a
// disparate-impact ratio below it (or whose reciprocal is below it)
// flags adverse impact.
const AdverseImpactThreshold = 0.8

// Predicate selects the positive condition a disparate-impact comparison
// counts, typically high predicted risk or an observed outcome.
type Predicate func(Record) bool

// ByPrediction counts records flagged high risk by the score threshold.
func ByPrediction(r Record) bool { return r.Predicted }

// ByOutcome counts records with an observed recidivism outcome.
func ByOutcome(r Record) bool { return r.Outcome }

// DisparateImpact returns P(pred|groupB) / P(pred|groupA), the ratio of
// positive-condition rates between the two groups. groupA is the group
// alleged to be disadvantaged, so under the 80% rule a ratio below
// AdverseImpactThreshold (or above its reciprocal) flags adverse impact.
func DisparateImpact(records []Record, groupA, groupB string, pred Predicate) (float64, error) {
	rateA, err := positiveRate(records, groupA, pred)
	if err != nil {
		return 0, err
	}
	rateB, err := positiveRate(records, groupB, pred)
	if err != nil {
		return 0, err
	}
	return rateB / rateA, nil
}

// AdverseImpact reports whether a disparate-impact ratio falls outside
// the 80%-rule band in either direction.
func AdverseImpact(ratio float64) bool {
	return ratio < AdverseImpactThreshold || 1/ratio < AdverseImpactThreshold
}

// Calibration returns the ratio of observed outcome rates among records
// predicted high risk (Score >= threshold): groupA's conditional mean
// over groupB's. A ratio of 1.0 means the score is equally calibrated
// for both groups at that threshold.
func Calibration(records []Record, groupA, groupB string, threshold int) (float64, error) {
	meanA, err := outcomeMeanAtOrAbove(records, groupA, threshold)
	if err != nil {
		return 0, err
	}
	meanB, err := outcomeMeanAtOrAbove(records, groupB, threshold)
	if err != nil {
		return 0, err
	}
	return meanA / meanB, nil
}

// positiveRate computes the fraction of a group's records satisfying pred.
func positiveRate(records []Record, group string, pred Predicate) (float64, error) {
	total, hits := 0, 0
	for _, r := range records {
		if r.Group != group {
			continue
		}
		total++
		if pred(r) {
			hits++
		}
	}
	if total == 0 {
		return 0, &EmptyGroupError{Group: group}
	}
	return float64(hits) / float64(total), nil
}

// outcomeMeanAtOrAbove computes the empirical P(outcome=1 | score>=threshold)
// within one group.
func outcomeMeanAtOrAbove(records []Record, group string, threshold int) (float64, error) {
	total, hits := 0, 0
	for _, r := range records {
		if r.Group != group || r.Score < threshold {
			continue
		}
		total++
		if r.Outcome {
			hits++
		}
	}
	if total == 0 {
		return 0, &EmptyCellError{Group: group, Threshold: threshold}
	}
	return float64(hits) / float64(total), nil
}

// hasGroup reports whether at least one record belongs to the group.
func hasGroup(records []Record, group string) bool {
	for _, r := range records {
		if r.Group == group {
			return true
		}
	}
	return false
}
