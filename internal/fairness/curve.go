package fairness

import (
	"errors"
	"sort"
)

// ParityPoint is one threshold sample of the predictive parity curve.
// Valid is false when either group has no predicted-positive records at
// the threshold, so the calibration ratio is undefined there.
type ParityPoint struct {
	Threshold int
	Ratio     float64
	Valid     bool
}

// PredictiveParityCurve sweeps integer thresholds lo..hi inclusive,
// ascending, and emits the calibration ratio at each. Thresholds whose
// (group, predicted-positive) cell is empty are emitted with Valid=false
// rather than silently skipped, so the caller sees exactly which
// operating points were undefined.
func PredictiveParityCurve(records []Record, groupA, groupB string, lo, hi int) ([]ParityPoint, error) {
	if lo > hi {
		return nil, errors.New("threshold range is empty")
	}
	if !hasGroup(records, groupA) {
		return nil, &EmptyGroupError{Group: groupA}
	}
	if !hasGroup(records, groupB) {
		return nil, &EmptyGroupError{Group: groupB}
	}

	points := make([]ParityPoint, 0, hi-lo+1)
	for t := lo; t <= hi; t++ {
		ratio, err := Calibration(records, groupA, groupB, t)
		if err != nil {
			var cell *EmptyCellError
			if errors.As(err, &cell) {
				points = append(points, ParityPoint{Threshold: t})
				continue
			}
			return nil, err
		}
		points = append(points, ParityPoint{Threshold: t, Ratio: ratio, Valid: true})
	}
	return points, nil
}

// RatioCurve compares two groups' ROC operating points threshold by
// threshold. The three slices are aligned: entry i holds groupA's rate
// divided by groupB's rate at Thresholds[i].
type RatioCurve struct {
	Thresholds []float64 // normalized scores in [0,1], strictly increasing
	FPRRatio   []float64 // groupA FPR / groupB FPR
	TPRRatio   []float64 // groupA TPR / groupB TPR
}

// rocGroup holds one group's min-max-normalized scores and outcomes.
type rocGroup struct {
	scores    []float64
	outcomes  []bool
	positives int
	negatives int
}

// rates computes the group's FPR and TPR with score >= t as the
// predicted-positive rule. The caller guarantees both outcome classes
// are present, so the denominators are never zero.
func (g *rocGroup) rates(t float64) (fpr, tpr float64) {
	fp, tp := 0, 0
	for i, s := range g.scores {
		if s < t {
			continue
		}
		if g.outcomes[i] {
			tp++
		} else {
			fp++
		}
	}
	return float64(fp) / float64(g.negatives), float64(tp) / float64(g.positives)
}

// ErrorRateRatioCurve computes both groups' empirical ROC curves over a
// shared threshold set and returns the pointwise FPR and TPR ratios.
//
// The threshold set is every distinct score observed in the combined
// two-group population, min-max normalized into [0,1] with a shared
// min/max so both groups are compared at matching operating points.
// Boundary thresholds where either group's FPR or TPR is zero are
// excluded: the ratio there is zero or undefined by division, and
// emitting a made-up value would misstate the comparison.
func ErrorRateRatioCurve(records []Record, groupA, groupB string) (*RatioCurve, error) {
	lo, hi, err := scoreBounds(records, groupA, groupB)
	if err != nil {
		return nil, err
	}
	if lo == hi {
		return nil, errors.New("score range is constant across the compared population")
	}

	a, err := collectGroup(records, groupA, lo, hi)
	if err != nil {
		return nil, err
	}
	b, err := collectGroup(records, groupB, lo, hi)
	if err != nil {
		return nil, err
	}

	curve := &RatioCurve{}
	for _, t := range sharedThresholds(a, b) {
		fprA, tprA := a.rates(t)
		fprB, tprB := b.rates(t)
		if fprA == 0 || tprA == 0 || fprB == 0 || tprB == 0 {
			continue
		}
		curve.Thresholds = append(curve.Thresholds, t)
		curve.FPRRatio = append(curve.FPRRatio, fprA/fprB)
		curve.TPRRatio = append(curve.TPRRatio, tprA/tprB)
	}
	return curve, nil
}

// scoreBounds finds the shared min and max raw score over both groups.
func scoreBounds(records []Record, groupA, groupB string) (lo, hi int, err error) {
	first := true
	seenA, seenB := false, false
	for _, r := range records {
		switch r.Group {
		case groupA:
			seenA = true
		case groupB:
			seenB = true
		default:
			continue
		}
		if first || r.Score < lo {
			lo = r.Score
		}
		if first || r.Score > hi {
			hi = r.Score
		}
		first = false
	}
	if !seenA {
		return 0, 0, &EmptyGroupError{Group: groupA}
	}
	if !seenB {
		return 0, 0, &EmptyGroupError{Group: groupB}
	}
	return lo, hi, nil
}

// collectGroup extracts one group's normalized scores and outcomes and
// verifies both outcome classes are present.
func collectGroup(records []Record, group string, lo, hi int) (*rocGroup, error) {
	g := &rocGroup{}
	span := float64(hi - lo)
	for _, r := range records {
		if r.Group != group {
			continue
		}
		g.scores = append(g.scores, float64(r.Score-lo)/span)
		g.outcomes = append(g.outcomes, r.Outcome)
		if r.Outcome {
			g.positives++
		} else {
			g.negatives++
		}
	}
	if g.positives == 0 {
		return nil, &DegenerateCurveError{Group: group, Reason: "no positive outcomes"}
	}
	if g.negatives == 0 {
		return nil, &DegenerateCurveError{Group: group, Reason: "no negative outcomes"}
	}
	return g, nil
}

// sharedThresholds returns the distinct normalized scores across both
// groups in increasing order.
func sharedThresholds(a, b *rocGroup) []float64 {
	seen := make(map[float64]struct{}, len(a.scores)+len(b.scores))
	for _, s := range a.scores {
		seen[s] = struct{}{}
	}
	for _, s := range b.scores {
		seen[s] = struct{}{}
	}
	ts := make([]float64, 0, len(seen))
	for t := range seen {
		ts = append(ts, t)
	}
	sort.Float64s(ts)
	return ts
}
