package dataset

import (
	"sort"

	"github.com/fairlens/fairlens/internal/fairness"
)

// GroupSummary holds descriptive statistics for one group's records.
type GroupSummary struct {
	Group     string
	Count     int
	BaseRate  float64 // mean observed outcome
	HighRate  float64 // fraction predicted high risk
	MeanScore float64
	Deciles   [fairness.MaxScore]int // score histogram, index score-1

	outcomes int
	high     int
	scoreSum int
}

func (s *GroupSummary) update(r fairness.Record) {
	s.Count++
	s.scoreSum += r.Score
	s.Deciles[r.Score-1]++
	if r.Outcome {
		s.outcomes++
	}
	if r.Predicted {
		s.high++
	}
}

func (s *GroupSummary) finalize() {
	if s.Count == 0 {
		return
	}
	s.BaseRate = float64(s.outcomes) / float64(s.Count)
	s.HighRate = float64(s.high) / float64(s.Count)
	s.MeanScore = float64(s.scoreSum) / float64(s.Count)
}

// Summarize computes per-group descriptive statistics, ordered by group
// label.
func Summarize(records []fairness.Record) []GroupSummary {
	byGroup := make(map[string]*GroupSummary)
	for _, r := range records {
		s, ok := byGroup[r.Group]
		if !ok {
			s = &GroupSummary{Group: r.Group}
			byGroup[r.Group] = s
		}
		s.update(r)
	}

	summaries := make([]GroupSummary, 0, len(byGroup))
	for _, s := range byGroup {
		s.finalize()
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Group < summaries[j].Group
	})
	return summaries
}
