package fairness

import "fmt"

// Decile score bounds used by COMPAS-style risk instruments.
const (
	MinScore = 1
	MaxScore = 10
)

// Record is one defendant-case entry. Records are built once during
// ingestion and treated as read-only by every metric function.
type Record struct {
	Group     string // demographic group label
	Score     int    // decile risk score, MinScore..MaxScore
	Predicted bool   // score at or above the audit threshold
	Outcome   bool   // observed recidivism within the follow-up window
}

// Validate checks the field invariants on a single record.
func (r Record) Validate() error {
	if r.Group == "" {
		return fmt.Errorf("record has an empty group label")
	}
	if r.Score < MinScore || r.Score > MaxScore {
		return fmt.Errorf("score %d outside [%d,%d]", r.Score, MinScore, MaxScore)
	}
	return nil
}
