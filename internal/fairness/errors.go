package fairness

import "fmt"

// EmptyGroupError reports that a compared group has no records at all.
// Metrics never substitute a default ratio for a missing group.
type EmptyGroupError struct {
	Group string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("group %q has no records", e.Group)
}

// EmptyCellError reports that a group has no records in the score cell a
// conditional mean was requested for.
type EmptyCellError struct {
	Group     string
	Threshold int
}

func (e *EmptyCellError) Error() string {
	return fmt.Sprintf("group %q has no records with score >= %d", e.Group, e.Threshold)
}

// DegenerateCurveError reports that a group's ROC curve is undefined
// because the group carries only one outcome class.
type DegenerateCurveError struct {
	Group  string
	Reason string
}

func (e *DegenerateCurveError) Error() string {
	return fmt.Sprintf("ROC curve undefined for group %q: %s", e.Group, e.Reason)
}
