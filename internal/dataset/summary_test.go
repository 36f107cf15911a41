package dataset

import (
	"testing"

	"github.com/fairlens/fairlens/internal/fairness"
)

func TestSummarize(t *testing.T) {
	records := []fairness.Record{
		{Group: "B", Score: 2, Predicted: false, Outcome: false},
		{Group: "A", Score: 8, Predicted: true, Outcome: true},
		{Group: "A", Score: 4, Predicted: false, Outcome: true},
		{Group: "A", Score: 8, Predicted: true, Outcome: false},
	}

	summaries := Summarize(records)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 group summaries, got %d", len(summaries))
	}

	a := summaries[0]
	if a.Group != "A" {
		t.Fatalf("summaries not ordered by group: %q first", a.Group)
	}
	if a.Count != 3 {
		t.Errorf("group A count = %d, want 3", a.Count)
	}
	if got := a.BaseRate; got < 0.66 || got > 0.67 {
		t.Errorf("group A base rate = %v, want 2/3", got)
	}
	if got := a.HighRate; got < 0.66 || got > 0.67 {
		t.Errorf("group A high-risk rate = %v, want 2/3", got)
	}
	if got := a.MeanScore; got < 6.66 || got > 6.67 {
		t.Errorf("group A mean score = %v, want 20/3", got)
	}
	if a.Deciles[7] != 2 || a.Deciles[3] != 1 {
		t.Errorf("group A decile histogram wrong: %v", a.Deciles)
	}

	b := summaries[1]
	if b.Count != 1 || b.BaseRate != 0 || b.MeanScore != 2 {
		t.Errorf("group B summary wrong: %+v", b)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("expected no summaries for empty input, got %d", len(got))
	}
}
