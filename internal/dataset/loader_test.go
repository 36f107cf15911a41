package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const testCSV = `race,decile_score,score_text,two_year_recid,days_b_screening_arrest,c_charge_degree,is_recid
Caucasian,3,Low,0,-1,F,0
African-American,8,High,1,0,F,1
African-American,5,Medium,1,40,F,1
Hispanic,4,Low,0,0,M,0
Caucasian,2,Low,0,0,O,0
African-American,7,Medium,1,0,F,-1
Caucasian,1,N/A,0,0,F,0
Caucasian,12,High,0,0,F,0
`

func TestLoaderCleansRows(t *testing.T) {
	path := writeTestCSV(t, testCSV)

	loader := NewLoader(Options{
		GroupA: "African-American",
		GroupB: "Caucasian",
	})
	records, err := loader.Load(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 8, loader.Rows)
	assert.Equal(t, DropCounts{
		BadRow:          1, // score 12 out of range
		ScreeningWindow: 1,
		NoRecidRecord:   1,
		TrafficCharge:   1,
		Unscored:        1,
		OtherGroup:      1,
	}, loader.Drops)
	assert.Equal(t, 6, loader.Drops.Total())

	assert.Equal(t, "Caucasian", records[0].Group)
	assert.Equal(t, 3, records[0].Score)
	assert.False(t, records[0].Predicted)
	assert.False(t, records[0].Outcome)

	assert.Equal(t, "African-American", records[1].Group)
	assert.Equal(t, 8, records[1].Score)
	assert.True(t, records[1].Predicted)
	assert.True(t, records[1].Outcome)
}

func TestLoaderThreshold(t *testing.T) {
	path := writeTestCSV(t, `race,decile_score,two_year_recid
A,4,0
A,5,1
`)

	loader := NewLoader(Options{GroupA: "A", GroupB: "B", Threshold: 5})
	records, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.False(t, records[0].Predicted)
	assert.True(t, records[1].Predicted)
}

func TestLoaderSkipsFiltersForMissingColumns(t *testing.T) {
	// Only the required columns exist; every row outside the audited
	// groups is still excluded.
	path := writeTestCSV(t, `race,decile_score,two_year_recid
A,4,0
B,9,1
C,2,0
`)

	loader := NewLoader(Options{GroupA: "A", GroupB: "B"})
	records, err := loader.Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 1, loader.Drops.OtherGroup)
}

func TestLoaderMissingRequiredColumn(t *testing.T) {
	path := writeTestCSV(t, `race,two_year_recid
A,0
`)

	loader := NewLoader(Options{GroupA: "A", GroupB: "B"})
	_, err := loader.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decile_score")
}

func TestLoaderProgressCallback(t *testing.T) {
	path := writeTestCSV(t, testCSV)

	loader := NewLoader(Options{GroupA: "African-American", GroupB: "Caucasian"})
	var calls []int
	loader.Progress = func(rows int) { calls = append(calls, rows) }

	_, err := loader.Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, calls)
	assert.Equal(t, loader.Rows, calls[len(calls)-1])
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(Options{GroupA: "A", GroupB: "B"})
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
