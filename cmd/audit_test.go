package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlens/fairlens/internal/config"
)

// writeDataset builds a small but non-degenerate COMPAS-shaped CSV: both
// groups span the score range and carry both outcome classes.
func writeDataset(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("race,decile_score,score_text,two_year_recid,days_b_screening_arrest,c_charge_degree,is_recid\n")
	for s := 1; s <= 10; s++ {
		for i := 0; i < 4; i++ {
			aOutcome := 0
			if s >= 4 && i < 3 {
				aOutcome = 1
			}
			bOutcome := 0
			if s >= 6 && i < 2 {
				bOutcome = 1
			}
			b.WriteString("African-American," + strconv.Itoa(s) + ",Medium," + strconv.Itoa(aOutcome) + ",0,F," + strconv.Itoa(aOutcome) + "\n")
			b.WriteString("Caucasian," + strconv.Itoa(s) + ",Medium," + strconv.Itoa(bOutcome) + ",0,F," + strconv.Itoa(bOutcome) + "\n")
		}
	}
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestAuditFile(t *testing.T) {
	path := writeDataset(t)
	cfg := config.Default()

	audit := auditFile(path, cfg)
	require.NoError(t, audit.Err)
	assert.Equal(t, 80, audit.Rows)
	assert.Equal(t, 80, audit.Kept)
	assert.Len(t, audit.Summaries, 2)
	assert.Greater(t, audit.PredictionDI, 0.0)
	assert.Greater(t, audit.OutcomeDI, 0.0)
	assert.Greater(t, audit.Calibration, 0.0)
	assert.Len(t, audit.Parity, 10)
	require.NotNil(t, audit.ErrorRates)
	assert.NotEmpty(t, audit.ErrorRates.Thresholds)
	assert.Empty(t, audit.Notes)
}

func TestAuditFileMissingGroup(t *testing.T) {
	path := writeDataset(t)
	cfg := config.Default()
	cfg.GroupB = "Hispanic" // not present in the dataset

	audit := auditFile(path, cfg)
	require.Error(t, audit.Err)
	assert.Contains(t, audit.Err.Error(), "Hispanic")
}

func TestAuditFileUnreadable(t *testing.T) {
	cfg := config.Default()
	audit := auditFile(filepath.Join(t.TempDir(), "absent.csv"), cfg)
	require.Error(t, audit.Err)
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeOutput("report body\n", path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report body\n", string(content))
}
