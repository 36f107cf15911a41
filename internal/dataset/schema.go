// Package dataset loads a defendant-case CSV and cleans it into the
// two-group record collection the fairness metrics consume. Cleaning
// follows the usual COMPAS methodology: rows with a screening date more
// than a configurable number of days from the arrest are dropped, as are
// ordinary traffic offenses, unscored cases, and cases with no
// recidivism record.
package dataset

// Schema maps the logical record fields to CSV column names. The group,
// score, and outcome columns are required; the remaining columns drive
// cleaning filters that are skipped when the column is absent.
type Schema struct {
	Group         string `mapstructure:"group"`
	Score         string `mapstructure:"score"`
	ScoreText     string `mapstructure:"score_text"`
	Outcome       string `mapstructure:"outcome"`
	ScreeningDays string `mapstructure:"screening_days"`
	ChargeDegree  string `mapstructure:"charge_degree"`
	RecidFlag     string `mapstructure:"recid_flag"`
}

// DefaultSchema returns the column names of the ProPublica COMPAS export.
func DefaultSchema() Schema {
	return Schema{
		Group:         "race",
		Score:         "decile_score",
		ScoreText:     "score_text",
		Outcome:       "two_year_recid",
		ScreeningDays: "days_b_screening_arrest",
		ChargeDegree:  "c_charge_degree",
		RecidFlag:     "is_recid",
	}
}
