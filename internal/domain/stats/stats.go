// Package stats contains the read-side aggregation functions: pure,
// stateless computations over a snapshot. Nothing here mutates state.
//
// Numeric policy: a record missing a value for a numeric field, or holding
// a non-numeric value under a numeric field's id, contributes 0. Averages
// never produce NaN and aggregation never panics on schema drift.
package stats

import (
	"sort"
	"strconv"

	"github.com/okian/scoutbase/internal/domain/model"
)

// FieldAverage is one per-team mean for a numeric field.
type FieldAverage struct {
	FieldID string  `json:"fieldId"`
	Label   string  `json:"label"`
	Average float64 `json:"average"`
	// Max echoes the field's declared upper bound, for chart scaling.
	// Zero when the field declares none.
	Max float64 `json:"max,omitempty"`
}

// TrendPoint is one match's summed numeric score for a team.
type TrendPoint struct {
	MatchNumber string  `json:"matchNumber"`
	TeamNumber  string  `json:"teamNumber"`
	Score       float64 `json:"score"`
}

// CompareRow holds one numeric field's per-team averages.
type CompareRow struct {
	FieldID  string             `json:"fieldId"`
	Label    string             `json:"label"`
	Averages map[string]float64 `json:"averages"`
}

// Totals is the dashboard summary.
type Totals struct {
	Records    int     `json:"records"`
	Teams      int     `json:"teams"`
	DataPoints float64 `json:"dataPoints"`
}

// numericLess orders free-form number-like identifiers numerically when both
// parse, falling back to lexical order.
func numericLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// numericValue extracts a record's numeric value for a field, applying the
// missing-equals-zero policy.
func numericValue(r model.MatchRecord, fieldID string) float64 {
	v, ok := r.Values[fieldID]
	if !ok {
		return 0
	}
	n, _ := v.AsNumber()
	return n
}

// SortedSchema returns the schema ordered by the display order key. The
// sort is stable; order values need not be unique or contiguous.
func SortedSchema(s model.Snapshot) []model.FieldDef {
	out := append([]model.FieldDef(nil), s.Schema...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// numericFields returns the schema's numeric fields in display order.
func numericFields(s model.Snapshot) []model.FieldDef {
	var out []model.FieldDef
	for _, d := range SortedSchema(s) {
		if d.Kind.Numeric() {
			out = append(out, d)
		}
	}
	return out
}

// Teams returns the distinct team numbers with at least one record,
// numerically sorted.
func Teams(s model.Snapshot) []string {
	seen := make(map[string]struct{}, len(s.Records))
	var out []string
	for _, r := range s.Records {
		if _, ok := seen[r.TeamNumber]; !ok {
			seen[r.TeamNumber] = struct{}{}
			out = append(out, r.TeamNumber)
		}
	}
	sort.Slice(out, func(i, j int) bool { return numericLess(out[i], out[j]) })
	return out
}

// ForTeam returns the team's records ordered by match number ascending.
func ForTeam(s model.Snapshot, team string) []model.MatchRecord {
	var out []model.MatchRecord
	for _, r := range s.Records {
		if r.TeamNumber == team {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return numericLess(out[i].MatchNumber, out[j].MatchNumber)
	})
	return out
}

// Averages computes the team's mean for every numeric field, in display
// order. A team without records yields an empty slice.
func Averages(s model.Snapshot, team string) []FieldAverage {
	recs := ForTeam(s, team)
	if len(recs) == 0 {
		return nil
	}
	fields := numericFields(s)
	out := make([]FieldAverage, 0, len(fields))
	for _, d := range fields {
		var sum float64
		for _, r := range recs {
			sum += numericValue(r, d.ID)
		}
		fa := FieldAverage{
			FieldID: d.ID,
			Label:   d.Label,
			Average: sum / float64(len(recs)),
		}
		if d.Max != nil {
			fa.Max = *d.Max
		}
		out = append(out, fa)
	}
	return out
}

// matchScore sums a record's values across the snapshot's numeric fields.
func matchScore(s model.Snapshot, r model.MatchRecord) float64 {
	var sum float64
	for _, d := range s.Schema {
		if d.Kind.Numeric() {
			sum += numericValue(r, d.ID)
		}
	}
	return sum
}

// Trend returns the team's per-match numeric score series in match order.
func Trend(s model.Snapshot, team string) []TrendPoint {
	recs := ForTeam(s, team)
	out := make([]TrendPoint, len(recs))
	for i, r := range recs {
		out[i] = TrendPoint{
			MatchNumber: r.MatchNumber,
			TeamNumber:  r.TeamNumber,
			Score:       matchScore(s, r),
		}
	}
	return out
}

// RecentTrend returns the overall score series for the most recent n
// matches across all teams, in match order.
func RecentTrend(s model.Snapshot, n int) []TrendPoint {
	recs := append([]model.MatchRecord(nil), s.Records...)
	sort.SliceStable(recs, func(i, j int) bool {
		return numericLess(recs[i].MatchNumber, recs[j].MatchNumber)
	})
	if n > 0 && len(recs) > n {
		recs = recs[len(recs)-n:]
	}
	out := make([]TrendPoint, len(recs))
	for i, r := range recs {
		out[i] = TrendPoint{
			MatchNumber: r.MatchNumber,
			TeamNumber:  r.TeamNumber,
			Score:       matchScore(s, r),
		}
	}
	return out
}

// Compare builds the multi-team comparison table: one row per numeric
// field, one average per requested team. The team list is bounded to
// maxTeams; extra entries are dropped.
func Compare(s model.Snapshot, teams []string, maxTeams int) []CompareRow {
	if maxTeams > 0 && len(teams) > maxTeams {
		teams = teams[:maxTeams]
	}
	fields := numericFields(s)
	out := make([]CompareRow, 0, len(fields))
	for _, d := range fields {
		row := CompareRow{
			FieldID:  d.ID,
			Label:    d.Label,
			Averages: make(map[string]float64, len(teams)),
		}
		for _, team := range teams {
			recs := ForTeam(s, team)
			var sum float64
			for _, r := range recs {
				sum += numericValue(r, d.ID)
			}
			avg := 0.0
			if len(recs) > 0 {
				avg = sum / float64(len(recs))
			}
			row.Averages[team] = avg
		}
		out = append(out, row)
	}
	return out
}

// Summarize computes the dashboard totals: record count, distinct team
// count, and the sum of all numeric data points across records.
func Summarize(s model.Snapshot) Totals {
	t := Totals{Records: len(s.Records)}
	teams := make(map[string]struct{}, len(s.Records))
	for _, r := range s.Records {
		teams[r.TeamNumber] = struct{}{}
		for _, v := range r.Values {
			if n, ok := v.AsNumber(); ok {
				t.DataPoints += n
			}
		}
	}
	t.Teams = len(teams)
	return t
}
