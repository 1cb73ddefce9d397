package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ketan-2905/classbunk/internal/schedule"
	"github.com/ketan-2905/classbunk/models"
)

// Threshold is the attendance policy: 75% per subject and overall.
const Threshold = 0.75

// AttendanceRow is one attendance record flattened with its instance date and
// template subject/kind. Rows whose instance or template is missing are
// dropped by the caller before aggregation.
type AttendanceRow struct {
	AttendanceID uint
	InstanceID   uint
	Date         time.Time
	Subject      string
	Type         models.LectureType
	StartTime    string
	EndTime      string
	Room         string
	Faculty      string
	Attended     bool
	IsIgnored    bool
	IsExtra      bool
}

// Key returns the row's (subject, kind) key.
func (r AttendanceRow) Key() schedule.SubjectKey {
	return schedule.SubjectKey{Subject: r.Subject, Type: r.Type}
}

// Tally is the aggregated input of the projection formulas for one subject
// key (or, summed, for the whole schedule).
type Tally struct {
	// AdjustedTotal is the projected template count for the range, plus
	// one per extra row and minus one per ignored row dated within it.
	AdjustedTotal int
	// Present counts attended, non-ignored rows dated on or before the
	// as-of date. Never rows beyond it: the student cannot have attended
	// a lecture that has not happened.
	Present int
	// ConductedSoFar is the adjusted total restricted to the current
	// range, the ceiling for future-mode projections.
	ConductedSoFar int
}

// Aggregate joins attendance rows with the projected totals of a range.
// totals is the projection for [semester start, rangeEnd]; currentTotals the
// projection for [semester start, asOf]. Only keys present in totals are
// reported.
func Aggregate(rows []AttendanceRow, totals, currentTotals map[schedule.SubjectKey]int, rangeEnd, asOf time.Time) map[schedule.SubjectKey]Tally {
	rangeEnd = schedule.NormalizeUTC(rangeEnd)
	asOf = schedule.NormalizeUTC(asOf)

	out := make(map[schedule.SubjectKey]Tally, len(totals))
	for key, total := range totals {
		var t Tally
		adj, pastAdj := 0, 0

		for _, row := range rows {
			if row.Key() != key {
				continue
			}
			d := schedule.NormalizeUTC(row.Date)

			if row.IsIgnored || row.IsExtra {
				delta := 0
				if row.IsIgnored {
					delta--
				}
				if row.IsExtra {
					delta++
				}
				if !d.After(rangeEnd) {
					adj += delta
				}
				if !d.After(asOf) {
					pastAdj += delta
				}
			}

			if !d.After(asOf) && !row.IsIgnored && row.Attended {
				t.Present++
			}
		}

		t.AdjustedTotal = max(0, total+adj)
		t.ConductedSoFar = max(0, currentTotals[key]+pastAdj)
		out[key] = t
	}
	return out
}

// Metrics is the outcome of the projection formulas for one tally.
type Metrics struct {
	Percentage float64
	SafeBunks  int
	MustAttend int
	// Impossible is set in future mode when the threshold cannot be
	// reached even with perfect remaining attendance. It is a result
	// state, not an error.
	Impossible bool
}

// Compute applies the policy formulas to a tally. In current mode the range
// ends on or before the as-of date; in future mode the student is assumed to
// attend every remaining lecture in the range.
func Compute(t Tally, future bool) Metrics {
	var m Metrics

	if !future {
		if t.AdjustedTotal > 0 {
			m.Percentage = float64(t.Present) / float64(t.AdjustedTotal) * 100
		} else {
			m.Percentage = 100
		}

		margin := int(math.Floor(float64(t.Present)/Threshold - float64(t.AdjustedTotal)))
		if margin > 0 {
			m.SafeBunks = margin
		}

		required := int(math.Ceil(Threshold * float64(t.AdjustedTotal)))
		if deficit := required - t.Present; deficit > 0 {
			m.MustAttend = deficit
		}
		return m
	}

	remaining := max(0, t.AdjustedTotal-t.ConductedSoFar)
	maxPossiblePresent := t.Present + remaining
	required := int(math.Ceil(Threshold * float64(t.AdjustedTotal)))
	safetyMargin := maxPossiblePresent - required

	if safetyMargin > 0 {
		m.SafeBunks = safetyMargin
	}
	if safetyMargin < 0 {
		m.MustAttend = -safetyMargin
		m.Impossible = true
	}

	denom := max(1, t.ConductedSoFar)
	m.Percentage = float64(t.Present) / float64(denom) * 100
	return m
}

// SubjectStats is one subject's projection for a range.
type SubjectStats struct {
	Title      string             `json:"title"`
	Type       models.LectureType `json:"type"`
	Total      int                `json:"total"`
	Present    int                `json:"present"`
	Percentage float64            `json:"percentage"`
	SafeBunks  int                `json:"safeBunks"`
	MustAttend int                `json:"mustAttend"`
	Impossible bool               `json:"impossible,omitempty"`
}

// OverallStats aggregates every subject of a range. The inputs are summed
// before applying the formulas; percentages are never averaged.
type OverallStats struct {
	Attendance     string `json:"attendance"`
	SafeBunks      int    `json:"safeBunks"`
	ToAttend       int    `json:"toAttend"`
	TotalMissed    int    `json:"totalMissed"`
	TotalConducted int    `json:"totalConducted"`
	Impossible     bool   `json:"impossible,omitempty"`
}

// RangeResult is the full projection for one policy range.
type RangeResult struct {
	Stats      OverallStats   `json:"stats"`
	Subjects   []SubjectStats `json:"subjects"`
	BunkWindow *BunkWindow    `json:"bunkAnalysis,omitempty"`
}

// ComputeRange aggregates rows against a range's projected totals and applies
// the projection formulas per subject and overall.
func ComputeRange(rows []AttendanceRow, totals, currentTotals map[schedule.SubjectKey]int, rangeEnd, asOf time.Time, future bool) RangeResult {
	tallies := Aggregate(rows, totals, currentTotals, rangeEnd, asOf)

	keys := make([]schedule.SubjectKey, 0, len(tallies))
	for key := range tallies {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Subject != keys[j].Subject {
			return keys[i].Subject < keys[j].Subject
		}
		return keys[i].Type < keys[j].Type
	})

	var overall Tally
	subjects := make([]SubjectStats, 0, len(keys))
	for _, key := range keys {
		t := tallies[key]
		m := Compute(t, future)
		subjects = append(subjects, SubjectStats{
			Title:      key.Subject,
			Type:       key.Type,
			Total:      t.AdjustedTotal,
			Present:    t.Present,
			Percentage: m.Percentage,
			SafeBunks:  m.SafeBunks,
			MustAttend: m.MustAttend,
			Impossible: m.Impossible,
		})
		overall.AdjustedTotal += t.AdjustedTotal
		overall.Present += t.Present
		overall.ConductedSoFar += t.ConductedSoFar
	}

	om := Compute(overall, future)
	return RangeResult{
		Stats: OverallStats{
			Attendance:     fmt.Sprintf("%.1f", om.Percentage),
			SafeBunks:      om.SafeBunks,
			ToAttend:       om.MustAttend,
			TotalMissed:    overall.ConductedSoFar - overall.Present,
			TotalConducted: overall.AdjustedTotal,
			Impossible:     om.Impossible,
		},
		Subjects: subjects,
	}
}

// Budgets extracts the per-subject safe-bunk budgets of a computed range,
// the input of the bunk-window optimizer.
func Budgets(subjects []SubjectStats) map[schedule.SubjectKey]int {
	budgets := make(map[schedule.SubjectKey]int, len(subjects))
	for _, s := range subjects {
		budgets[schedule.SubjectKey{Subject: s.Title, Type: s.Type}] = s.SafeBunks
	}
	return budgets
}
