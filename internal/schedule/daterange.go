package schedule

import (
	"errors"
	"time"
)

// MaxRangeDays caps date iteration as a safety bound against misconfigured
// ranges: no academic range is longer than a year.
const MaxRangeDays = 365

// ErrInvalidRange is returned when a range ends before it starts or exceeds
// the iteration cap.
var ErrInvalidRange = errors.New("invalid date range")

// NormalizeUTC truncates a timestamp to UTC midnight. All calendar math in
// this package works on day granularity.
func NormalizeUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a closed [start, end] range of calendar days. The projector
// and the stats helpers all walk days through this one generator, so the
// call sites cannot drift.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange builds a range over [start, end], both normalized to UTC
// midnight and inclusive.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := NormalizeUTC(start), NormalizeUTC(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidRange
	}
	if int(e.Sub(s).Hours()/24) >= MaxRangeDays {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: s, end: e}, nil
}

// Start returns the first day of the range.
func (r DateRange) Start() time.Time { return r.start }

// End returns the last day of the range.
func (r DateRange) End() time.Time { return r.end }

// Days returns the number of days in the range.
func (r DateRange) Days() int {
	if r.start.IsZero() {
		return 0
	}
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// Each calls fn once per day from start to end inclusive. The range itself is
// never mutated, so Each can be called any number of times.
func (r DateRange) Each(fn func(d time.Time)) {
	if r.start.IsZero() {
		return
	}
	steps := 0
	for d := r.start; !d.After(r.end) && steps < MaxRangeDays; d = d.AddDate(0, 0, 1) {
		steps++
		fn(d)
	}
}

// DBWeekday converts a date to the schema's weekday numbering, 1=Monday
// through 7=Sunday.
func DBWeekday(d time.Time) int {
	w := int(d.UTC().Weekday())
	if w == 0 {
		return 7
	}
	return w
}
