package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: end date is before start date")

// DateRange is an inclusive whole-day interval [Start, End].
// Both bounds are normalized to midnight UTC; a one-night stay where the
// guest arrives and leaves on consecutive days still occupies both dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Day(start), End: Day(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if dr.End.Before(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether the two inclusive ranges share at least one
// calendar day: s1 <= e2 && e1 >= s2. Touching boundaries count as a
// conflict because the boundary day belongs to both ranges.
func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.Start.After(other.End) && !dr.End.Before(other.Start)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	day := Day(t)
	return !day.Before(dr.Start) && !day.After(dr.End)
}

// Days expands the range into every covered calendar date, stepping one day
// at a time from Start to End inclusive.
func (dr DateRange) Days() []time.Time {
	if dr.End.Before(dr.Start) {
		return nil
	}
	days := make([]time.Time, 0, dr.Nights()+1)
	for d := dr.Start; !d.After(dr.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Nights is the number of day steps between Start and End.
func (dr DateRange) Nights() int {
	return int(dr.End.Sub(dr.Start).Hours() / 24)
}

// Day truncates a timestamp to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
