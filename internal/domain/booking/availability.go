package booking

import (
	"sort"
	"time"

	"wanderstay/internal/domain/shared/daterange"
)

// IsRangeAvailable reports whether the proposed range can be booked against
// the supplied set of persisted bookings for one listing. Pure function;
// callers must have validated the range first.
func IsRangeAvailable(proposed daterange.DateRange, existing []*Booking) bool {
	for _, b := range existing {
		if b == nil {
			continue
		}
		if b.Range.Overlaps(proposed) {
			return false
		}
	}
	return true
}

// ComputeBookedDates expands every booking into its covered calendar days
// and collapses duplicates. The result is sorted so JSON output is stable.
func ComputeBookedDates(existing []*Booking) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, b := range existing {
		if b == nil {
			continue
		}
		for _, day := range b.Range.Days() {
			seen[day] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
