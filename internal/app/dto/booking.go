package dto

import (
	"time"

	"wanderstay/internal/domain/booking"
)

const dateLayout = "2006-01-02"

type Booking struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	UserID    string    `json:"userId,omitempty"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewBooking(b *booking.Booking) Booking {
	return Booking{
		ID:        string(b.ID),
		ListingID: string(b.ListingID),
		UserID:    string(b.UserID),
		StartDate: b.Range.Start.Format(dateLayout),
		EndDate:   b.Range.End.Format(dateLayout),
		CreatedAt: b.CreatedAt,
	}
}

// NewBookedDates renders the expanded booked-day set as ISO-8601 date strings.
func NewBookedDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateLayout))
	}
	return out
}
