package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"wanderstay/internal/domain/listings"
	"wanderstay/internal/domain/shared/daterange"
	"wanderstay/internal/domain/user"
)

var (
	ErrIDRequired       = errors.New("booking: id is required")
	ErrListingRequired  = errors.New("booking: listing id is required")
	ErrDatesUnavailable = errors.New("booking: the selected dates are not available")
	ErrNotFound         = errors.New("booking: not found")
)

type BookingID string

// Booking reserves a listing for an inclusive date range. Bookings are
// created in a final state; there is no lifecycle beyond insertion.
type Booking struct {
	ID        BookingID
	ListingID listings.ListingID
	UserID    user.ID
	Range     daterange.DateRange
	CreatedAt time.Time
}

type Repository interface {
	ByListing(ctx context.Context, id listings.ListingID) ([]*Booking, error)
	Insert(ctx context.Context, b *Booking) error
}

type CreateParams struct {
	ID        BookingID
	ListingID listings.ListingID
	UserID    user.ID
	Range     daterange.DateRange
	CreatedAt time.Time
}

func New(params CreateParams) (*Booking, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.ListingID)) == "" {
		return nil, ErrListingRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	return &Booking{
		ID:        params.ID,
		ListingID: params.ListingID,
		UserID:    params.UserID,
		Range:     params.Range,
		CreatedAt: now.UTC(),
	}, nil
}
