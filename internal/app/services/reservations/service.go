package reservations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wanderstay/internal/app/locks"
	"wanderstay/internal/domain/booking"
	"wanderstay/internal/domain/listings"
	"wanderstay/internal/domain/shared/daterange"
	"wanderstay/internal/domain/user"
)

// EventPublisher announces persisted bookings to interested consumers.
// Publishing is best-effort; a broker failure never fails the booking.
type EventPublisher interface {
	BookingCreated(ctx context.Context, b *booking.Booking) error
}

type Service struct {
	Listings listings.Repository
	Bookings booking.Repository
	Locks    *locks.Keyed
	Events   EventPublisher
	Logger   *slog.Logger
}

type CreateParams struct {
	ListingID string
	UserID    string
	Range     daterange.DateRange
}

// Create runs the booking protocol: resolve the listing, then, under the
// listing's lock, re-read persisted bookings, check availability and insert.
// The lock spans the whole read-check-write sequence so concurrent requests
// for the same listing serialize and cannot double-book overlapping dates.
func (s *Service) Create(ctx context.Context, params CreateParams) (*booking.Booking, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	if params.ListingID == "" {
		return nil, booking.ErrListingRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}

	listing, err := s.Listings.ByID(ctx, listings.ListingID(params.ListingID))
	if err != nil {
		return nil, err
	}

	s.Locks.Lock(params.ListingID)
	defer s.Locks.Unlock(params.ListingID)

	existing, err := s.Bookings.ByListing(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	if !booking.IsRangeAvailable(params.Range, existing) {
		return nil, booking.ErrDatesUnavailable
	}

	b, err := booking.New(booking.CreateParams{
		ID:        booking.BookingID(uuid.NewString()),
		ListingID: listing.ID,
		UserID:    user.ID(params.UserID),
		Range:     params.Range,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.Insert(ctx, b); err != nil {
		return nil, err
	}

	if s.Events != nil {
		if err := s.Events.BookingCreated(ctx, b); err != nil && s.Logger != nil {
			s.Logger.Warn("booking event publish failed", "booking_id", b.ID, "error", err)
		}
	}
	if s.Logger != nil {
		s.Logger.Info("booking created", "booking_id", b.ID, "listing_id", b.ListingID,
			"start", b.Range.Start.Format("2006-01-02"), "end", b.Range.End.Format("2006-01-02"))
	}
	return b, nil
}

// BookedDates returns every calendar date covered by an existing booking for
// the listing, for rendering as disabled dates in a calendar.
func (s *Service) BookedDates(ctx context.Context, listingID string) ([]time.Time, error) {
	if err := s.ensureDependencies(); err != nil {
		return nil, err
	}
	if listingID == "" {
		return nil, booking.ErrListingRequired
	}
	existing, err := s.Bookings.ByListing(ctx, listings.ListingID(listingID))
	if err != nil {
		return nil, err
	}
	return booking.ComputeBookedDates(existing), nil
}

func (s *Service) ensureDependencies() error {
	switch {
	case s.Listings == nil:
		return errors.New("reservations: listing repository required")
	case s.Bookings == nil:
		return errors.New("reservations: booking repository required")
	case s.Locks == nil:
		return errors.New("reservations: listing locks required")
	default:
		return nil
	}
}
