package reservations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderstay/internal/app/locks"
	"wanderstay/internal/domain/booking"
	"wanderstay/internal/domain/listings"
	"wanderstay/internal/domain/shared/daterange"
	"wanderstay/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(start, end)
	require.NoError(t, err)
	return dr
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*booking.Booking
	err    error
}

func (p *recordingPublisher) BookingCreated(_ context.Context, b *booking.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, b)
	return p.err
}

func newService(t *testing.T) (*Service, *memory.ListingRepository, *memory.BookingRepository, *recordingPublisher) {
	t.Helper()
	listingRepo := memory.NewListingRepository()
	bookingRepo := memory.NewBookingRepository()
	events := &recordingPublisher{}
	svc := &Service{
		Listings: listingRepo,
		Bookings: bookingRepo,
		Locks:    locks.NewKeyed(),
		Events:   events,
	}
	return svc, listingRepo, bookingRepo, events
}

func seedListing(t *testing.T, repo *memory.ListingRepository, id string) {
	t.Helper()
	l, err := listings.New(listings.CreateParams{
		ID:       listings.ListingID(id),
		Name:     "Seaside Cottage",
		Location: "Lisbon",
		Price:    120,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), l))
}

func TestCreate_Success(t *testing.T) {
	svc, listingRepo, bookingRepo, events := newService(t)
	seedListing(t, listingRepo, "listing-1")

	b, err := svc.Create(context.Background(), CreateParams{
		ListingID: "listing-1",
		UserID:    "user-1",
		Range:     mustRange(t, date(2024, 7, 1), date(2024, 7, 5)),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, listings.ListingID("listing-1"), b.ListingID)

	stored, err := bookingRepo.ByListing(context.Background(), "listing-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Len(t, events.events, 1)
	assert.Equal(t, b.ID, events.events[0].ID)
}

func TestCreate_ListingNotFound(t *testing.T) {
	svc, _, bookingRepo, _ := newService(t)

	_, err := svc.Create(context.Background(), CreateParams{
		ListingID: "missing",
		Range:     mustRange(t, date(2024, 7, 1), date(2024, 7, 5)),
	})
	assert.ErrorIs(t, err, listings.ErrNotFound)

	stored, err := bookingRepo.ByListing(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, stored, "no booking may be created for an unknown listing")
}

func TestCreate_ConflictOnOverlap(t *testing.T) {
	svc, listingRepo, _, _ := newService(t)
	seedListing(t, listingRepo, "listing-1")

	_, err := svc.Create(context.Background(), CreateParams{
		ListingID: "listing-1",
		Range:     mustRange(t, date(2024, 3, 12), date(2024, 3, 15)),
	})
	require.NoError(t, err)

	// Touching boundary: proposed range ends on the existing start date.
	_, err = svc.Create(context.Background(), CreateParams{
		ListingID: "listing-1",
		Range:     mustRange(t, date(2024, 3, 10), date(2024, 3, 12)),
	})
	assert.ErrorIs(t, err, booking.ErrDatesUnavailable)
}

func TestCreate_AdjacentRangeAllowed(t *testing.T) {
	svc, listingRepo, _, _ := newService(t)
	seedListing(t, listingRepo, "listing-1")

	_, err := svc.Create(context.Background(), CreateParams{
		ListingID: "listing-1",
		Range:     mustRange(t, date(2024, 3, 12), date(2024, 3, 15)),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateParams{
		ListingID: "listing-1",
		Range:     mustRange(t, date(2024, 3, 10), date(2024, 3, 11)),
	})
	assert.NoError(t, err)
}

func TestCreate_RepeatedRequestConflicts(t *testing.T) {
	svc, listingRepo, _, _ := newService(t)
	seedListing(t, listingRepo, "listing-1")

	params := CreateParams{
		ListingID: "listing-1",
		Range:     mustRange(t, date(2024, 8, 1), date(2024, 8, 3)),
	}
	_, err := svc.Create(context.Background(), params)
	require.NoError(t, err)

	// The first booking now occupies the dates, so the identical request
	// must be rejected rather than silently duplicated.
	_, err = svc.Create(context.Background(), params)
	assert.ErrorIs(t, err, booking.ErrDatesUnavailable)
}

func TestCreate_InvalidRange(t *testing.T) {
	svc, listingRepo, _, _ := newService(t)
	seedListing(t, listingRepo, "listing-1")

	_, err := svc.Create(context.Background(), CreateParams{
		ListingID: "listing-1",
		Range:     daterange.DateRange{Start: date(2024, 8, 3), End: date(2024, 8, 1)},
	})
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestCreate_PublishFailureDoesNotFailBooking(t *testing.T) {
	svc, listingRepo, _, events := newService(t)
	seedListing(t, listingRepo, "listing-1")
	events.err = errors.New("broker down")

	_, err := svc.Create(context.Background(), CreateParams{
		ListingID: "listing-1",
		Range:     mustRange(t, date(2024, 7, 1), date(2024, 7, 5)),
	})
	assert.NoError(t, err)
}

func TestCreate_ConcurrentOverlappingRequests(t *testing.T) {
	svc, listingRepo, bookingRepo, _ := newService(t)
	seedListing(t, listingRepo, "listing-1")

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), CreateParams{
				ListingID: "listing-1",
				Range:     mustRange(t, date(2024, 9, 10), date(2024, 9, 14)),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, booking.ErrDatesUnavailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one concurrent request may win")
	assert.Equal(t, attempts-1, conflicts)

	stored, err := bookingRepo.ByListing(context.Background(), "listing-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	for i := range stored {
		for j := i + 1; j < len(stored); j++ {
			assert.False(t, stored[i].Range.Overlaps(stored[j].Range), "persisted bookings must never overlap")
		}
	}
}

func TestBookedDates(t *testing.T) {
	svc, listingRepo, _, _ := newService(t)
	seedListing(t, listingRepo, "listing-1")

	_, err := svc.Create(context.Background(), CreateParams{
		ListingID: "listing-1",
		Range:     mustRange(t, date(2024, 5, 1), date(2024, 5, 3)),
	})
	require.NoError(t, err)

	dates, err := svc.BookedDates(context.Background(), "listing-1")
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.Equal(t, date(2024, 5, 1), dates[0])
	assert.Equal(t, date(2024, 5, 3), dates[2])
}

func TestBookedDates_NoBookings(t *testing.T) {
	svc, _, _, _ := newService(t)

	dates, err := svc.BookedDates(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Empty(t, dates)
}
