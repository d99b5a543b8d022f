package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"wanderstay/internal/domain/booking"
	"wanderstay/internal/domain/listings"
	domainuser "wanderstay/internal/domain/user"
)

// UserRepository stores users in memory. Not suitable for production.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[domainuser.ID]*domainuser.User
	byEmail map[string]domainuser.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[domainuser.ID]*domainuser.User),
		byEmail: make(map[string]domainuser.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domainuser.NormalizeEmail(email)]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domainuser.ErrNotFound
}

func (r *UserRepository) Save(ctx context.Context, u *domainuser.User) error {
	if u == nil || strings.TrimSpace(string(u.ID)) == "" {
		return domainuser.ErrIDRequired
	}
	emailKey := domainuser.NormalizeEmail(u.Email)
	if emailKey == "" {
		return domainuser.ErrEmailRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[emailKey]; ok && existingID != u.ID {
		return domainuser.ErrEmailAlreadyUsed
	}
	r.byEmail[emailKey] = u.ID
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func cloneUser(u *domainuser.User) *domainuser.User {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}

// ListingRepository keeps listings in memory, returned in insertion order.
type ListingRepository struct {
	mu    sync.RWMutex
	byID  map[listings.ListingID]*listings.Listing
	order []listings.ListingID
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{byID: make(map[listings.ListingID]*listings.Listing)}
}

func (r *ListingRepository) ByID(ctx context.Context, id listings.ListingID) (*listings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if l, ok := r.byID[id]; ok {
		return cloneListing(l), nil
	}
	return nil, listings.ErrNotFound
}

func (r *ListingRepository) All(ctx context.Context) ([]*listings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*listings.Listing, 0, len(r.order))
	for _, id := range r.order {
		if l, ok := r.byID[id]; ok {
			out = append(out, cloneListing(l))
		}
	}
	return out, nil
}

func (r *ListingRepository) Save(ctx context.Context, l *listings.Listing) error {
	if l == nil || strings.TrimSpace(string(l.ID)) == "" {
		return listings.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[l.ID]; !ok {
		r.order = append(r.order, l.ID)
	}
	r.byID[l.ID] = cloneListing(l)
	return nil
}

func cloneListing(l *listings.Listing) *listings.Listing {
	if l == nil {
		return nil
	}
	copied := *l
	return &copied
}

// BookingRepository keeps bookings in memory, indexed by listing.
type BookingRepository struct {
	mu        sync.RWMutex
	byListing map[listings.ListingID][]*booking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{byListing: make(map[listings.ListingID][]*booking.Booking)}
}

func (r *BookingRepository) ByListing(ctx context.Context, id listings.ListingID) ([]*booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.byListing[id]
	out := make([]*booking.Booking, 0, len(stored))
	for _, b := range stored {
		out = append(out, cloneBooking(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start.Before(out[j].Range.Start) })
	return out, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	if b == nil || strings.TrimSpace(string(b.ID)) == "" {
		return booking.ErrIDRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byListing[b.ListingID] = append(r.byListing[b.ListingID], cloneBooking(b))
	return nil
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	if b == nil {
		return nil
	}
	copied := *b
	return &copied
}

var (
	_ domainuser.Repository = (*UserRepository)(nil)
	_ listings.Repository   = (*ListingRepository)(nil)
	_ booking.Repository    = (*BookingRepository)(nil)
)
