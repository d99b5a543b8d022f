package listings

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired       = errors.New("listings: id is required")
	ErrNameRequired     = errors.New("listings: name is required")
	ErrLocationRequired = errors.New("listings: location is required")
	ErrNegativePrice    = errors.New("listings: price must be non-negative")
	ErrNotFound         = errors.New("listings: not found")
)

type ListingID string

// Listing is a bookable property. Listings are append-only: once created
// there is no update or delete flow.
type Listing struct {
	ID            ListingID
	Name          string
	Location      string
	Price         float64
	Description   string
	ImageURL      string
	AvailableFrom time.Time
	AvailableTo   time.Time
	CreatedAt     time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	All(ctx context.Context) ([]*Listing, error)
	Save(ctx context.Context, listing *Listing) error
}

type CreateParams struct {
	ID            ListingID
	Name          string
	Location      string
	Price         float64
	Description   string
	ImageURL      string
	AvailableFrom time.Time
	AvailableTo   time.Time
	Now           time.Time
}

func New(params CreateParams) (*Listing, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	location := strings.TrimSpace(params.Location)
	if location == "" {
		return nil, ErrLocationRequired
	}
	if params.Price < 0 {
		return nil, ErrNegativePrice
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	return &Listing{
		ID:            params.ID,
		Name:          name,
		Location:      location,
		Price:         params.Price,
		Description:   strings.TrimSpace(params.Description),
		ImageURL:      strings.TrimSpace(params.ImageURL),
		AvailableFrom: params.AvailableFrom,
		AvailableTo:   params.AvailableTo,
		CreatedAt:     now.UTC(),
	}, nil
}
