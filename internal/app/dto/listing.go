package dto

import (
	"time"

	"wanderstay/internal/domain/listings"
)

type Listing struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Location      string     `json:"location"`
	Price         float64    `json:"price"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	AvailableTo   *time.Time `json:"availableTo,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func NewListing(l *listings.Listing) Listing {
	out := Listing{
		ID:          string(l.ID),
		Name:        l.Name,
		Location:    l.Location,
		Price:       l.Price,
		Description: l.Description,
		ImageURL:    l.ImageURL,
		CreatedAt:   l.CreatedAt,
	}
	if !l.AvailableFrom.IsZero() {
		from := l.AvailableFrom
		out.AvailableFrom = &from
	}
	if !l.AvailableTo.IsZero() {
		to := l.AvailableTo
		out.AvailableTo = &to
	}
	return out
}

func NewListingCollection(items []*listings.Listing) []Listing {
	out := make([]Listing, 0, len(items))
	for _, l := range items {
		out = append(out, NewListing(l))
	}
	return out
}
