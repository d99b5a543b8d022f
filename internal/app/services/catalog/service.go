package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"wanderstay/internal/domain/listings"
	"wanderstay/internal/infra/storage/s3"
)

// Service exposes the listing catalog: browse, fetch one, create with an
// optional image stored in the object store.
type Service struct {
	Listings listings.Repository
	Uploader s3.Uploader
	Logger   *slog.Logger
}

type CreateParams struct {
	Name        string
	Location    string
	Price       float64
	Description string

	// Optional image payload; when Reader is nil the listing is created
	// without an image.
	ImageReader      io.Reader
	ImageFilename    string
	ImageContentType string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*listings.Listing, error) {
	if s.Listings == nil {
		return nil, errors.New("catalog: listing repository required")
	}
	imageURL := ""
	if params.ImageReader != nil {
		if s.Uploader == nil {
			return nil, errors.New("catalog: image uploader unavailable")
		}
		key := objectKey(params.ImageFilename)
		url, err := s.Uploader.Upload(ctx, key, params.ImageReader, params.ImageContentType)
		if err != nil {
			return nil, fmt.Errorf("catalog: upload image: %w", err)
		}
		imageURL = url
	}
	listing, err := listings.New(listings.CreateParams{
		ID:          listings.ListingID(uuid.NewString()),
		Name:        params.Name,
		Location:    params.Location,
		Price:       params.Price,
		Description: params.Description,
		ImageURL:    imageURL,
		Now:         time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Listings.Save(ctx, listing); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("listing created", "listing_id", listing.ID, "location", listing.Location)
	}
	return listing, nil
}

func (s *Service) All(ctx context.Context) ([]*listings.Listing, error) {
	if s.Listings == nil {
		return nil, errors.New("catalog: listing repository required")
	}
	return s.Listings.All(ctx)
}

func (s *Service) ByID(ctx context.Context, id string) (*listings.Listing, error) {
	if s.Listings == nil {
		return nil, errors.New("catalog: listing repository required")
	}
	if strings.TrimSpace(id) == "" {
		return nil, listings.ErrIDRequired
	}
	return s.Listings.ByID(ctx, listings.ListingID(id))
}

func objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("listings/%s%s", uuid.NewString(), ext)
}
