package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wanderstay/internal/domain/listings"
)

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("listings")}
}

func (r *ListingRepository) ByID(ctx context.Context, id listings.ListingID) (*listings.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, listings.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: find listing: %w", err)
	}
	return doc.toAggregate(), nil
}

func (r *ListingRepository) All(ctx context.Context) ([]*listings.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find listings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*listings.Listing
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo: decode listing: %w", err)
		}
		out = append(out, doc.toAggregate())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo: iterate listings: %w", err)
	}
	return out, nil
}

func (r *ListingRepository) Save(ctx context.Context, l *listings.Listing) error {
	doc := newListingDocument(l)
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts); err != nil {
		return fmt.Errorf("mongo: save listing: %w", err)
	}
	return nil
}

type listingDocument struct {
	ID            string  `bson:"_id"`
	Name          string  `bson:"name"`
	Location      string  `bson:"location"`
	Price         float64 `bson:"price"`
	Description   string  `bson:"description,omitempty"`
	ImageURL      string  `bson:"image_url,omitempty"`
	AvailableFrom int64   `bson:"available_from,omitempty"`
	AvailableTo   int64   `bson:"available_to,omitempty"`
	CreatedAt     int64   `bson:"created_at"`
}

func newListingDocument(l *listings.Listing) listingDocument {
	doc := listingDocument{
		ID:          string(l.ID),
		Name:        l.Name,
		Location:    l.Location,
		Price:       l.Price,
		Description: l.Description,
		ImageURL:    l.ImageURL,
		CreatedAt:   l.CreatedAt.UnixMilli(),
	}
	if !l.AvailableFrom.IsZero() {
		doc.AvailableFrom = l.AvailableFrom.UnixMilli()
	}
	if !l.AvailableTo.IsZero() {
		doc.AvailableTo = l.AvailableTo.UnixMilli()
	}
	return doc
}

func (d listingDocument) toAggregate() *listings.Listing {
	l := &listings.Listing{
		ID:          listings.ListingID(d.ID),
		Name:        d.Name,
		Location:    d.Location,
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		CreatedAt:   timestampToTime(d.CreatedAt),
	}
	if d.AvailableFrom != 0 {
		l.AvailableFrom = timestampToTime(d.AvailableFrom)
	}
	if d.AvailableTo != 0 {
		l.AvailableTo = timestampToTime(d.AvailableTo)
	}
	return l
}
