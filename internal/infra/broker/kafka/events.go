package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wanderstay/internal/app/services/reservations"
	"wanderstay/internal/domain/booking"
	"wanderstay/internal/infra/obs"
)

// BookingEvents publishes booking lifecycle events, keyed by listing so all
// events for one listing land on the same partition in order.
type BookingEvents struct {
	Producer *Producer
	Topic    string
}

type bookingCreatedEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	ListingID string `json:"listing_id"`
	UserID    string `json:"user_id,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	CreatedAt string `json:"created_at"`
}

func (e BookingEvents) BookingCreated(ctx context.Context, b *booking.Booking) error {
	payload, err := json.Marshal(bookingCreatedEvent{
		Type:      "booking.created",
		BookingID: string(b.ID),
		ListingID: string(b.ListingID),
		UserID:    string(b.UserID),
		StartDate: b.Range.Start.Format("2006-01-02"),
		EndDate:   b.Range.End.Format("2006-01-02"),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("kafka: encode booking event: %w", err)
	}
	headers := map[string]string{}
	if requestID := obs.RequestIDFromContext(ctx); requestID != "" {
		headers["request_id"] = requestID
	}
	return e.Producer.Publish(ctx, e.Topic, string(b.ListingID), payload, headers)
}

var _ reservations.EventPublisher = BookingEvents{}
