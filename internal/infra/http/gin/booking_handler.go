package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"wanderstay/internal/app/dto"
	"wanderstay/internal/app/services/reservations"
	"wanderstay/internal/domain/booking"
	"wanderstay/internal/domain/listings"
	"wanderstay/internal/domain/shared/daterange"
)

type BookingHandler struct {
	Service *reservations.Service
	Logger  *slog.Logger
}

type createBookingRequest struct {
	ListingID string `json:"listingId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h BookingHandler) Create(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "booking service unavailable"})
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	if strings.TrimSpace(req.ListingID) == "" || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	start, ok := parseDate(req.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid start date"})
		return
	}
	end, ok := parseDate(req.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid end date"})
		return
	}
	dr, err := daterange.New(start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Start date must not be after end date"})
		return
	}

	userID, _ := currentUserID(c)
	result, err := h.Service.Create(c.Request.Context(), reservations.CreateParams{
		ListingID: strings.TrimSpace(req.ListingID),
		UserID:    userID,
		Range:     dr,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBooking(result))
}

// AvailableDates lists every date already covered by a booking for the
// listing, as ISO-8601 strings for the calendar UI to disable.
func (h BookingHandler) AvailableDates(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "booking service unavailable"})
		return
	}
	dates, err := h.Service.BookedDates(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBookedDates(dates))
}

func (h BookingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, listings.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
	case errors.Is(err, booking.ErrDatesUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"message": "The selected dates are not available"})
	case errors.Is(err, booking.ErrListingRequired),
		errors.Is(err, daterange.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("booking operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

var _ BookingHTTP = BookingHandler{}
