package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"wanderstay/internal/app/dto"
	"wanderstay/internal/app/services/catalog"
	"wanderstay/internal/domain/listings"
)

// maxImageBytes caps uploaded listing images at 10 MiB.
const maxImageBytes = 10 << 20

type ListingHandler struct {
	Service *catalog.Service
	Logger  *slog.Logger
}

func (h ListingHandler) List(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "listing service unavailable"})
		return
	}
	items, err := h.Service.All(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingCollection(items))
}

func (h ListingHandler) Get(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "listing service unavailable"})
		return
	}
	listing, err := h.Service.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListing(listing))
}

// Create accepts a multipart form: name, location, price, description and an
// optional image file persisted to the object store.
func (h ListingHandler) Create(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "listing service unavailable"})
		return
	}
	if _, ok := requireUser(c); !ok {
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	location := strings.TrimSpace(c.PostForm("location"))
	priceRaw := strings.TrimSpace(c.PostForm("price"))
	if name == "" || location == "" || priceRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
		return
	}

	params := catalog.CreateParams{
		Name:        name,
		Location:    location,
		Price:       price,
		Description: c.PostForm("description"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		if file.Size > maxImageBytes {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image too large"})
			return
		}
		reader, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
			return
		}
		defer reader.Close()
		params.ImageReader = reader
		params.ImageFilename = file.Filename
		params.ImageContentType = file.Header.Get("Content-Type")
	}

	listing, err := h.Service.Create(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewListing(listing))
}

func (h ListingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, listings.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
	case errors.Is(err, listings.ErrIDRequired),
		errors.Is(err, listings.ErrNameRequired),
		errors.Is(err, listings.ErrLocationRequired),
		errors.Is(err, listings.ErrNegativePrice):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("listing operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

var _ ListingHTTP = ListingHandler{}
