package ginserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wanderstay/internal/app/locks"
	authsvc "wanderstay/internal/app/services/auth"
	"wanderstay/internal/app/services/catalog"
	"wanderstay/internal/app/services/reservations"
	"wanderstay/internal/infra/config"
	"wanderstay/internal/infra/obs"
	"wanderstay/internal/infra/security"
	"wanderstay/internal/infra/storage/memory"
)

type testEnv struct {
	handler  http.Handler
	listings *memory.ListingRepository
	bookings *memory.BookingRepository
	users    *memory.UserRepository
	tokens   security.JWTSigner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepository()
	listingRepo := memory.NewListingRepository()
	bookingRepo := memory.NewBookingRepository()
	tokens := security.JWTSigner{Secret: []byte("test-secret"), TTL: time.Hour}

	authService := &authsvc.Service{
		Users:     users,
		Passwords: security.BcryptHasher{Cost: 4},
		Tokens:    tokens,
	}
	catalogService := &catalog.Service{Listings: listingRepo}
	bookingService := &reservations.Service{
		Listings: listingRepo,
		Bookings: bookingRepo,
		Locks:    locks.NewKeyed(),
	}

	srv := NewServer(
		config.Config{Env: "test", HTTPAddr: ":0"},
		obs.Middleware{},
		obs.HealthHandlers{},
		Handlers{
			Auth:           AuthHandler{Service: authService},
			Listing:        ListingHandler{Service: catalogService},
			Booking:        BookingHandler{Service: bookingService},
			AuthMiddleware: AuthMiddleware{Tokens: tokens}.Handle,
		},
	)
	return &testEnv{
		handler:  srv.Handler,
		listings: listingRepo,
		bookings: bookingRepo,
		users:    users,
		tokens:   tokens,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
