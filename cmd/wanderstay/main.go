package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wanderstay/internal/app/locks"
	authsvc "wanderstay/internal/app/services/auth"
	"wanderstay/internal/app/services/catalog"
	"wanderstay/internal/app/services/reservations"
	"wanderstay/internal/domain/booking"
	"wanderstay/internal/domain/listings"
	domainuser "wanderstay/internal/domain/user"
	"wanderstay/internal/infra/broker/kafka"
	"wanderstay/internal/infra/config"
	mongodb "wanderstay/internal/infra/db/mongo"
	ginserver "wanderstay/internal/infra/http/gin"
	"wanderstay/internal/infra/obs"
	"wanderstay/internal/infra/security"
	"wanderstay/internal/infra/storage/memory"
	"wanderstay/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":5000")
		cfg.JWTSecret = "dev-secret-do-not-use-in-prod"
		cfg.JWTTTL = time.Hour
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":5000"
	}

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	var (
		users       domainuser.Repository
		listingRepo listings.Repository
		bookingRepo booking.Repository
		cleanups    []func()
	)
	ready := func() error { return nil }

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = client.Ping(pingCtx)
		cancel()
		if err != nil {
			return application{}, nil, err
		}
		userRepo := mongodb.NewUserRepository(client.DB)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			logger.Warn("user index creation failed", "error", err)
		}
		users = userRepo
		listingRepo = mongodb.NewListingRepository(client.DB)
		bookingRepo = mongodb.NewBookingRepository(client.DB)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		cleanups = append(cleanups, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		})
		logger.Info("connected to MongoDB", "database", cfg.MongoDB)
	} else {
		logger.Warn("MONGODB_URL not set, using in-memory storage")
		users = memory.NewUserRepository()
		listingRepo = memory.NewListingRepository()
		bookingRepo = memory.NewBookingRepository()
	}

	var events reservations.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Warn("kafka producer unavailable, booking events disabled", "error", err)
		} else {
			events = kafka.BookingEvents{Producer: producer, Topic: cfg.KafkaTopic}
			cleanups = append(cleanups, func() {
				if err := producer.Close(); err != nil {
					logger.Warn("kafka producer close failed", "error", err)
				}
			})
			logger.Info("kafka booking events enabled", "topic", cfg.KafkaTopic)
		}
	}

	var uploader s3.Uploader
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			logger.Warn("s3 uploader unavailable, listing images disabled", "error", err)
		} else {
			uploader = client
		}
	}

	signer := security.JWTSigner{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL}

	authService := &authsvc.Service{
		Users:     users,
		Passwords: security.BcryptHasher{},
		Tokens:    signer,
		Logger:    logger,
	}
	catalogService := &catalog.Service{
		Listings: listingRepo,
		Uploader: uploader,
		Logger:   logger,
	}
	reservationService := &reservations.Service{
		Listings: listingRepo,
		Bookings: bookingRepo,
		Locks:    locks.NewKeyed(),
		Events:   events,
		Logger:   logger,
	}

	handlers := ginserver.Handlers{
		Auth:           ginserver.AuthHandler{Service: authService, Logger: logger},
		Listing:        ginserver.ListingHandler{Service: catalogService, Logger: logger},
		Booking:        ginserver.BookingHandler{Service: reservationService, Logger: logger},
		AuthMiddleware: ginserver.AuthMiddleware{Tokens: signer, Logger: logger}.Handle,
	}

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	return application{handlers: handlers, ready: ready}, cleanup, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
