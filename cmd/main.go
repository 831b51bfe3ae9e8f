package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_available_dates"
	getBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_booking"
	getServicePriceHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_service_price"
	getTimeSlotsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_time_slots"
	healthHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/list_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	pricingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/pricing"
	scheduleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SpaBookingService/internal/service/bookings"
	pricingService "github.com/m04kA/SMC-SpaBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_dates"
	getTimeSlotsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_time_slots"
	"github.com/m04kA/SMC-SpaBookingService/migrations"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// publisher booking event sink closed on shutdown
type publisher interface {
	Publish(ctx context.Context, event notifier.Event) error
	Close() error
}

func main() {
	configPath := os.Getenv("SPA_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SpaBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	policy, err := cfg.Booking.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	log.Info("Booking policy: lead=%dd horizon=%dd step=%dm timezone=%s",
		policy.LeadDays, policy.HorizonDays, policy.SlotStepMinutes, policy.Location)

	// Metrics (optional)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(context.Background(), db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrations.Version(context.Background(), db)
		if err != nil {
			log.Fatal("Failed to read schema version: %v", err)
		}
		log.Info("Database schema is at version %d", version)
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Repositories
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	pricingRepository := pricingRepo.NewRepository(wrappedDB)

	// Notifications
	var eventPublisher publisher
	if cfg.Kafka.Enabled {
		eventPublisher = notifier.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.Timeout)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Kafka notifier initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		eventPublisher = notifier.NewNoop(log)
		log.Info("Kafka disabled, booking events are only logged")
	}

	// Services
	availabilityEngine := availability.NewEngine(scheduleRepository, bookingRepository, policy.Location, log)
	slotGenerator := slots.NewGenerator(catalogRepository, scheduleRepository, availabilityEngine, policy.Location, log)
	pricingSvc := pricingService.NewService(catalogRepository, pricingRepository, policy.Location, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		availabilityEngine,
		txMgr,
		eventPublisher,
		policy.Location,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		availabilityEngine,
		pricingSvc,
		eventPublisher,
		txMgr,
		metricsCollector,
		policy,
		log,
	)
	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(slotGenerator, policy, log)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(scheduleRepository, slotGenerator, policy, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, policy.Location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(getTimeSlotsUseCase, policy.Location, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getServicePrice := getServicePriceHandler.NewHandler(pricingSvc, policy.Location, log)
	health := healthHandler.NewHandler(db, log)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := middleware.NewRateLimiter(
			middleware.NewRedisCounter(redisClient),
			cfg.RateLimit.MaxRequests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			cfg.RateLimit.KeyPrefix,
			cfg.RateLimit.FailOpen,
			log,
		).WithTrustedProxy(cfg.RateLimit.TrustForwardedFor)
		api.Use(limiter.Middleware)
		log.Info("Rate limiter enabled (%d requests per %ds, redis=%s, trust_forwarded_for=%t)",
			cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds, cfg.Redis.Addr, cfg.RateLimit.TrustForwardedFor)
	}

	// Availability and pricing
	api.HandleFunc("/therapists/{therapistId}/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{therapistId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/price", getServicePrice.Handle).Methods(http.MethodGet)

	// Bookings
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	handler := middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxAge:         cfg.CORS.MaxAge,
	})(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	if err := eventPublisher.Close(); err != nil {
		log.Error("Failed to close notifier: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
