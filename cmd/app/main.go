package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skyjourney/api"
	"github.com/Domenick1991/skyjourney/config"
	"github.com/Domenick1991/skyjourney/internal/admin"
	"github.com/Domenick1991/skyjourney/internal/auth"
	"github.com/Domenick1991/skyjourney/internal/bootstrap"
	"github.com/Domenick1991/skyjourney/internal/cache"
	"github.com/Domenick1991/skyjourney/internal/fetch"
	"github.com/Domenick1991/skyjourney/internal/handoff"
	"github.com/Domenick1991/skyjourney/internal/kafka"
	"github.com/Domenick1991/skyjourney/internal/repository"
	"github.com/Domenick1991/skyjourney/internal/seed"
	"github.com/Domenick1991/skyjourney/internal/service/booking"
	"github.com/Domenick1991/skyjourney/internal/service/flights"
	"github.com/Domenick1991/skyjourney/internal/wizard"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"
)

func main() {
	cfgFlag := pflag.String("config", "", "path to the YAML config (default $CONFIG_PATH or config.yaml)")
	pflag.Parse()

	bootLog := config.LogConfig{}.NewLogger(os.Stderr)
	cfg, err := config.LoadConfig(config.ResolvePath(*cfgFlag))
	if err != nil {
		bootLog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := cfg.Log.NewLogger(os.Stderr)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	data, err := seed.Load(cfg.Site.SeedPath)
	if err != nil {
		log.Error("load seed data", "error", err)
		os.Exit(1)
	}

	cacheTTL := time.Duration(cfg.Booking.FlightsCacheTTL) * time.Second
	handoffTTL := time.Duration(cfg.Booking.HandoffTTLMinutes) * time.Minute

	memoryCache := cache.NewMemoryCache(cacheTTL)
	var (
		source     fetch.FlightSource = fetch.NewDelayedSource(data.Flights, time.Duration(cfg.Booking.FetchDelayMillis)*time.Millisecond)
		queryCache fetch.QueryCache   = memoryCache
		handoffs   handoff.Store      = handoff.NewMemoryStore(handoffTTL)
		opts       []booking.BookingServiceOption
	)

	if cfg.Database.Enabled {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := repository.Migrate(ctx, pool); err != nil {
			log.Error("migrate postgres", "error", err)
			os.Exit(1)
		}
		flightRepo := repository.NewFlightRepository(pool)
		if err := flightRepo.Upsert(ctx, data.Flights); err != nil {
			log.Error("load flight catalog", "error", err)
			os.Exit(1)
		}
		source = flightRepo
		opts = append(opts, booking.WithRecorder(repository.NewBookingRepository(pool)))
		log.Info("using postgres flight source", "host", cfg.Database.Host)
	}

	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Error("connect redis", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}
		queryCache = cache.NewRedisCache(client, cacheTTL)
		handoffs = handoff.NewRedisStore(client, handoffTTL)
		log.Info("using redis cache", "addr", cfg.Redis.Addr)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Warn("kafka unavailable, booking events may be lost", "error", err)
		}
		opts = append(opts, booking.WithProducer(producer, cfg.Kafka.BookingTopic))
	}

	flightSource := fetch.NewCachedSource(source, queryCache, log)
	backOfficeFlights := admin.NewFlights(cfg.Admin.FlightIDPrefix, data.Schedules)
	backOfficeBookings := admin.NewBookings(cfg.Admin.BookingIDPrefix, data.Bookings)
	registry := wizard.NewRegistry(time.Duration(cfg.Booking.SessionIdleMinutes) * time.Minute)

	opts = append(opts,
		booking.WithBookings(backOfficeBookings),
		booking.WithReferencePrefix(cfg.Booking.ReferencePrefix),
		booking.WithPassengerLimits(cfg.Booking.DefaultPassengerCount, cfg.Booking.MaxPassengers),
	)
	flightService := flights.NewFlightService(flightSource, log)
	bookingService := booking.NewBookingService(flightSource, registry, handoffs, log, opts...)
	authenticator := auth.NewAuthenticator(cfg.Admin.Email, cfg.Admin.Password, time.Duration(cfg.Admin.SessionTTLHours)*time.Hour)

	router := bootstrap.NewRouter(cfg, bootstrap.Handlers{
		Site:          api.NewSiteHandler(cfg.Site, cfg.Booking.MaxPassengers),
		Flights:       api.NewFlightHandler(flightService),
		Bookings:      api.NewBookingHandler(bookingService),
		Confirmation:  api.NewConfirmationHandler(bookingService, cfg.HTTP.LandingPath),
		Auth:          api.NewAuthHandler(authenticator),
		Admin:         api.NewAdminHandler(backOfficeFlights, backOfficeBookings, cfg.Site.CurrencySymbol),
		Authenticator: authenticator,
	}, log)

	sweep := bootstrap.Every(time.Duration(cfg.Booking.SessionSweepSeconds)*time.Second, func(ctx context.Context) {
		bookingService.Sweep(ctx)
		memoryCache.Sweep()
		if n := authenticator.Sweep(); n > 0 {
			log.DebugContext(ctx, "admin sessions expired", "count", n)
		}
	})

	if err := bootstrap.Run(ctx, cfg, router, log, sweep); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
