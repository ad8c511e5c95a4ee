package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/database"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/logger"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
	"github.com/iliyamo/event-ticketing/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger depends on config, so report on stderr and bail.
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
		log.Info("migrations applied")
	}

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and list cache disabled")
	} else {
		defer rdb.Close()
	}

	var publisher service.Publisher
	if cfg.AMQPURL != "" {
		publisher = queue.NewPublisher(cfg.AMQPURL, cfg.TicketsQueue, log)
	} else {
		log.Warn("AMQP_URL not set; tickets.issued messages disabled")
	}

	eventRepo := repository.NewEventRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	ticketRepo := repository.NewTicketRepo(db)

	eventSvc := service.NewEventService(eventRepo, seatRepo, log, cfg.MaxSeatsPerEvent)
	bookingSvc := service.NewBookingService(eventRepo, seatRepo, ticketRepo, publisher, log, service.BookingOptions{
		MaxSeatsPerBooking: cfg.MaxSeatsPerBooking,
		Timeout:            cfg.BookingTimeout,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))

	if !cfg.AuthEnabled() {
		log.Warn("JWT_SECRET not set; routes are unauthenticated")
	}
	router.RegisterRoutes(e, router.Deps{
		Events:    handler.NewEventHandler(eventSvc),
		Bookings:  handler.NewBookingHandler(bookingSvc),
		Tickets:   handler.NewTicketHandler(ticketRepo),
		JWTSecret: cfg.JWTSecret,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	bookingSvc.Wait()
	log.Info("server stopped")
}
