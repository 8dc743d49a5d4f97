package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/pediclinic/booking-api/config"
	"github.com/pediclinic/booking-api/internal/email"
	"github.com/pediclinic/booking-api/internal/handler"
	authHandler "github.com/pediclinic/booking-api/internal/handler/auth"
	availabilityHandler "github.com/pediclinic/booking-api/internal/handler/availability"
	bookingHandler "github.com/pediclinic/booking-api/internal/handler/booking"
	patientHandler "github.com/pediclinic/booking-api/internal/handler/patient"
	professionalHandler "github.com/pediclinic/booking-api/internal/handler/professional"
	reservationHandler "github.com/pediclinic/booking-api/internal/handler/reservation"
	serviceHandler "github.com/pediclinic/booking-api/internal/handler/service"
	"github.com/pediclinic/booking-api/internal/middleware"
	"github.com/pediclinic/booking-api/internal/notifier"
	"github.com/pediclinic/booking-api/internal/repository/postgres"
	"github.com/pediclinic/booking-api/internal/router"
	authService "github.com/pediclinic/booking-api/internal/service/auth"
	availabilityService "github.com/pediclinic/booking-api/internal/service/availability"
	reservationService "github.com/pediclinic/booking-api/internal/service/reservation"
	"github.com/pediclinic/booking-api/internal/worker"
	"github.com/pediclinic/booking-api/pkg/auth"
	"github.com/pediclinic/booking-api/pkg/clock"
	"github.com/pediclinic/booking-api/pkg/logger"
	"github.com/pediclinic/booking-api/pkg/metrics"
	"github.com/pediclinic/booking-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	handler.RegisterValidations()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("pediclinic", "booking")

	reservationRepo := postgres.NewReservationRepository(db, m)
	professionalRepo := postgres.NewProfessionalRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	clientRepo := postgres.NewClientRepository(db)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:      cfg.JWT.Secret,
		ExpiryHours: cfg.JWT.ExpiryHours,
	})
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	var notif notifier.Notifier
	if cfg.Redis.URL != "" {
		notif, err = notifier.NewRedisNotifier(notifier.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer notif.Close()
	} else {
		appLogger.Warn("redis not configured, reservation change events disabled")
		notif = notifier.Noop()
	}

	var mailer email.Service
	if cfg.SMTP.Enabled {
		mailer = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		mailer = email.Noop()
	}

	clk := clock.System()

	availabilitySvc := availabilityService.NewService(reservationRepo, clk, appLogger, m)
	reservationSvc := reservationService.NewService(reservationRepo, clientRepo, notif, mailer, appLogger, m, cfg.Booking.StoreTimeout)
	authSvc := authService.NewService(clientRepo, jwtService, hasher)

	authMW := middleware.NewAuthMiddleware(jwtService)

	engine := router.New(cfg, authMW, router.Handlers{
		Health:       handler.NewHealthHandler(db),
		Auth:         authHandler.NewHandler(authSvc),
		Service:      serviceHandler.NewHandler(serviceRepo, professionalRepo),
		Professional: professionalHandler.NewHandler(professionalRepo),
		Patient:      patientHandler.NewHandler(patientRepo),
		Availability: availabilityHandler.NewHandler(availabilitySvc, professionalRepo, serviceRepo),
		Booking: bookingHandler.NewHandler(
			cfg.Booking.DraftTTL,
			availabilitySvc,
			reservationSvc,
			patientRepo,
			serviceRepo,
			professionalRepo,
			m,
		),
		Reservation: reservationHandler.NewHandler(reservationSvc),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewStalePendingWorker(reservationRepo, clk, cfg.Booking.SweepInterval, appLogger)
	go sweeper.Start(ctx)

	srv := &http.Server{
		Addr:    router.Addr(cfg),
		Handler: engine,
	}

	go func() {
		appLogger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(err, "graceful shutdown failed")
		os.Exit(1)
	}
}
