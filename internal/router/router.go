package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/pediclinic/booking-api/config"
	"github.com/pediclinic/booking-api/internal/handler"
	authHandler "github.com/pediclinic/booking-api/internal/handler/auth"
	availabilityHandler "github.com/pediclinic/booking-api/internal/handler/availability"
	bookingHandler "github.com/pediclinic/booking-api/internal/handler/booking"
	patientHandler "github.com/pediclinic/booking-api/internal/handler/patient"
	professionalHandler "github.com/pediclinic/booking-api/internal/handler/professional"
	reservationHandler "github.com/pediclinic/booking-api/internal/handler/reservation"
	serviceHandler "github.com/pediclinic/booking-api/internal/handler/service"
	"github.com/pediclinic/booking-api/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *authHandler.Handler
	Service      *serviceHandler.Handler
	Professional *professionalHandler.Handler
	Patient      *patientHandler.Handler
	Availability *availabilityHandler.Handler
	Booking      *bookingHandler.Handler
	Reservation  *reservationHandler.Handler
}

// New assembles the gin engine with the full middleware chain and
// mounts all route groups. Client routes require a session; staff
// routes live under /staff and are expected to sit behind the
// clinic's internal network.
func New(cfg *config.Config, authMW *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	engine.Use(middleware.RateLimit(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst))
	engine.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	engine.Use(middleware.ErrorHandler())

	engine.GET("/healthz", h.Health.Check)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)
	h.Service.RegisterRoutes(v1)
	h.Professional.RegisterRoutes(v1)
	h.Availability.RegisterRoutes(v1)

	client := v1.Group("")
	client.Use(authMW.RequireSession())
	h.Patient.RegisterRoutes(client)
	h.Booking.RegisterRoutes(client)
	h.Reservation.RegisterClientRoutes(client)

	staff := v1.Group("/staff")
	h.Reservation.RegisterRoutes(staff)
	h.Service.RegisterAdminRoutes(staff)
	h.Professional.RegisterAdminRoutes(staff)

	return engine
}

// Addr formats the listen address from config.
func Addr(cfg *config.Config) string {
	return fmt.Sprintf(":%d", cfg.Server.Port)
}
