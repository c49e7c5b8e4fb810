// Package http exposes the scheduling engine over a JSON REST surface.
// Authentication lives in front of this service; the effective actor arrives
// in the X-User-ID and X-User-Role headers and is passed down explicitly.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"turnero/internal/domain"
	"turnero/internal/service/catalog"
	"turnero/internal/service/scheduling"
)

type schedulingService interface {
	RequestBooking(ctx context.Context, in scheduling.RequestBookingInput) (domain.Booking, error)
	AvailableSlots(ctx context.Context, professionalID, serviceID uuid.UUID, date time.Time) ([]domain.TimeInterval, error)
	TransitionBooking(ctx context.Context, bookingID uuid.UUID, newStatus domain.BookingStatus, actorID string, actorIsAdmin bool) error
	GetBooking(ctx context.Context, bookingID uuid.UUID, actorID string, actorIsAdmin bool) (domain.Booking, error)
	ListBookings(ctx context.Context, actorID string, actorIsAdmin bool) ([]domain.Booking, error)
}

type catalogService interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListProfessionals(ctx context.Context) ([]domain.Professional, error)
	CreateAvailabilityRule(ctx context.Context, in catalog.CreateAvailabilityRuleInput, actorIsAdmin bool) (domain.AvailabilityRule, error)
}

type Server struct {
	scheduling schedulingService
	catalog    catalogService
	log        *slog.Logger
}

func NewServer(scheduling schedulingService, catalog catalogService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		scheduling: scheduling,
		catalog:    catalog,
		log:        log.With(slog.String("component", "http")),
	}
}

func (s *Server) Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/bookings", s.requestBooking)
		api.GET("/bookings", s.listBookings)
		api.GET("/bookings/:id", s.getBooking)
		api.PATCH("/bookings/:id/status", s.transitionBooking)
		api.DELETE("/bookings/:id", s.cancelBooking)

		api.GET("/availability/slots", s.availableSlots)

		api.GET("/services", s.listServices)
		api.GET("/professionals", s.listProfessionals)
		api.POST("/professionals/:id/availability", s.createAvailabilityRule)
	}
}

// RequestTimeout gives every request without a deadline a default one, the
// same guard the surrounding infrastructure would otherwise have to provide.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); ok {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

type actor struct {
	ID      string
	IsAdmin bool
}

func actorFrom(c *gin.Context) actor {
	return actor{
		ID:      c.GetHeader("X-User-ID"),
		IsAdmin: c.GetHeader("X-User-Role") == "admin",
	}
}
