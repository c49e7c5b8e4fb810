package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"turnero/internal/domain"
	"turnero/internal/service/scheduling"
	"turnero/internal/store"
)

const dateLayout = "2006-01-02"

type bookingResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	ProfessionalID string              `json:"professional_id"`
	ServiceID      string              `json:"service_id"`
	Date           string              `json:"date"`
	Interval       domain.TimeInterval `json:"interval"`
	Status         string              `json:"status"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID.String(),
		UserID:         b.UserID,
		ProfessionalID: b.ProfessionalID.String(),
		ServiceID:      b.ServiceID.String(),
		Date:           b.Date.Format(dateLayout),
		Interval:       b.Interval(),
		Status:         string(b.Status),
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (s *Server) requestBooking(c *gin.Context) {
	log := s.log.With(slog.String("handler", "requestBooking"))

	act := actorFrom(c)
	if act.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID is required"})
		return
	}

	var body struct {
		ProfessionalID string `json:"professional_id" binding:"required"`
		ServiceID      string `json:"service_id" binding:"required"`
		Date           string `json:"date" binding:"required"`
		StartTime      string `json:"start_time" binding:"required"`
		Notes          string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	professionalID, err := uuid.Parse(body.ProfessionalID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id must be a UUID"})
		return
	}
	serviceID, err := uuid.Parse(body.ServiceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_id must be a UUID"})
		return
	}
	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	booking, err := s.scheduling.RequestBooking(c.Request.Context(), scheduling.RequestBookingInput{
		UserID:         act.ID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
		StartTime:      body.StartTime,
		Notes:          body.Notes,
	})
	if err != nil {
		s.writeBookingError(c, log, err)
		return
	}

	log.Info(
		"booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("user_id", booking.UserID),
		slog.String("professional_id", booking.ProfessionalID.String()),
		slog.String("date", booking.Date.Format(dateLayout)),
		slog.String("interval", booking.Interval().String()),
	)
	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (s *Server) listBookings(c *gin.Context) {
	log := s.log.With(slog.String("handler", "listBookings"))

	act := actorFrom(c)
	if act.ID == "" && !act.IsAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID is required"})
		return
	}

	bookings, err := s.scheduling.ListBookings(c.Request.Context(), act.ID, act.IsAdmin)
	if err != nil {
		s.writeBookingError(c, log, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	log.Debug("bookings listed", slog.String("actor_id", act.ID), slog.Int("count", len(out)))
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

func (s *Server) getBooking(c *gin.Context) {
	log := s.log.With(slog.String("handler", "getBooking"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking id must be a UUID"})
		return
	}
	act := actorFrom(c)

	booking, err := s.scheduling.GetBooking(c.Request.Context(), id, act.ID, act.IsAdmin)
	if err != nil {
		s.writeBookingError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (s *Server) transitionBooking(c *gin.Context) {
	log := s.log.With(slog.String("handler", "transitionBooking"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking id must be a UUID"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	act := actorFrom(c)
	newStatus := domain.BookingStatus(body.Status)
	if err := s.scheduling.TransitionBooking(c.Request.Context(), id, newStatus, act.ID, act.IsAdmin); err != nil {
		s.writeBookingError(c, log, err)
		return
	}

	log.Info(
		"booking status updated",
		slog.String("booking_id", id.String()),
		slog.String("status", body.Status),
		slog.String("actor_id", act.ID),
		slog.Bool("actor_is_admin", act.IsAdmin),
	)
	c.JSON(http.StatusOK, gin.H{"id": id.String(), "status": body.Status})
}

// cancelBooking is the cancellation shorthand; a booking row is never
// deleted.
func (s *Server) cancelBooking(c *gin.Context) {
	log := s.log.With(slog.String("handler", "cancelBooking"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking id must be a UUID"})
		return
	}

	act := actorFrom(c)
	if err := s.scheduling.TransitionBooking(c.Request.Context(), id, domain.BookingStatusCancelled, act.ID, act.IsAdmin); err != nil {
		s.writeBookingError(c, log, err)
		return
	}

	log.Info("booking cancelled", slog.String("booking_id", id.String()), slog.String("actor_id", act.ID))
	c.JSON(http.StatusOK, gin.H{"id": id.String(), "status": string(domain.BookingStatusCancelled)})
}

func (s *Server) availableSlots(c *gin.Context) {
	log := s.log.With(slog.String("handler", "availableSlots"))

	professionalID, err := uuid.Parse(c.Query("professional_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id must be a UUID"})
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_id must be a UUID"})
		return
	}
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	slots, err := s.scheduling.AvailableSlots(c.Request.Context(), professionalID, serviceID, date)
	if err != nil {
		s.writeBookingError(c, log, err)
		return
	}

	log.Debug(
		"slots listed",
		slog.String("professional_id", professionalID.String()),
		slog.String("date", date.Format(dateLayout)),
		slog.Int("count", len(slots)),
	)
	c.JSON(http.StatusOK, gin.H{"available_slots": slots})
}

func (s *Server) writeBookingError(c *gin.Context, log *slog.Logger, err error) {
	var rejErr *scheduling.RejectionError
	if errors.As(err, &rejErr) {
		log.Info("booking rejected", slog.String("reason", string(rejErr.Reason)))
		body := gin.H{"error": rejErr.Error(), "reason": string(rejErr.Reason)}
		if rejErr.ConflictingBookingID != uuid.Nil {
			body["conflicting_booking_id"] = rejErr.ConflictingBookingID.String()
		}
		switch rejErr.Reason {
		case scheduling.ReasonOverlap, scheduling.ReasonConflict:
			c.JSON(http.StatusConflict, body)
		default:
			c.JSON(http.StatusUnprocessableEntity, body)
		}
		return
	}

	var vErr *scheduling.ValidationError
	if errors.As(err, &vErr) {
		log.Warn("invalid request", slog.Any("err", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}

	switch {
	case errors.Is(err, scheduling.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, scheduling.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid status transition"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	default:
		log.Error("request failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
