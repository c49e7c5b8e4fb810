package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"turnero/internal/domain"
	"turnero/internal/service/catalog"
	"turnero/internal/store"
)

type serviceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

type professionalResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Bio            string `json:"bio,omitempty"`
}

func (s *Server) listServices(c *gin.Context) {
	log := s.log.With(slog.String("handler", "listServices"))

	services, err := s.catalog.ListServices(c.Request.Context())
	if err != nil {
		log.Error("services list failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceResponse{
			ID:              svc.ID.String(),
			Name:            svc.Name,
			Description:     svc.Description,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}
	c.JSON(http.StatusOK, gin.H{"services": out})
}

func (s *Server) listProfessionals(c *gin.Context) {
	log := s.log.With(slog.String("handler", "listProfessionals"))

	professionals, err := s.catalog.ListProfessionals(c.Request.Context())
	if err != nil {
		log.Error("professionals list failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]professionalResponse, 0, len(professionals))
	for _, p := range professionals {
		out = append(out, professionalResponse{
			ID:             p.ID.String(),
			Name:           p.Name,
			Specialization: p.Specialization,
			Bio:            p.Bio,
		})
	}
	c.JSON(http.StatusOK, gin.H{"professionals": out})
}

func (s *Server) createAvailabilityRule(c *gin.Context) {
	log := s.log.With(slog.String("handler", "createAvailabilityRule"))

	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional id must be a UUID"})
		return
	}

	var body struct {
		Weekday     *int   `json:"weekday" binding:"required"`
		StartTime   string `json:"start_time" binding:"required"`
		EndTime     string `json:"end_time" binding:"required"`
		IsAvailable *bool  `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	isAvailable := true
	if body.IsAvailable != nil {
		isAvailable = *body.IsAvailable
	}

	act := actorFrom(c)
	rule, err := s.catalog.CreateAvailabilityRule(c.Request.Context(), catalog.CreateAvailabilityRuleInput{
		ProfessionalID: professionalID,
		Weekday:        *body.Weekday,
		StartTime:      body.StartTime,
		EndTime:        body.EndTime,
		IsAvailable:    isAvailable,
	}, act.IsAdmin)
	if err != nil {
		var vErr *catalog.ValidationError
		switch {
		case errors.As(err, &vErr):
			log.Warn("invalid request", slog.Any("err", err))
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		case errors.Is(err, catalog.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "professional not found"})
		default:
			log.Error("availability rule create failed", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	log.Info(
		"availability rule created",
		slog.String("rule_id", rule.ID.String()),
		slog.String("professional_id", rule.ProfessionalID.String()),
		slog.Int("weekday", rule.Weekday),
		slog.String("window", rule.Interval().String()),
	)
	c.JSON(http.StatusCreated, gin.H{
		"id":              rule.ID.String(),
		"professional_id": rule.ProfessionalID.String(),
		"weekday":         rule.Weekday,
		"interval":        domain.TimeInterval{StartMin: rule.StartMin, EndMin: rule.EndMin},
		"is_available":    rule.IsAvailable,
		"created_at":      rule.CreatedAt.Format(time.RFC3339),
	})
}
