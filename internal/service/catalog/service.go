package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"turnero/internal/domain"
	"turnero/internal/store"
)

var ErrForbidden = errors.New("forbidden")

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service exposes the catalog read surface used by the booking form and the
// admin-only availability configuration write path.
type Service struct {
	repo store.CatalogRepository
}

func NewService(repo store.CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.repo.ListActiveServices(ctx)
}

func (s *Service) ListProfessionals(ctx context.Context) ([]domain.Professional, error) {
	return s.repo.ListActiveProfessionals(ctx)
}

type CreateAvailabilityRuleInput struct {
	ProfessionalID uuid.UUID
	Weekday        int
	StartTime      string // "HH:MM"
	EndTime        string // "HH:MM"
	IsAvailable    bool
}

// CreateAvailabilityRule registers a weekly availability window. Malformed
// windows are rejected here, at configuration time, so slot enumeration never
// sees an inverted or zero-length interval.
func (s *Service) CreateAvailabilityRule(ctx context.Context, in CreateAvailabilityRuleInput, actorIsAdmin bool) (domain.AvailabilityRule, error) {
	if !actorIsAdmin {
		return domain.AvailabilityRule{}, ErrForbidden
	}
	if in.ProfessionalID == uuid.Nil {
		return domain.AvailabilityRule{}, validationError("professional_id is required")
	}
	if in.Weekday < 0 || in.Weekday > 6 {
		return domain.AvailabilityRule{}, validationError("weekday must be 0-6")
	}

	startMin, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return domain.AvailabilityRule{}, validationError("start_time must be HH:MM")
	}
	endMin, err := domain.ParseClock(in.EndTime)
	if err != nil {
		return domain.AvailabilityRule{}, validationError("end_time must be HH:MM")
	}
	window, err := domain.NewTimeInterval(startMin, endMin)
	if err != nil {
		return domain.AvailabilityRule{}, validationError("end_time must be after start_time")
	}

	if _, err := s.repo.GetProfessional(ctx, in.ProfessionalID); err != nil {
		return domain.AvailabilityRule{}, err
	}

	return s.repo.CreateAvailabilityRule(ctx, domain.AvailabilityRule{
		ProfessionalID: in.ProfessionalID,
		Weekday:        in.Weekday,
		StartMin:       window.StartMin,
		EndMin:         window.EndMin,
		IsAvailable:    in.IsAvailable,
	})
}
