package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"turnero/internal/domain"
)

type CatalogRepository interface {
	GetService(ctx context.Context, serviceID uuid.UUID) (domain.Service, error)
	GetProfessional(ctx context.Context, professionalID uuid.UUID) (domain.Professional, error)
	ListActiveServices(ctx context.Context) ([]domain.Service, error)
	ListActiveProfessionals(ctx context.Context) ([]domain.Professional, error)

	ListAvailabilityRules(ctx context.Context, professionalID uuid.UUID, weekday time.Weekday) ([]domain.AvailabilityRule, error)
	CreateAvailabilityRule(ctx context.Context, rule domain.AvailabilityRule) (domain.AvailabilityRule, error)
}
