package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"turnero/internal/domain"
	"turnero/internal/store"
)

type CatalogRepo struct {
	db *bun.DB
}

func NewCatalogRepo(db *bun.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) GetService(ctx context.Context, serviceID uuid.UUID) (domain.Service, error) {
	var row domain.Service
	err := r.db.NewSelect().
		Model(&row).
		Where("id = ?", serviceID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Service{}, store.ErrNotFound
		}
		return domain.Service{}, err
	}
	return row, nil
}

func (r *CatalogRepo) GetProfessional(ctx context.Context, professionalID uuid.UUID) (domain.Professional, error) {
	var row domain.Professional
	err := r.db.NewSelect().
		Model(&row).
		Where("id = ?", professionalID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Professional{}, store.ErrNotFound
		}
		return domain.Professional{}, err
	}
	return row, nil
}

func (r *CatalogRepo) ListActiveServices(ctx context.Context) ([]domain.Service, error) {
	var rows []domain.Service
	err := r.db.NewSelect().
		Model(&rows).
		Where("is_active = TRUE").
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepo) ListActiveProfessionals(ctx context.Context) ([]domain.Professional, error) {
	var rows []domain.Professional
	err := r.db.NewSelect().
		Model(&rows).
		Where("is_active = TRUE").
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepo) ListAvailabilityRules(ctx context.Context, professionalID uuid.UUID, weekday time.Weekday) ([]domain.AvailabilityRule, error) {
	var rows []domain.AvailabilityRule
	err := r.db.NewSelect().
		Model(&rows).
		Where("professional_id = ?", professionalID).
		Where("weekday = ?", int(weekday)).
		OrderExpr("start_min ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepo) CreateAvailabilityRule(ctx context.Context, rule domain.AvailabilityRule) (domain.AvailabilityRule, error) {
	m := rule
	_, err := r.db.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		return domain.AvailabilityRule{}, err
	}
	return m, nil
}
