package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service is a bookable offering with a fixed duration. Duration changes
// never touch existing bookings; each booking snapshots its own end.
type Service struct {
	bun.BaseModel `bun:"table:services"`

	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	Name            string    `bun:"name,notnull"`
	Description     string    `bun:"description"`
	DurationMinutes int       `bun:"duration_minutes,notnull"`
	Price           float64   `bun:"price,notnull"`
	IsActive        bool      `bun:"is_active,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull"`
	UpdatedAt       time.Time `bun:"updated_at,notnull"`
}

func (s *Service) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			s.ID = id
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}

type Professional struct {
	bun.BaseModel `bun:"table:professionals"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	Name           string    `bun:"name,notnull"`
	Email          string    `bun:"email"`
	Phone          string    `bun:"phone"`
	Specialization string    `bun:"specialization"`
	Bio            string    `bun:"bio"`
	IsActive       bool      `bun:"is_active,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`
}

func (p *Professional) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if p.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			p.ID = id
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		p.UpdatedAt = now
	}
	return nil
}

// AvailabilityRule is a recurring weekly window during which a professional
// accepts bookings. Weekday follows time.Weekday (0 = Sunday). A professional
// may hold several rules per weekday; no rules means unavailable that day.
type AvailabilityRule struct {
	bun.BaseModel `bun:"table:availability_rules"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	ProfessionalID uuid.UUID `bun:"professional_id,notnull,type:uuid"`
	Weekday        int       `bun:"weekday,notnull"`
	StartMin       int       `bun:"start_min,notnull"`
	EndMin         int       `bun:"end_min,notnull"`
	IsAvailable    bool      `bun:"is_available,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`
}

func (r *AvailabilityRule) Interval() TimeInterval {
	return TimeInterval{StartMin: r.StartMin, EndMin: r.EndMin}
}

func (r *AvailabilityRule) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if r.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			r.ID = id
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		r.UpdatedAt = now
	}
	return nil
}

// AvailabilityIntervals builds the weekly availability index view for one
// weekday: the union of all is_available rule windows, sorted and merged.
// Overlapping rules collapse into one window.
func AvailabilityIntervals(rules []AvailabilityRule) []TimeInterval {
	intervals := make([]TimeInterval, 0, len(rules))
	for i := range rules {
		if !rules[i].IsAvailable {
			continue
		}
		intervals = append(intervals, rules[i].Interval())
	}
	return MergeIntervals(intervals)
}
