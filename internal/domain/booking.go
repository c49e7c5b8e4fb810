package domain

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// pending -> confirmed -> completed, and pending|confirmed -> cancelled.
// Completed and cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	}
	return false
}

// Booking reserves a professional for one interval on one date. The end of
// the interval is snapshotted from the service duration at creation time and
// never recomputed. A cancelled booking keeps its row; cancellation is a
// status transition, not a delete.
type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID             uuid.UUID     `bun:"id,pk,type:uuid"`
	UserID         string        `bun:"user_id,notnull"`
	ProfessionalID uuid.UUID     `bun:"professional_id,notnull,type:uuid"`
	ServiceID      uuid.UUID     `bun:"service_id,notnull,type:uuid"`
	Date           time.Time     `bun:"booking_date,notnull,type:date"`
	StartMin       int           `bun:"start_min,notnull"`
	EndMin         int           `bun:"end_min,notnull"`
	Status         BookingStatus `bun:"status,notnull"`
	Notes          string        `bun:"notes"`
	CreatedAt      time.Time     `bun:"created_at,notnull"`
	UpdatedAt      time.Time     `bun:"updated_at,notnull"`
}

func (b *Booking) Interval() TimeInterval {
	return TimeInterval{StartMin: b.StartMin, EndMin: b.EndMin}
}

func (b *Booking) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if b.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			b.ID = id
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		if b.UpdatedAt.IsZero() {
			b.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		b.UpdatedAt = now
	}
	return nil
}

// OccupiedIntervals derives the booking ledger view for one professional/date:
// the intervals of every non-cancelled booking, sorted by start.
func OccupiedIntervals(bookings []Booking) []TimeInterval {
	out := make([]TimeInterval, 0, len(bookings))
	for i := range bookings {
		if bookings[i].Status == BookingStatusCancelled {
			continue
		}
		out = append(out, bookings[i].Interval())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMin < out[j].StartMin })
	return out
}

// NormalizeDate truncates t to a calendar date at midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
