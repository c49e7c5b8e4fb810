package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"turnero/internal/domain"
)

// ScheduleTx is the set of booking operations available while the schedule of
// one (professional, date) is locked. The read-decide-write sequence of a
// booking request must run entirely inside one such transaction.
type ScheduleTx interface {
	CreateBooking(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	ListDayBookings(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]domain.Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error
}

type BookingRepository interface {
	// InScheduleTransaction serializes fn against all other schedule
	// transactions for the same professional and date.
	InScheduleTransaction(ctx context.Context, professionalID uuid.UUID, date time.Time, fn func(ctx context.Context, tx ScheduleTx) error) error

	ListDayBookings(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]domain.Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context) ([]domain.Booking, error)
}
