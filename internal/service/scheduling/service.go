package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"turnero/internal/domain"
	"turnero/internal/store"
)

const (
	maxNotesLen = 500

	// createAttempts bounds the decide-and-write retries when the write
	// constraint detects a race the advisory lock did not cover.
	createAttempts = 3
)

type Service struct {
	bookings store.BookingRepository
	catalog  store.CatalogRepository

	// slotStepMin is the slot enumeration granularity; 0 steps by the
	// service duration.
	slotStepMin int
	now         func() time.Time
}

func NewService(bookings store.BookingRepository, catalog store.CatalogRepository, slotStepMin int) *Service {
	return &Service{
		bookings:    bookings,
		catalog:     catalog,
		slotStepMin: slotStepMin,
		now:         time.Now,
	}
}

type RequestBookingInput struct {
	UserID         string
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	Date           time.Time
	StartTime      string // "HH:MM"
	Notes          string
}

// RequestBooking runs the full admit/reject decision and, on admit, creates
// the booking in pending state. Rejections come back as *RejectionError,
// malformed input as *ValidationError.
func (s *Service) RequestBooking(ctx context.Context, in RequestBookingInput) (domain.Booking, error) {
	if in.UserID == "" {
		return domain.Booking{}, validationError("user_id is required")
	}
	if in.ProfessionalID == uuid.Nil {
		return domain.Booking{}, validationError("professional_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return domain.Booking{}, validationError("service_id is required")
	}
	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLen {
		return domain.Booking{}, validationError("notes too long")
	}

	date := domain.NormalizeDate(in.Date)
	if date.IsZero() {
		return domain.Booking{}, validationError("date is required")
	}
	today := domain.NormalizeDate(s.now().UTC())
	if date.Before(today) {
		return domain.Booking{}, validationError("date must not be in the past")
	}

	startMin, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return domain.Booking{}, validationError("start_time must be HH:MM")
	}
	if date.Equal(today) && startMin < minuteOfDay(s.now().UTC()) {
		return domain.Booking{}, validationError("start_time already passed")
	}

	svc, prof, err := s.activeResources(ctx, in.ServiceID, in.ProfessionalID)
	if err != nil {
		return domain.Booking{}, err
	}

	proposed, err := domain.NewTimeInterval(startMin, startMin+svc.DurationMinutes)
	if err != nil {
		return domain.Booking{}, validationError("requested interval does not fit in the day")
	}

	availability, err := s.availabilityFor(ctx, prof.ID, date)
	if err != nil {
		return domain.Booking{}, err
	}
	if !coveredByAvailability(availability, proposed) {
		return domain.Booking{}, &RejectionError{Reason: ReasonOutsideAvailability}
	}

	booking := domain.Booking{
		UserID:         in.UserID,
		ProfessionalID: prof.ID,
		ServiceID:      svc.ID,
		Date:           date,
		StartMin:       proposed.StartMin,
		EndMin:         proposed.EndMin,
		Status:         domain.BookingStatusPending,
		Notes:          notes,
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		created, err := s.tryCreate(ctx, booking)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return domain.Booking{}, err
		}
		return created, nil
	}
	return domain.Booking{}, &RejectionError{Reason: ReasonConflict}
}

// tryCreate is one decide-and-write cycle under the schedule lock: read the
// fresh ledger, reject on overlap, write the pending booking.
func (s *Service) tryCreate(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	var created domain.Booking
	err := s.bookings.InScheduleTransaction(ctx, booking.ProfessionalID, booking.Date, func(ctx context.Context, tx store.ScheduleTx) error {
		day, err := tx.ListDayBookings(ctx, booking.ProfessionalID, booking.Date)
		if err != nil {
			return err
		}
		proposed := booking.Interval()
		for i := range day {
			if day[i].Status == domain.BookingStatusCancelled {
				continue
			}
			if proposed.Overlaps(day[i].Interval()) {
				return &RejectionError{Reason: ReasonOverlap, ConflictingBookingID: day[i].ID}
			}
		}
		created, err = tx.CreateBooking(ctx, booking)
		return err
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return created, nil
}

// AvailableSlots enumerates the bookable start positions for a professional,
// service and date, in chronological order. Already-passed starts are
// excluded when date is today.
func (s *Service) AvailableSlots(ctx context.Context, professionalID, serviceID uuid.UUID, date time.Time) ([]domain.TimeInterval, error) {
	if professionalID == uuid.Nil {
		return nil, validationError("professional_id is required")
	}
	if serviceID == uuid.Nil {
		return nil, validationError("service_id is required")
	}
	day := domain.NormalizeDate(date)
	if day.IsZero() {
		return nil, validationError("date is required")
	}

	svc, prof, err := s.activeResources(ctx, serviceID, professionalID)
	if err != nil {
		return nil, err
	}

	availability, err := s.availabilityFor(ctx, prof.ID, day)
	if err != nil {
		return nil, err
	}
	if len(availability) == 0 {
		return []domain.TimeInterval{}, nil
	}

	bookings, err := s.bookings.ListDayBookings(ctx, prof.ID, day)
	if err != nil {
		return nil, err
	}
	occupied := domain.OccupiedIntervals(bookings)

	notBefore := -1
	nowUTC := s.now().UTC()
	if day.Equal(domain.NormalizeDate(nowUTC)) {
		notBefore = minuteOfDay(nowUTC)
	}

	slots := domain.EnumerateSlots(availability, occupied, svc.DurationMinutes, s.slotStepMin, notBefore)
	if slots == nil {
		slots = []domain.TimeInterval{}
	}
	return slots, nil
}

// TransitionBooking applies one lifecycle step. Admins may perform any legal
// transition; a non-admin actor may only cancel their own booking. The status
// write runs under the schedule lock so that cancellation is serialized with
// concurrent booking requests for the same day.
func (s *Service) TransitionBooking(ctx context.Context, bookingID uuid.UUID, newStatus domain.BookingStatus, actorID string, actorIsAdmin bool) error {
	if bookingID == uuid.Nil {
		return validationError("booking_id is required")
	}
	if !newStatus.Valid() {
		return validationError("unknown status")
	}

	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !actorIsAdmin {
		if booking.UserID != actorID || newStatus != domain.BookingStatusCancelled {
			return ErrForbidden
		}
	}

	return s.bookings.InScheduleTransaction(ctx, booking.ProfessionalID, booking.Date, func(ctx context.Context, tx store.ScheduleTx) error {
		fresh, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !fresh.Status.CanTransitionTo(newStatus) {
			return ErrInvalidTransition
		}
		return tx.UpdateBookingStatus(ctx, bookingID, newStatus)
	})
}

// GetBooking returns one booking, visible to its owner and to admins.
func (s *Service) GetBooking(ctx context.Context, bookingID uuid.UUID, actorID string, actorIsAdmin bool) (domain.Booking, error) {
	if bookingID == uuid.Nil {
		return domain.Booking{}, validationError("booking_id is required")
	}
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !actorIsAdmin && booking.UserID != actorID {
		return domain.Booking{}, ErrForbidden
	}
	return booking, nil
}

// ListBookings returns the actor's bookings, every booking for admins, newest
// first.
func (s *Service) ListBookings(ctx context.Context, actorID string, actorIsAdmin bool) ([]domain.Booking, error) {
	if actorIsAdmin {
		return s.bookings.ListAllBookings(ctx)
	}
	if actorID == "" {
		return nil, validationError("actor_id is required")
	}
	return s.bookings.ListUserBookings(ctx, actorID)
}

func (s *Service) activeResources(ctx context.Context, serviceID, professionalID uuid.UUID) (domain.Service, domain.Professional, error) {
	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Service{}, domain.Professional{}, &RejectionError{Reason: ReasonResourceUnavailable}
		}
		return domain.Service{}, domain.Professional{}, err
	}
	if !svc.IsActive || svc.DurationMinutes <= 0 {
		return domain.Service{}, domain.Professional{}, &RejectionError{Reason: ReasonResourceUnavailable}
	}

	prof, err := s.catalog.GetProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Service{}, domain.Professional{}, &RejectionError{Reason: ReasonResourceUnavailable}
		}
		return domain.Service{}, domain.Professional{}, err
	}
	if !prof.IsActive {
		return domain.Service{}, domain.Professional{}, &RejectionError{Reason: ReasonResourceUnavailable}
	}

	return svc, prof, nil
}

func (s *Service) availabilityFor(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]domain.TimeInterval, error) {
	rules, err := s.catalog.ListAvailabilityRules(ctx, professionalID, date.Weekday())
	if err != nil {
		return nil, err
	}
	return domain.AvailabilityIntervals(rules), nil
}

func coveredByAvailability(availability []domain.TimeInterval, proposed domain.TimeInterval) bool {
	for _, window := range availability {
		if window.Contains(proposed) {
			return true
		}
	}
	return false
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
