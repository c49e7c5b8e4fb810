package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"turnero/internal/domain"
	"turnero/internal/store"
)

type BookingRepo struct {
	db *bun.DB
}

func NewBookingRepo(db *bun.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

type scheduleTx struct {
	tx bun.Tx
}

func (r *BookingRepo) InScheduleTransaction(ctx context.Context, professionalID uuid.UUID, date time.Time, fn func(ctx context.Context, tx store.ScheduleTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockSchedule(ctx, tx, professionalID, date); err != nil {
			return err
		}
		return fn(ctx, scheduleTx{tx: tx})
	})
}

// scheduleLockKey names the advisory lock serializing all writes to one
// professional's schedule for one date.
func scheduleLockKey(professionalID uuid.UUID, date time.Time) string {
	return professionalID.String() + ":" + domain.NormalizeDate(date).Format("2006-01-02")
}

func lockSchedule(ctx context.Context, tx bun.Tx, professionalID uuid.UUID, date time.Time) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", scheduleLockKey(professionalID, date)).Exec(ctx)
	return err
}

func (r *BookingRepo) ListDayBookings(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]domain.Booking, error) {
	return listDayBookings(ctx, r.db, professionalID, date)
}

func (r *BookingRepo) GetBooking(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error) {
	return getBooking(ctx, r.db, bookingID)
}

func (r *BookingRepo) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		OrderExpr("booking_date DESC, start_min DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepo) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("booking_date DESC, start_min DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r scheduleTx) CreateBooking(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	m := booking
	_, err := r.tx.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_overlap" {
			return domain.Booking{}, store.ErrConflict
		}
		return domain.Booking{}, err
	}
	return m, nil
}

func (r scheduleTx) ListDayBookings(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]domain.Booking, error) {
	return listDayBookings(ctx, r.tx, professionalID, date)
}

func (r scheduleTx) GetBooking(ctx context.Context, bookingID uuid.UUID) (domain.Booking, error) {
	return getBooking(ctx, r.tx, bookingID)
}

func (r scheduleTx) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error {
	res, err := r.tx.NewUpdate().
		Model((*domain.Booking)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", bookingID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func listDayBookings(ctx context.Context, db bun.IDB, professionalID uuid.UUID, date time.Time) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := db.NewSelect().
		Model(&rows).
		Where("professional_id = ?", professionalID).
		Where("booking_date = ?", domain.NormalizeDate(date)).
		OrderExpr("start_min ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func getBooking(ctx context.Context, db bun.IDB, bookingID uuid.UUID) (domain.Booking, error) {
	var row domain.Booking
	err := db.NewSelect().
		Model(&row).
		Where("id = ?", bookingID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, store.ErrNotFound
		}
		return domain.Booking{}, err
	}
	return row, nil
}
