package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ncastro/riobook/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	CompleteDepartedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, trip_id, COALESCE(user_id, ''), passenger_name, passenger_email, COALESCE(passenger_phone, ''), passengers, total_price, booking_date, travel_date, status, miles_earned`

func scanBooking(scan func(dest ...any) error) (*domain.Booking, error) {
	var b domain.Booking
	if err := scan(&b.ID, &b.TripID, &b.UserID, &b.PassengerName, &b.PassengerEmail, &b.PassengerPhone,
		&b.Passengers, &b.TotalPrice, &b.BookingDate, &b.TravelDate, &b.Status, &b.MilesEarned); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts the booking and takes its seats from the trip in one
// transaction. The decrement is conditional on enough seats remaining,
// so a concurrent booking that drains the trip makes this fail instead
// of overselling.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var available int
	err = tx.QueryRow(ctx, `UPDATE trips SET available_seats = available_seats - $2 WHERE id=$1 AND available_seats >= $2 RETURNING available_seats`,
		booking.TripID, booking.Passengers).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotEnoughSeats
		}
		return err
	}

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (id, trip_id, user_id, passenger_name, passenger_email, passenger_phone, passengers, total_price, travel_date, status, miles_earned)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)
		RETURNING booking_date`,
		booking.ID, booking.TripID, booking.UserID, booking.PassengerName, booking.PassengerEmail, booking.PassengerPhone,
		booking.Passengers, booking.TotalPrice, booking.TravelDate, booking.Status, booking.MilesEarned).
		Scan(&booking.BookingDate); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBooking(row.Scan)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY booking_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// UpdateStatus flips the booking status only. Seats are not restored on
// cancellation.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 RETURNING `+bookingColumns, status, id)
	return scanBooking(row.Scan)
}

// CompleteDepartedBefore marks confirmed bookings whose travel date has
// passed as completed and returns them.
func (r *PGBookingRepository) CompleteDepartedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1 WHERE status=$2 AND travel_date <= $3 RETURNING `+bookingColumns,
		domain.BookingStatusCompleted, domain.BookingStatusConfirmed, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completed []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		completed = append(completed, *b)
	}
	return completed, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
