package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ncastro/riobook/internal/domain"
)

// ErrNotEnoughSeats is returned when a seat reservation would take
// available_seats below zero. The decrement is a single conditional
// UPDATE, so concurrent bookings cannot oversell a trip.
var ErrNotEnoughSeats = errors.New("not enough seats available")

type TripSearchParams struct {
	Origin      string
	Destination string
	Types       []string
	DayOfWeek   string
	MinPrice    *int
	MaxPrice    *int
}

type TripRepository interface {
	Search(ctx context.Context, params TripSearchParams) ([]domain.Trip, error)
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	Create(ctx context.Context, trip *domain.Trip) error
	ListByOrigin(ctx context.Context, origin string) ([]domain.Trip, error)
	ListByDestination(ctx context.Context, destination string) ([]domain.Trip, error)
	ListByRoute(ctx context.Context, origin, destination string) ([]domain.Trip, error)
	RestoreSeats(ctx context.Context, tripID string, n int) error
}

type PGTripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) TripRepository {
	return &PGTripRepository{db: db}
}

const tripColumns = `id, operator_id, origin, destination, departure, arrival, duration, price, type, features, available_seats, days_of_week`

func scanTrip(scan func(dest ...any) error) (*domain.Trip, error) {
	var t domain.Trip
	var departure, arrival, duration string
	if err := scan(&t.ID, &t.OperatorID, &t.Origin, &t.Destination, &departure, &arrival, &duration,
		&t.Price, &t.Type, &t.Features, &t.AvailableSeats, &t.DaysOfWeek); err != nil {
		return nil, err
	}
	var err error
	if t.Departure, err = domain.ParseTimeOfDay(departure); err != nil {
		return nil, err
	}
	if t.Arrival, err = domain.ParseTimeOfDay(arrival); err != nil {
		return nil, err
	}
	if t.Duration, err = domain.ParseTripDuration(duration); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGTripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]domain.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

func (r *PGTripRepository) Search(ctx context.Context, params TripSearchParams) ([]domain.Trip, error) {
	conditions := make([]string, 0, 6)
	args := make([]any, 0, 6)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Origin != "" {
		conditions = append(conditions, "origin = "+arg(params.Origin))
	}
	if params.Destination != "" {
		conditions = append(conditions, "destination = "+arg(params.Destination))
	}
	if len(params.Types) > 0 {
		conditions = append(conditions, "type = ANY("+arg(params.Types)+")")
	}
	if params.DayOfWeek != "" {
		conditions = append(conditions, arg(params.DayOfWeek)+" = ANY(days_of_week)")
	}
	if params.MinPrice != nil {
		conditions = append(conditions, "price >= "+arg(*params.MinPrice))
	}
	if params.MaxPrice != nil {
		conditions = append(conditions, "price <= "+arg(*params.MaxPrice))
	}

	query := `SELECT ` + tripColumns + ` FROM trips`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY departure"

	return r.queryTrips(ctx, query, args...)
}

func (r *PGTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id=$1`, id)
	return scanTrip(row.Scan)
}

func (r *PGTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO trips (id, operator_id, origin, destination, departure, arrival, duration, price, type, features, available_seats, days_of_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		trip.ID, trip.OperatorID, trip.Origin, trip.Destination, trip.Departure.String(), trip.Arrival.String(),
		trip.Duration.String(), trip.Price, trip.Type, trip.Features, trip.AvailableSeats, trip.DaysOfWeek)
	return err
}

func (r *PGTripRepository) ListByOrigin(ctx context.Context, origin string) ([]domain.Trip, error) {
	return r.queryTrips(ctx, `SELECT `+tripColumns+` FROM trips WHERE origin=$1 ORDER BY departure`, origin)
}

func (r *PGTripRepository) ListByDestination(ctx context.Context, destination string) ([]domain.Trip, error) {
	return r.queryTrips(ctx, `SELECT `+tripColumns+` FROM trips WHERE destination=$1 ORDER BY departure`, destination)
}

func (r *PGTripRepository) ListByRoute(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
	return r.queryTrips(ctx, `SELECT `+tripColumns+` FROM trips WHERE origin=$1 AND destination=$2 ORDER BY departure`, origin, destination)
}

// RestoreSeats is the accounting inverse of the booking-time decrement.
// Cancellation deliberately does not call it; seats stay consumed.
func (r *PGTripRepository) RestoreSeats(ctx context.Context, tripID string, n int) error {
	cmd, err := r.db.Exec(ctx, `UPDATE trips SET available_seats = available_seats + $2 WHERE id=$1`, tripID, n)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

var _ TripRepository = (*PGTripRepository)(nil)
