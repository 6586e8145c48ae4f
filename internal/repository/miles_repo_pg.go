package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ncastro/riobook/internal/domain"
)

type MilesRepository interface {
	GetOrInit(ctx context.Context, userID string) (*domain.UserMiles, error)
	ApplyDelta(ctx context.Context, userID string, delta int, bookingID string, txType domain.MilesTransactionType, description string) (*domain.UserMiles, error)
	ListTransactions(ctx context.Context, userID string) ([]domain.MilesTransaction, error)
}

type PGMilesRepository struct {
	db *pgxpool.Pool
}

func NewMilesRepository(db *pgxpool.Pool) MilesRepository {
	return &PGMilesRepository{db: db}
}

// GetOrInit returns the user's miles record, creating a zero-balance
// bronze one on first use. The unique constraint on user_id plus the
// DO NOTHING upsert keeps concurrent first reads from inserting twice.
func (r *PGMilesRepository) GetOrInit(ctx context.Context, userID string) (*domain.UserMiles, error) {
	if _, err := r.db.Exec(ctx, `INSERT INTO user_miles (id, user_id) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		uuid.NewString(), userID); err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `SELECT id, user_id, total_miles, tier_level, lifetime_miles FROM user_miles WHERE user_id=$1`, userID)
	var m domain.UserMiles
	if err := row.Scan(&m.ID, &m.UserID, &m.TotalMiles, &m.TierLevel, &m.LifetimeMiles); err != nil {
		return nil, err
	}
	return &m, nil
}

// ApplyDelta updates the balance, recomputes the tier and appends the
// ledger row in a single transaction. The balance update is a relative
// UPDATE, not a read-then-write, so concurrent accruals cannot lose
// each other. Lifetime miles only grow on positive deltas.
func (r *PGMilesRepository) ApplyDelta(ctx context.Context, userID string, delta int, bookingID string, txType domain.MilesTransactionType, description string) (*domain.UserMiles, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO user_miles (id, user_id) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		uuid.NewString(), userID); err != nil {
		return nil, err
	}

	var m domain.UserMiles
	if err := tx.QueryRow(ctx, `UPDATE user_miles
		SET total_miles = total_miles + $2, lifetime_miles = lifetime_miles + GREATEST($2, 0)
		WHERE user_id=$1
		RETURNING id, user_id, total_miles, lifetime_miles`, userID, delta).
		Scan(&m.ID, &m.UserID, &m.TotalMiles, &m.LifetimeMiles); err != nil {
		return nil, err
	}

	m.TierLevel = domain.TierForLifetime(m.LifetimeMiles)
	if _, err := tx.Exec(ctx, `UPDATE user_miles SET tier_level=$2 WHERE user_id=$1`, userID, m.TierLevel); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO miles_transactions (id, user_id, booking_id, miles, type, description)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''))`,
		uuid.NewString(), userID, bookingID, delta, txType, description); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PGMilesRepository) ListTransactions(ctx context.Context, userID string) ([]domain.MilesTransaction, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, COALESCE(booking_id, ''), miles, type, COALESCE(description, ''), created_at
		FROM miles_transactions WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]domain.MilesTransaction, 0)
	for rows.Next() {
		var t domain.MilesTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.BookingID, &t.Miles, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

var _ MilesRepository = (*PGMilesRepository)(nil)
