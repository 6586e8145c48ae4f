package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ncastro/riobook/internal/domain"
)

type OperatorRepository interface {
	List(ctx context.Context) ([]domain.Operator, error)
	Create(ctx context.Context, operator *domain.Operator) error
}

type PGOperatorRepository struct {
	db *pgxpool.Pool
}

func NewOperatorRepository(db *pgxpool.Pool) OperatorRepository {
	return &PGOperatorRepository{db: db}
}

func (r *PGOperatorRepository) List(ctx context.Context) ([]domain.Operator, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, type, COALESCE(logo, '') FROM operators ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	operators := make([]domain.Operator, 0)
	for rows.Next() {
		var o domain.Operator
		if err := rows.Scan(&o.ID, &o.Name, &o.Type, &o.Logo); err != nil {
			return nil, err
		}
		operators = append(operators, o)
	}
	return operators, rows.Err()
}

func (r *PGOperatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	if operator.ID == "" {
		operator.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `INSERT INTO operators (id, name, type, logo) VALUES ($1, $2, $3, NULLIF($4, ''))`,
		operator.ID, operator.Name, operator.Type, operator.Logo)
	return err
}

var _ OperatorRepository = (*PGOperatorRepository)(nil)
