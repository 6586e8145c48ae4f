package miles

import (
	"context"
	"errors"

	"github.com/ncastro/riobook/internal/domain"
	"github.com/ncastro/riobook/internal/metrics"
	"github.com/ncastro/riobook/internal/repository"
)

var ErrZeroMiles = errors.New("miles delta must be non-zero")

type MilesUseCase interface {
	GetUserMiles(ctx context.Context, userID string) (*domain.UserMiles, error)
	Transactions(ctx context.Context, userID string) ([]domain.MilesTransaction, error)
	AddMiles(ctx context.Context, userID string, delta int, bookingID, description string) (*domain.UserMiles, error)
}

type MilesService struct {
	repo repository.MilesRepository
}

func NewMilesService(repo repository.MilesRepository) *MilesService {
	return &MilesService{repo: repo}
}

// GetUserMiles returns the user's balance, initializing a zero-balance
// bronze record on first use.
func (s *MilesService) GetUserMiles(ctx context.Context, userID string) (*domain.UserMiles, error) {
	return s.repo.GetOrInit(ctx, userID)
}

func (s *MilesService) Transactions(ctx context.Context, userID string) ([]domain.MilesTransaction, error) {
	return s.repo.ListTransactions(ctx, userID)
}

// AddMiles applies a signed delta to the spendable balance. Positive
// deltas also grow lifetime miles and may promote the tier; redemptions
// never demote it. The ledger entry type is derived from the sign.
func (s *MilesService) AddMiles(ctx context.Context, userID string, delta int, bookingID, description string) (*domain.UserMiles, error) {
	if delta == 0 {
		return nil, ErrZeroMiles
	}

	txType := domain.MilesEarned
	if delta < 0 {
		txType = domain.MilesRedeemed
	}
	if description == "" {
		if delta > 0 {
			description = "Miles earned for booking"
		} else {
			description = "Miles redeemed"
		}
	}

	updated, err := s.repo.ApplyDelta(ctx, userID, delta, bookingID, txType, description)
	if err != nil {
		return nil, err
	}
	if delta > 0 {
		metrics.MilesAccruedTotal.Add(float64(delta))
	}
	return updated, nil
}

var _ MilesUseCase = (*MilesService)(nil)
