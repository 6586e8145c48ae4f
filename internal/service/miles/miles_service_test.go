package miles

import (
	"context"
	"testing"

	"github.com/ncastro/riobook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMilesRepository struct {
	mock.Mock
}

func (m *MockMilesRepository) GetOrInit(ctx context.Context, userID string) (*domain.UserMiles, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserMiles), args.Error(1)
}

func (m *MockMilesRepository) ApplyDelta(ctx context.Context, userID string, delta int, bookingID string, txType domain.MilesTransactionType, description string) (*domain.UserMiles, error) {
	args := m.Called(ctx, userID, delta, bookingID, txType, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserMiles), args.Error(1)
}

func (m *MockMilesRepository) ListTransactions(ctx context.Context, userID string) ([]domain.MilesTransaction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MilesTransaction), args.Error(1)
}

func TestMilesService_AddMiles_EarnedDefaults(t *testing.T) {
	mockRepo := &MockMilesRepository{}
	service := NewMilesService(mockRepo)

	ctx := context.Background()
	expected := &domain.UserMiles{UserID: "user-1", TotalMiles: 1300, LifetimeMiles: 1300, TierLevel: domain.TierBronze}
	mockRepo.On("ApplyDelta", ctx, "user-1", 1300, "booking-1", domain.MilesEarned, "Miles earned for booking").
		Return(expected, nil).Once()

	result, err := service.AddMiles(ctx, "user-1", 1300, "booking-1", "")

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestMilesService_AddMiles_RedeemedDefaults(t *testing.T) {
	mockRepo := &MockMilesRepository{}
	service := NewMilesService(mockRepo)

	ctx := context.Background()
	expected := &domain.UserMiles{UserID: "user-1", TotalMiles: 1000, LifetimeMiles: 1300, TierLevel: domain.TierBronze}
	mockRepo.On("ApplyDelta", ctx, "user-1", -300, "", domain.MilesRedeemed, "Miles redeemed").
		Return(expected, nil).Once()

	result, err := service.AddMiles(ctx, "user-1", -300, "", "")

	assert.NoError(t, err)
	assert.Equal(t, 1000, result.TotalMiles)
	mockRepo.AssertExpectations(t)
}

func TestMilesService_AddMiles_KeepsCallerDescription(t *testing.T) {
	mockRepo := &MockMilesRepository{}
	service := NewMilesService(mockRepo)

	ctx := context.Background()
	mockRepo.On("ApplyDelta", ctx, "user-1", 500, "", domain.MilesEarned, "Promo bonus").
		Return(&domain.UserMiles{}, nil).Once()

	_, err := service.AddMiles(ctx, "user-1", 500, "", "Promo bonus")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestMilesService_AddMiles_ZeroDelta(t *testing.T) {
	mockRepo := &MockMilesRepository{}
	service := NewMilesService(mockRepo)

	result, err := service.AddMiles(context.Background(), "user-1", 0, "", "")

	assert.ErrorIs(t, err, ErrZeroMiles)
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "ApplyDelta",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// fakeMilesRepo applies the same balance rules as the database
// implementation so the accrue/redeem arithmetic can be checked
// end to end.
type fakeMilesRepo struct {
	record domain.UserMiles
	ledger []domain.MilesTransaction
}

func (f *fakeMilesRepo) GetOrInit(ctx context.Context, userID string) (*domain.UserMiles, error) {
	if f.record.UserID == "" {
		f.record = domain.UserMiles{UserID: userID, TierLevel: domain.TierBronze}
	}
	record := f.record
	return &record, nil
}

func (f *fakeMilesRepo) ApplyDelta(ctx context.Context, userID string, delta int, bookingID string, txType domain.MilesTransactionType, description string) (*domain.UserMiles, error) {
	if f.record.UserID == "" {
		f.record = domain.UserMiles{UserID: userID, TierLevel: domain.TierBronze}
	}
	f.record.TotalMiles += delta
	if delta > 0 {
		f.record.LifetimeMiles += delta
	}
	f.record.TierLevel = domain.TierForLifetime(f.record.LifetimeMiles)
	f.ledger = append(f.ledger, domain.MilesTransaction{
		UserID: userID, BookingID: bookingID, Miles: delta, Type: txType, Description: description,
	})
	record := f.record
	return &record, nil
}

func (f *fakeMilesRepo) ListTransactions(ctx context.Context, userID string) ([]domain.MilesTransaction, error) {
	return f.ledger, nil
}

func TestMilesService_RedemptionDoesNotTouchLifetime(t *testing.T) {
	repo := &fakeMilesRepo{}
	service := NewMilesService(repo)
	ctx := context.Background()

	_, err := service.AddMiles(ctx, "user-1", 100, "booking-1", "")
	assert.NoError(t, err)

	result, err := service.AddMiles(ctx, "user-1", -30, "", "")
	assert.NoError(t, err)

	assert.Equal(t, 70, result.TotalMiles)
	assert.Equal(t, 100, result.LifetimeMiles)
	assert.Equal(t, domain.TierBronze, result.TierLevel)

	ledger, _ := service.Transactions(ctx, "user-1")
	assert.Len(t, ledger, 2)
	assert.Equal(t, domain.MilesEarned, ledger[0].Type)
	assert.Equal(t, domain.MilesRedeemed, ledger[1].Type)
}

func TestMilesService_TierPromotion(t *testing.T) {
	repo := &fakeMilesRepo{}
	service := NewMilesService(repo)
	ctx := context.Background()

	result, err := service.AddMiles(ctx, "user-1", 19999, "", "")
	assert.NoError(t, err)
	assert.Equal(t, domain.TierBronze, result.TierLevel)

	result, err = service.AddMiles(ctx, "user-1", 1, "", "")
	assert.NoError(t, err)
	assert.Equal(t, domain.TierSilver, result.TierLevel)

	// Redeeming everything afterwards keeps the earned tier.
	result, err = service.AddMiles(ctx, "user-1", -20000, "", "")
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalMiles)
	assert.Equal(t, domain.TierSilver, result.TierLevel)
}

func TestMilesService_GetUserMiles_InitializesBronze(t *testing.T) {
	repo := &fakeMilesRepo{}
	service := NewMilesService(repo)

	result, err := service.GetUserMiles(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalMiles)
	assert.Equal(t, 0, result.LifetimeMiles)
	assert.Equal(t, domain.TierBronze, result.TierLevel)
}
