package services_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/laundry-service/internal/models"
	services "github.com/magabrotheeeer/laundry-service/internal/services/subscription"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// Мок для SubscriptionRepository
type SubscriptionRepoMock struct {
	mock.Mock
}

func (m *SubscriptionRepoMock) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}

func (m *SubscriptionRepoMock) CancelActiveSubscriptions(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func (m *SubscriptionRepoMock) GetActiveSubscription(ctx context.Context, userUID string) (*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *SubscriptionRepoMock) UpdateSubscriptionUsage(ctx context.Context, userUID string, pickupsUsed, weightUsed int) (int, error) {
	args := m.Called(ctx, userUID, pickupsUsed, weightUsed)
	return args.Int(0), args.Error(1)
}

func (m *SubscriptionRepoMock) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	t.Run("оформление отменяет прежние активные абонементы", func(t *testing.T) {
		repo := new(SubscriptionRepoMock)
		cache := new(CacheMock)
		svc := services.NewSubscriptionService(repo, cache, newTestLogger())

		repo.On("CancelActiveSubscriptions", mock.Anything, "uid-1").Return(1, nil).Once()
		repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
			return sub.UserUID == "uid-1" &&
				sub.Plan == "family" &&
				sub.Status == models.SubscriptionActive &&
				sub.Price == 999 &&
				sub.WeightAllowed == 50 &&
				sub.PickupsAllowed == 8 &&
				sub.WeightUsed == 0 &&
				sub.PickupsUsed == 0 &&
				sub.EndDate.Sub(sub.StartDate) == 30*24*time.Hour
		})).Return(7, nil).Once()
		cache.On("Set", "subscription:active:uid-1", mock.Anything, mock.Anything).Return(nil).Once()

		id, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscription{Plan: "family"})
		require.NoError(t, err)
		assert.Equal(t, 7, id)

		repo.AssertExpectations(t)
	})

	t.Run("цена берётся из каталога, а не от клиента", func(t *testing.T) {
		repo := new(SubscriptionRepoMock)
		cache := new(CacheMock)
		svc := services.NewSubscriptionService(repo, cache, newTestLogger())

		repo.On("CancelActiveSubscriptions", mock.Anything, "uid-1").Return(0, nil).Once()
		repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
			return sub.Price == 499 && sub.WeightAllowed == 20
		})).Return(8, nil).Once()
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscription{Plan: "basic"})
		require.NoError(t, err)
	})

	t.Run("неизвестный тариф отклоняется", func(t *testing.T) {
		svc := services.NewSubscriptionService(new(SubscriptionRepoMock), new(CacheMock), newTestLogger())

		_, err := svc.Subscribe(context.Background(), "uid-1", models.DummySubscription{Plan: "platinum"})
		assert.ErrorIs(t, err, services.ErrUnknownPlan)
	})
}

func TestSubscriptionService_Active(t *testing.T) {
	stored := &models.Subscription{ID: 7, UserUID: "uid-1", Status: models.SubscriptionActive}

	t.Run("промах кеша — чтение из базы и запись в кеш", func(t *testing.T) {
		repo := new(SubscriptionRepoMock)
		cache := new(CacheMock)
		svc := services.NewSubscriptionService(repo, cache, newTestLogger())

		cache.On("Get", "subscription:active:uid-1", mock.Anything).Return(false, nil).Once()
		repo.On("GetActiveSubscription", mock.Anything, "uid-1").Return(stored, nil).Once()
		cache.On("Set", "subscription:active:uid-1", stored, mock.Anything).Return(nil).Once()

		sub, err := svc.Active(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, stored, sub)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("активного абонемента нет", func(t *testing.T) {
		repo := new(SubscriptionRepoMock)
		cache := new(CacheMock)
		svc := services.NewSubscriptionService(repo, cache, newTestLogger())

		cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
		repo.On("GetActiveSubscription", mock.Anything, "uid-1").
			Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Active(context.Background(), "uid-1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSubscriptionService_UpdateUsage(t *testing.T) {
	t.Run("успешная запись счётчиков с инвалидацией кеша", func(t *testing.T) {
		repo := new(SubscriptionRepoMock)
		cache := new(CacheMock)
		svc := services.NewSubscriptionService(repo, cache, newTestLogger())

		repo.On("UpdateSubscriptionUsage", mock.Anything, "uid-1", 3, 12).Return(1, nil).Once()
		cache.On("Invalidate", "subscription:active:uid-1").Return(nil).Once()

		count, err := svc.UpdateUsage(context.Background(), "uid-1",
			models.DummyUsage{PickupsUsed: 3, WeightUsed: 12})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		cache.AssertExpectations(t)
	})

	t.Run("активного абонемента нет", func(t *testing.T) {
		repo := new(SubscriptionRepoMock)
		cache := new(CacheMock)
		svc := services.NewSubscriptionService(repo, cache, newTestLogger())

		repo.On("UpdateSubscriptionUsage", mock.Anything, "uid-1", 1, 1).Return(0, nil).Once()

		_, err := svc.UpdateUsage(context.Background(), "uid-1",
			models.DummyUsage{PickupsUsed: 1, WeightUsed: 1})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSubscriptionService_Cancel(t *testing.T) {
	t.Run("успешная отмена", func(t *testing.T) {
		repo := new(SubscriptionRepoMock)
		cache := new(CacheMock)
		svc := services.NewSubscriptionService(repo, cache, newTestLogger())

		repo.On("CancelActiveSubscriptions", mock.Anything, "uid-1").Return(1, nil).Once()
		cache.On("Invalidate", "subscription:active:uid-1").Return(nil).Once()

		count, err := svc.Cancel(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("отменять нечего", func(t *testing.T) {
		repo := new(SubscriptionRepoMock)
		cache := new(CacheMock)
		svc := services.NewSubscriptionService(repo, cache, newTestLogger())

		repo.On("CancelActiveSubscriptions", mock.Anything, "uid-1").Return(0, nil).Once()

		_, err := svc.Cancel(context.Background(), "uid-1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
