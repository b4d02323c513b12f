package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/laundry-service/internal/models"
	services "github.com/magabrotheeeer/laundry-service/internal/services/order"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// Мок для OrderRepository
type OrderRepoMock struct {
	mock.Mock
}

func (m *OrderRepoMock) CreateOrder(ctx context.Context, order models.Order) (int, error) {
	args := m.Called(ctx, order)
	return args.Int(0), args.Error(1)
}

func (m *OrderRepoMock) ReadOrder(ctx context.Context, id int) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepoMock) ListOrders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *OrderRepoMock) UpdateOrderStatus(ctx context.Context, id int, status string) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для ActivityRepository
type ActivityRepoMock struct {
	mock.Mock
}

func (m *ActivityRepoMock) CreateActivity(ctx context.Context, activity models.Activity) (int, error) {
	args := m.Called(ctx, activity)
	return args.Int(0), args.Error(1)
}

// Мок для Notifier
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newOrderService(repo *OrderRepoMock, users *UserRepoMock, activities *ActivityRepoMock, notifier *NotifierMock) *services.OrderService {
	return services.NewOrderService(repo, users, activities, notifier, newTestLogger())
}

func TestOrderService_Create(t *testing.T) {
	req := models.DummyOrder{
		Items:      []string{"shirts x5"},
		Total:      1200,
		PickupDate: "2025-10-01",
		Address:    "12 Rose St",
	}

	t.Run("успешное создание заказа", func(t *testing.T) {
		repo := new(OrderRepoMock)
		activities := new(ActivityRepoMock)
		svc := newOrderService(repo, new(UserRepoMock), activities, new(NotifierMock))

		repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(order models.Order) bool {
			return order.UserUID == "uid-1" &&
				order.Status == models.StatusPickupScheduled &&
				order.PickupDate.Equal(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
		})).Return(42, nil).Once()
		activities.On("CreateActivity", mock.Anything, mock.MatchedBy(func(act models.Activity) bool {
			return act.Type == models.ActivityNewOrder && *act.OrderID == 42
		})).Return(1, nil).Once()

		id, err := svc.Create(context.Background(), "uid-1", req)
		require.NoError(t, err)
		assert.Equal(t, 42, id)

		repo.AssertExpectations(t)
		activities.AssertExpectations(t)
	})

	t.Run("некорректная дата забора", func(t *testing.T) {
		svc := newOrderService(new(OrderRepoMock), new(UserRepoMock), new(ActivityRepoMock), new(NotifierMock))

		badReq := req
		badReq.PickupDate = "01.10.2025"
		_, err := svc.Create(context.Background(), "uid-1", badReq)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid pickup date")
	})

	t.Run("сбой записи активности не срывает создание", func(t *testing.T) {
		repo := new(OrderRepoMock)
		activities := new(ActivityRepoMock)
		svc := newOrderService(repo, new(UserRepoMock), activities, new(NotifierMock))

		repo.On("CreateOrder", mock.Anything, mock.Anything).Return(42, nil).Once()
		activities.On("CreateActivity", mock.Anything, mock.Anything).
			Return(0, errors.New("activity db error")).Once()

		id, err := svc.Create(context.Background(), "uid-1", req)
		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	storedOrder := &models.Order{
		ID:      42,
		UserUID: "uid-1",
		Status:  models.StatusWashing,
	}
	owner := &models.User{
		UID:   "uid-1",
		Name:  "Alice",
		Email: "alice@example.com",
	}

	t.Run("успешная смена статуса: одна запись активности и уведомление", func(t *testing.T) {
		repo := new(OrderRepoMock)
		users := new(UserRepoMock)
		activities := new(ActivityRepoMock)
		notifier := new(NotifierMock)
		svc := newOrderService(repo, users, activities, notifier)

		repo.On("UpdateOrderStatus", mock.Anything, 42, models.StatusWashing).Return(1, nil).Once()
		repo.On("ReadOrder", mock.Anything, 42).Return(storedOrder, nil).Once()
		activities.On("CreateActivity", mock.Anything, mock.MatchedBy(func(act models.Activity) bool {
			return act.Type == models.ActivityStatusUpdate && *act.OrderID == 42
		})).Return(1, nil).Once()
		users.On("GetUser", mock.Anything, "uid-1").Return(owner, nil).Once()
		notifier.On("Publish", "order_status", models.OrderStatusMessage{
			Email:   "alice@example.com",
			Name:    "Alice",
			OrderID: 42,
			Status:  models.StatusWashing,
		}).Return(nil).Once()

		order, err := svc.UpdateStatus(context.Background(), 42, models.StatusWashing)
		require.NoError(t, err)
		assert.Equal(t, storedOrder, order)

		repo.AssertExpectations(t)
		activities.AssertExpectations(t)
		notifier.AssertExpectations(t)
		activities.AssertNumberOfCalls(t, "CreateActivity", 1)
	})

	t.Run("неизвестный статус отклоняется", func(t *testing.T) {
		svc := newOrderService(new(OrderRepoMock), new(UserRepoMock), new(ActivityRepoMock), new(NotifierMock))

		_, err := svc.UpdateStatus(context.Background(), 42, "teleported")
		assert.ErrorIs(t, err, services.ErrUnknownStatus)
	})

	t.Run("заказ не найден", func(t *testing.T) {
		repo := new(OrderRepoMock)
		svc := newOrderService(repo, new(UserRepoMock), new(ActivityRepoMock), new(NotifierMock))

		repo.On("UpdateOrderStatus", mock.Anything, 99, models.StatusWashing).Return(0, nil).Once()

		_, err := svc.UpdateStatus(context.Background(), 99, models.StatusWashing)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("сбой уведомления не срывает смену статуса", func(t *testing.T) {
		repo := new(OrderRepoMock)
		users := new(UserRepoMock)
		activities := new(ActivityRepoMock)
		notifier := new(NotifierMock)
		svc := newOrderService(repo, users, activities, notifier)

		repo.On("UpdateOrderStatus", mock.Anything, 42, models.StatusCompleted).Return(1, nil).Once()
		repo.On("ReadOrder", mock.Anything, 42).Return(storedOrder, nil).Once()
		activities.On("CreateActivity", mock.Anything, mock.Anything).Return(1, nil).Once()
		users.On("GetUser", mock.Anything, "uid-1").Return(owner, nil).Once()
		notifier.On("Publish", "order_status", mock.Anything).
			Return(errors.New("broker down")).Once()

		order, err := svc.UpdateStatus(context.Background(), 42, models.StatusCompleted)
		require.NoError(t, err)
		assert.NotNil(t, order)
	})

	t.Run("у владельца нет email — уведомление не публикуется", func(t *testing.T) {
		repo := new(OrderRepoMock)
		users := new(UserRepoMock)
		activities := new(ActivityRepoMock)
		notifier := new(NotifierMock)
		svc := newOrderService(repo, users, activities, notifier)

		repo.On("UpdateOrderStatus", mock.Anything, 42, models.StatusReady).Return(1, nil).Once()
		repo.On("ReadOrder", mock.Anything, 42).Return(storedOrder, nil).Once()
		activities.On("CreateActivity", mock.Anything, mock.Anything).Return(1, nil).Once()
		users.On("GetUser", mock.Anything, "uid-1").
			Return(&models.User{UID: "uid-1", Name: "Alice"}, nil).Once()

		_, err := svc.UpdateStatus(context.Background(), 42, models.StatusReady)
		require.NoError(t, err)

		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
