// Package services содержит бизнес-логику жизненного цикла заказов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
	"github.com/magabrotheeeer/laundry-service/internal/models"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// ErrUnknownStatus возвращается при попытке выставить статус не из списка.
var ErrUnknownStatus = errors.New("unknown order status")

// OrderRepository определяет методы для работы с заказами в хранилище.
type OrderRepository interface {
	// CreateOrder добавляет новый заказ и возвращает его ID.
	CreateOrder(ctx context.Context, order models.Order) (int, error)
	// ReadOrder возвращает заказ по ID или ErrNotFound.
	ReadOrder(ctx context.Context, id int) (*models.Order, error)
	// ListOrders возвращает заказы пользователя с пагинацией.
	ListOrders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, error)
	// UpdateOrderStatus записывает новый статус и возвращает число строк.
	UpdateOrderStatus(ctx context.Context, id int, status string) (int, error)
}

// UserRepository читает владельца заказа для уведомления.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// ActivityRepository описывает запись в ленту активности.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity models.Activity) (int, error)
}

// Notifier публикует сообщение в очередь уведомлений.
type Notifier interface {
	Publish(routingKey string, message any) error
}

// OrderService реализует бизнес-логику заказов: создание, чтение
// и админскую смену статуса с побочными эффектами.
type OrderService struct {
	repo       OrderRepository
	users      UserRepository
	activities ActivityRepository
	notifier   Notifier
	log        *slog.Logger
}

// NewOrderService создает новый экземпляр OrderService.
func NewOrderService(repo OrderRepository, users UserRepository, activities ActivityRepository, notifier Notifier, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:       repo,
		users:      users,
		activities: activities,
		notifier:   notifier,
		log:        log,
	}
}

// Create создает заказ с начальным статусом pickup_scheduled.
// Список позиций и сумма берутся из запроса как есть, даты парсятся
// из формата 2006-01-02.
func (s *OrderService) Create(ctx context.Context, userUID string, req models.DummyOrder) (int, error) {
	pickupDate, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return 0, fmt.Errorf("invalid pickup date: %w", err)
	}
	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return 0, fmt.Errorf("invalid delivery date: %w", err)
		}
		deliveryDate = &d
	}

	order := models.Order{
		UserUID:      userUID,
		Status:       models.StatusPickupScheduled,
		Items:        req.Items,
		Total:        req.Total,
		PickupDate:   pickupDate,
		DeliveryDate: deliveryDate,
		Address:      req.Address,
		Instructions: req.Instructions,
	}

	id, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new order", slog.Int("id", id))

	if _, err := s.activities.CreateActivity(ctx, models.Activity{
		Type:    models.ActivityNewOrder,
		Message: fmt.Sprintf("order #%d placed", id),
		UserUID: userUID,
		OrderID: &id,
	}); err != nil {
		s.log.Warn("failed to log new_order activity", sl.Err(err))
	}

	return id, nil
}

// Read возвращает заказ по ID.
func (s *OrderService) Read(ctx context.Context, id int) (*models.Order, error) {
	return s.repo.ReadOrder(ctx, id)
}

// List возвращает заказы пользователя с пагинацией.
func (s *OrderService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, error) {
	return s.repo.ListOrders(ctx, userUID, limit, offset)
}

// UpdateStatus записывает новый статус заказа. Любой известный статус
// допустим, последовательность не навязывается. На каждый вызов
// добавляется ровно одна запись активности, даже если статус не изменился.
// Уведомление владельцу публикуется, если у него известен email;
// сбои побочных эффектов логируются и не срывают смену статуса.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	if !models.KnownOrderStatus(status) {
		return nil, ErrUnknownStatus
	}

	count, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}
	s.log.Info("updated order status", slog.Int("id", id), slog.String("status", status))

	order, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.activities.CreateActivity(ctx, models.Activity{
		Type:    models.ActivityStatusUpdate,
		Message: fmt.Sprintf("order #%d moved to %s", id, status),
		UserUID: order.UserUID,
		OrderID: &id,
	}); err != nil {
		s.log.Warn("failed to log status_update activity", sl.Err(err))
	}

	owner, err := s.users.GetUser(ctx, order.UserUID)
	if err != nil {
		s.log.Warn("failed to load order owner for notification", sl.Err(err))
		return order, nil
	}
	if owner.Email == "" {
		return order, nil
	}
	if err := s.notifier.Publish("order_status", models.OrderStatusMessage{
		Email:   owner.Email,
		Name:    owner.Name,
		OrderID: id,
		Status:  status,
	}); err != nil {
		s.log.Warn("failed to publish order status notification", sl.Err(err))
	}

	return order, nil
}
