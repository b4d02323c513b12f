// Package services содержит генерацию демонстрационных данных для
// локальной разработки.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/laundry-service/internal/lib/password"
	"github.com/magabrotheeeer/laundry-service/internal/models"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// UserRepository определяет методы для создания демо-пользователей.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// OrderRepository определяет методы для создания демо-заказов.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (int, error)
}

// ActivityRepository описывает запись в ленту активности.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity models.Activity) (int, error)
}

// SeedService наполняет базу демонстрационными данными. Повторный вызов
// не создает дубликатов: существующие демо-пользователи пропускаются.
type SeedService struct {
	users      UserRepository
	orders     OrderRepository
	activities ActivityRepository
	log        *slog.Logger
}

// NewSeedService создает новый экземпляр SeedService.
func NewSeedService(users UserRepository, orders OrderRepository, activities ActivityRepository, log *slog.Logger) *SeedService {
	return &SeedService{
		users:      users,
		orders:     orders,
		activities: activities,
		log:        log,
	}
}

type seedUser struct {
	name    string
	email   string
	role    string
	address string
}

var seedUsers = []seedUser{
	{name: "Admin", email: "admin@freshfold.local", role: models.RoleAdmin},
	{name: "Alice Morgan", email: "alice@example.com", role: models.RoleUser, address: "12 Rose St"},
	{name: "Bob Tailor", email: "bob@example.com", role: models.RoleUser, address: "7 Pine Ave"},
}

const seedPassword = "password123"

// Run создает демо-пользователей и по паре заказов на каждого клиента.
// Возвращает количество созданных пользователей и заказов.
func (s *SeedService) Run(ctx context.Context) (int, int, error) {
	const op = "seed.Run"

	hashed, err := password.GetHash(seedPassword)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	var createdUsers, createdOrders int
	for _, su := range seedUsers {
		if _, err := s.users.GetUserByEmail(ctx, su.email); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return createdUsers, createdOrders, fmt.Errorf("%s: %w", op, err)
		}

		uid, err := s.users.RegisterUser(ctx, models.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hashed,
			Role:         su.role,
			Address:      su.address,
		})
		if err != nil {
			return createdUsers, createdOrders, fmt.Errorf("%s: %w", op, err)
		}
		createdUsers++

		if su.role != models.RoleUser {
			continue
		}

		pickup := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
		for i, order := range []models.Order{
			{
				UserUID:    uid,
				Status:     models.StatusPickupScheduled,
				Items:      []string{"shirts x5", "trousers x2"},
				Total:      1200,
				PickupDate: pickup,
				Address:    su.address,
			},
			{
				UserUID:    uid,
				Status:     models.StatusCompleted,
				Items:      []string{"bedding set"},
				Total:      800,
				PickupDate: pickup.AddDate(0, 0, -7),
				Address:    su.address,
			},
		} {
			id, err := s.orders.CreateOrder(ctx, order)
			if err != nil {
				return createdUsers, createdOrders, fmt.Errorf("%s: %w", op, err)
			}
			createdOrders++
			if i == 0 {
				if _, err := s.activities.CreateActivity(ctx, models.Activity{
					Type:    models.ActivityNewOrder,
					Message: fmt.Sprintf("order #%d placed", id),
					UserUID: uid,
					OrderID: &id,
				}); err != nil {
					s.log.Warn("failed to log seed activity", slog.Any("err", err))
				}
			}
		}
	}

	s.log.Info("seed completed",
		slog.Int("users", createdUsers), slog.Int("orders", createdOrders))
	return createdUsers, createdOrders, nil
}
