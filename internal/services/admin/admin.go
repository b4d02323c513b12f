// Package services содержит бизнес-логику панели администратора.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// StatsRepository определяет методы для сводных выборок.
type StatsRepository interface {
	// GetAdminStats пересчитывает сводные показатели по заказам и абонементам.
	GetAdminStats(ctx context.Context) (*models.AdminStats, error)
	// ListCustomerStats возвращает агрегаты по каждому клиенту.
	ListCustomerStats(ctx context.Context) ([]*models.CustomerStat, error)
	// ListAllOrders возвращает заказы всех пользователей с данными владельца.
	ListAllOrders(ctx context.Context, limit, offset int) ([]*models.OrderInfo, error)
}

// AdminService отдаёт сводные данные для панели администратора.
// Показатели пересчитываются по базе на каждый запрос.
type AdminService struct {
	repo StatsRepository
	log  *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo StatsRepository, log *slog.Logger) *AdminService {
	return &AdminService{
		repo: repo,
		log:  log,
	}
}

// Stats возвращает сводные показатели панели.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.repo.GetAdminStats(ctx)
}

// Customers возвращает агрегаты по каждому клиенту.
func (s *AdminService) Customers(ctx context.Context) ([]*models.CustomerStat, error) {
	return s.repo.ListCustomerStats(ctx)
}

// Orders возвращает заказы всех пользователей с пагинацией.
func (s *AdminService) Orders(ctx context.Context, limit, offset int) ([]*models.OrderInfo, error) {
	return s.repo.ListAllOrders(ctx, limit, offset)
}
