// Package services содержит бизнес-логику ленты активности.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/laundry-service/internal/models"
)

const defaultFeedLimit = 20

// ActivityRepository определяет методы для работы с лентой активности.
type ActivityRepository interface {
	// ListActivities возвращает последние события, новые первыми.
	ListActivities(ctx context.Context, limit int) ([]*models.ActivityInfo, error)
}

// ActivityService отдаёт ленту последних событий сервиса.
type ActivityService struct {
	repo ActivityRepository
	log  *slog.Logger
}

// NewActivityService создает новый экземпляр ActivityService.
func NewActivityService(repo ActivityRepository, log *slog.Logger) *ActivityService {
	return &ActivityService{
		repo: repo,
		log:  log,
	}
}

// Feed возвращает последние события. При limit <= 0 берётся значение
// по умолчанию.
func (s *ActivityService) Feed(ctx context.Context, limit int) ([]*models.ActivityInfo, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return s.repo.ListActivities(ctx, limit)
}
