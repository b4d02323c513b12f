// Package services содержит бизнес-логику абонементов и кеширование
// горячего чтения активного абонемента.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/laundry-service/internal/models"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// ErrUnknownPlan возвращается при оформлении несуществующего тарифа.
var ErrUnknownPlan = errors.New("unknown plan")

// subscriptionWindowDays — длительность расчётного периода абонемента.
const subscriptionWindowDays = 30

// plans — серверный каталог тарифов. Цены и лимиты берутся только отсюда.
var plans = []models.Plan{
	{Name: "basic", Price: 499, WeightAllowed: 20, PickupsAllowed: 4},
	{Name: "family", Price: 999, WeightAllowed: 50, PickupsAllowed: 8},
	{Name: "premium", Price: 1499, WeightAllowed: 80, PickupsAllowed: 12},
}

// SubscriptionRepository определяет методы для работы с абонементами.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новый абонемент и возвращает его ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// CancelActiveSubscriptions отменяет активные абонементы пользователя.
	CancelActiveSubscriptions(ctx context.Context, userUID string) (int, error)
	// GetActiveSubscription возвращает активный абонемент или ErrNotFound.
	GetActiveSubscription(ctx context.Context, userUID string) (*models.Subscription, error)
	// UpdateSubscriptionUsage записывает счётчики использования.
	UpdateSubscriptionUsage(ctx context.Context, userUID string, pickupsUsed, weightUsed int) (int, error)
	// ListSubscriptions возвращает все абонементы пользователя.
	ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// SubscriptionService реализует жизненный цикл абонемента: у пользователя
// одновременно активен не больше одного.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Plans возвращает каталог тарифов.
func (s *SubscriptionService) Plans() []models.Plan {
	return plans
}

func findPlan(name string) (models.Plan, bool) {
	for _, p := range plans {
		if p.Name == name {
			return p, true
		}
	}
	return models.Plan{}, false
}

func cacheKey(userUID string) string {
	return fmt.Sprintf("subscription:active:%s", userUID)
}

// Subscribe оформляет новый абонемент: сперва отменяет прежние активные
// абонементы пользователя, затем вставляет запись со статусом active,
// 30-дневным окном и обнулёнными счётчиками.
func (s *SubscriptionService) Subscribe(ctx context.Context, userUID string, req models.DummySubscription) (int, error) {
	plan, ok := findPlan(req.Plan)
	if !ok {
		return 0, ErrUnknownPlan
	}

	cancelled, err := s.repo.CancelActiveSubscriptions(ctx, userUID)
	if err != nil {
		return 0, err
	}
	if cancelled > 0 {
		s.log.Info("cancelled previous active subscriptions",
			slog.String("user_uid", userUID), slog.Int("count", cancelled))
	}

	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	sub := models.Subscription{
		UserUID:        userUID,
		Plan:           plan.Name,
		Status:         models.SubscriptionActive,
		Price:          plan.Price,
		WeightAllowed:  plan.WeightAllowed,
		PickupsAllowed: plan.PickupsAllowed,
		StartDate:      startDate,
		EndDate:        startDate.AddDate(0, 0, subscriptionWindowDays),
		AutoRenew:      req.AutoRenew,
		CardLast4:      req.CardLast4,
		CardExpiry:     req.CardExpiry,
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return 0, err
	}
	sub.ID = id
	s.log.Info("created new subscription", slog.Int("id", id), slog.String("plan", plan.Name))

	if err := s.cache.Set(cacheKey(userUID), sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey(userUID)), slog.Any("err", err))
	}

	return id, nil
}

// Active возвращает активный абонемент пользователя, используя кеш.
func (s *SubscriptionService) Active(ctx context.Context, userUID string) (*models.Subscription, error) {
	var result *models.Subscription
	key := cacheKey(userUID)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("failed to read subscription cache", slog.String("key", key), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}

	result, err = s.repo.GetActiveSubscription(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// UpdateUsage записывает счётчики использования активного абонемента.
// Значения приходят от клиента и обрезаются по лимитам тарифа.
func (s *SubscriptionService) UpdateUsage(ctx context.Context, userUID string, req models.DummyUsage) (int, error) {
	count, err := s.repo.UpdateSubscriptionUsage(ctx, userUID, req.PickupsUsed, req.WeightUsed)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}
	if err := s.cache.Invalidate(cacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.Any("err", err))
	}
	return count, nil
}

// Cancel переводит активный абонемент в cancelled и выключает автопродление.
// Неиспользованный лимит не возвращается и не пересчитывается.
func (s *SubscriptionService) Cancel(ctx context.Context, userUID string) (int, error) {
	count, err := s.repo.CancelActiveSubscriptions(ctx, userUID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, repository.ErrNotFound
	}
	if err := s.cache.Invalidate(cacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.Any("err", err))
	}
	return count, nil
}

// List возвращает все абонементы пользователя, новые первыми.
func (s *SubscriptionService) List(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userUID)
}
