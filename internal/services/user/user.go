// Package services содержит бизнес-логику профиля пользователя.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/laundry-service/internal/lib/password"
	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по uid или ErrNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateUser перезаписывает контактные поля и хэш пароля.
	UpdateUser(ctx context.Context, user models.User) (int, error)
}

// UserService реализует чтение и частичное обновление профиля.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Get возвращает пользователя по uid.
func (s *UserService) Get(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// Update частично обновляет профиль: пустые поля запроса сохраняют
// текущие значения, новый пароль хэшируется перед записью.
func (s *UserService) Update(ctx context.Context, userUID string, req models.DummyUserUpdate) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Password != "" {
		hashed, err := password.GetHash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if _, err := s.repo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	s.log.Info("updated user profile", slog.String("user_uid", userUID))
	return user, nil
}
