// Package services содержит бизнес-логику регистрации и аутентификации.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/laundry-service/internal/lib/jwt"
	"github.com/magabrotheeeer/laundry-service/internal/lib/password"
	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
	"github.com/magabrotheeeer/laundry-service/internal/models"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// ErrUserExists возвращается при регистрации на уже занятый email.
var ErrUserExists = errors.New("user already exists")

// ErrInvalidCredentials возвращается при неверном email или пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его uid.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя или ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по uid или ErrNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateLastLogin отмечает время последнего входа.
	UpdateLastLogin(ctx context.Context, userUID string) error
}

// ActivityRepository описывает запись в ленту активности.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity models.Activity) (int, error)
}

// Notifier публикует сообщение в очередь уведомлений.
type Notifier interface {
	Publish(routingKey string, message any) error
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users      UserRepository
	activities ActivityRepository
	notifier   Notifier
	jwtMaker   jwt.Maker
	log        *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, activities ActivityRepository, notifier Notifier, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		activities: activities,
		notifier:   notifier,
		jwtMaker:   jwtMaker,
		log:        log,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью user,
// выдаёт токен сессии. Запись активности и приветственное письмо —
// побочные эффекты: их сбой логируется и не срывает регистрацию.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, *models.User, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return "", nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", nil, err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(email, user.Role, uid)
	if err != nil {
		return "", nil, err
	}

	if _, err := s.activities.CreateActivity(ctx, models.Activity{
		Type:    models.ActivityNewUser,
		Message: fmt.Sprintf("%s signed up", name),
		UserUID: uid,
	}); err != nil {
		s.log.Warn("failed to log new_user activity", sl.Err(err))
	}

	if err := s.notifier.Publish("welcome", models.WelcomeMessage{
		Email: email,
		Name:  name,
	}); err != nil {
		s.log.Warn("failed to publish welcome notification", sl.Err(err))
	}

	return token, &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.UID); err != nil {
		s.log.Warn("failed to update last login", sl.Err(err))
	}

	return token, user, nil
}

// ValidateToken проверяет JWT и убеждается, что пользователь всё ещё
// существует. Возвращает актуального пользователя из базы.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
