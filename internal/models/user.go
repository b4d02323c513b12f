// Package models содержит доменные структуры системы:
// пользователей, заказы, вещи, абонементы и записи ленты активности,
// а также DTO-структуры для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя сервиса.
// PasswordHash никогда не сериализуется наружу.
type User struct {
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"` // admin или user
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DummyUserUpdate используется для приёма изменений профиля из JSON-запроса.
// Пустые поля не изменяются; новый пароль хэшируется перед сохранением.
type DummyUserUpdate struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Address  string `json:"address" validate:"omitempty,max=300"`
	Password string `json:"password" validate:"omitempty,min=6"`
}
