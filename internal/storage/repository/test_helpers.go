package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, name, email, passwordHash, role string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		userUID, name, email, passwordHash, role)
	require.NoError(t, err)
}

// CreateOrder создает тестовый заказ
func (f *TestDataFactory) CreateOrder(t *testing.T, userUID, status string, total int, pickupDate time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO orders
		(user_uid, status, items, total, pickup_date, address)
		VALUES ($1, $2, '["shirts x5"]', $3, $4, '12 Rose St') RETURNING id`,
		userUID, status, total, pickupDate).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateGarment создает тестовую вещь
func (f *TestDataFactory) CreateGarment(t *testing.T, userUID, category string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO garments (user_uid, category, material)
		VALUES ($1, $2, 'cotton') RETURNING id`,
		userUID, category).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовый абонемент
func (f *TestDataFactory) CreateSubscription(t *testing.T, userUID, plan, status string,
	price, weightAllowed, pickupsAllowed int, startDate time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions
		(user_uid, plan, status, price, weight_allowed, pickups_allowed, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		userUID, plan, status, price, weightAllowed, pickupsAllowed,
		startDate, startDate.AddDate(0, 0, 30)).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateActivity создает тестовую запись активности
func (f *TestDataFactory) CreateActivity(t *testing.T, activityType, message, userUID string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO activities (type, message, user_uid)
		VALUES ($1, $2, $3) RETURNING id`,
		activityType, message, userUID).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, userUID string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyOrderStatus проверяет статус заказа в БД
func (v *TestVerification) VerifyOrderStatus(t *testing.T, orderID int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifySubscriptionStatus проверяет статус абонемента в БД
func (v *TestVerification) VerifySubscriptionStatus(t *testing.T, subscriptionID int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM subscriptions WHERE id = $1", subscriptionID).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifyGarmentDeleted проверяет удаление вещи из БД
func (v *TestVerification) VerifyGarmentDeleted(t *testing.T, garmentID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM garments WHERE id = $1", garmentID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS activities CASCADE;
        DROP TABLE IF EXISTS subscriptions CASCADE;
        DROP TABLE IF EXISTS garments CASCADE;
        DROP TABLE IF EXISTS orders CASCADE;
        DROP TABLE IF EXISTS users CASCADE;

        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            last_login_at TIMESTAMPTZ
        );

        CREATE TABLE orders (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users(uid),
            status TEXT NOT NULL DEFAULT 'pickup_scheduled',
            items JSONB NOT NULL,
            total INTEGER NOT NULL,
            pickup_date DATE NOT NULL,
            delivery_date DATE,
            address TEXT NOT NULL,
            instructions TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE garments (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users(uid),
            category TEXT NOT NULL,
            material TEXT NOT NULL DEFAULT '',
            condition TEXT NOT NULL DEFAULT 'good',
            clean_count INTEGER NOT NULL DEFAULT 0,
            last_cleaned DATE,
            image_path TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE subscriptions (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users(uid),
            plan TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'active',
            price INTEGER NOT NULL,
            weight_allowed INTEGER NOT NULL,
            weight_used INTEGER NOT NULL DEFAULT 0,
            pickups_allowed INTEGER NOT NULL,
            pickups_used INTEGER NOT NULL DEFAULT 0,
            start_date DATE NOT NULL,
            end_date DATE NOT NULL,
            auto_renew BOOLEAN NOT NULL DEFAULT false,
            card_last4 TEXT NOT NULL DEFAULT '',
            card_expiry TEXT NOT NULL DEFAULT ''
        );

        CREATE TABLE activities (
            id SERIAL PRIMARY KEY,
            type TEXT NOT NULL,
            message TEXT NOT NULL,
            user_uid UUID REFERENCES users(uid),
            order_id INTEGER REFERENCES orders(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE INDEX idx_orders_user_status ON orders (user_uid, status);
        CREATE INDEX idx_subscriptions_user_status ON subscriptions (user_uid, status);
        CREATE INDEX idx_garments_user ON garments (user_uid);
        CREATE INDEX idx_activities_created ON activities (created_at DESC);
    `)
	require.NoError(t, err, "Failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
