// Package laundry собирает REST API сервиса стирки: хранилище, кеш,
// брокер уведомлений, бизнес-сервисы и HTTP-сервер.
package laundry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/laundry-service/internal/cache"
	"github.com/magabrotheeeer/laundry-service/internal/config"
	"github.com/magabrotheeeer/laundry-service/internal/lib/jwt"
	"github.com/magabrotheeeer/laundry-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/laundry-service/internal/migrations"
	activityservice "github.com/magabrotheeeer/laundry-service/internal/services/activity"
	adminservice "github.com/magabrotheeeer/laundry-service/internal/services/admin"
	authservice "github.com/magabrotheeeer/laundry-service/internal/services/auth"
	garmentservice "github.com/magabrotheeeer/laundry-service/internal/services/garment"
	orderservice "github.com/magabrotheeeer/laundry-service/internal/services/order"
	seedservice "github.com/magabrotheeeer/laundry-service/internal/services/seed"
	subservice "github.com/magabrotheeeer/laundry-service/internal/services/subscription"
	userservice "github.com/magabrotheeeer/laundry-service/internal/services/user"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: подключает Postgres, применяет миграции,
// поднимает Redis и RabbitMQ, создает сервисы и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	notifier := rabbitmq.NewPublisher(ch)

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, db, notifier, jwtMaker, logger)
	userService := userservice.NewUserService(db, logger)
	orderService := orderservice.NewOrderService(db, db, db, notifier, logger)
	garmentService := garmentservice.NewGarmentService(db, cfg.UploadsDir, logger)
	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, logger)
	adminService := adminservice.NewAdminService(db, logger)
	activityService := activityservice.NewActivityService(db, logger)
	seedService := seedservice.NewSeedService(db, db, db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, &Services{
		Auth:         authService,
		User:         userService,
		Order:        orderService,
		Garment:      garmentService,
		Subscription: subscriptionService,
		Admin:        adminService,
		Activity:     activityService,
		Seed:         seedService,
		Notifier:     notifier,
		Storage:      db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
