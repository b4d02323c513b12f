// Package laundry предоставляет маршруты для основного приложения.
package laundry

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/laundry-service/internal/config"
	activityfeed "github.com/magabrotheeeer/laundry-service/internal/http/handlers/activity/feed"
	admincustomers "github.com/magabrotheeeer/laundry-service/internal/http/handlers/admin/customers"
	adminorders "github.com/magabrotheeeer/laundry-service/internal/http/handlers/admin/orders"
	adminstats "github.com/magabrotheeeer/laundry-service/internal/http/handlers/admin/stats"
	"github.com/magabrotheeeer/laundry-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/laundry-service/internal/http/handlers/auth/register"
	devseed "github.com/magabrotheeeer/laundry-service/internal/http/handlers/dev/seed"
	devtestmail "github.com/magabrotheeeer/laundry-service/internal/http/handlers/dev/testmail"
	garmentcreate "github.com/magabrotheeeer/laundry-service/internal/http/handlers/garment/create"
	garmentlist "github.com/magabrotheeeer/laundry-service/internal/http/handlers/garment/list"
	garmentremove "github.com/magabrotheeeer/laundry-service/internal/http/handlers/garment/remove"
	garmentupdate "github.com/magabrotheeeer/laundry-service/internal/http/handlers/garment/update"
	garmentupload "github.com/magabrotheeeer/laundry-service/internal/http/handlers/garment/upload"
	"github.com/magabrotheeeer/laundry-service/internal/http/handlers/health"
	ordercreate "github.com/magabrotheeeer/laundry-service/internal/http/handlers/order/create"
	orderlist "github.com/magabrotheeeer/laundry-service/internal/http/handlers/order/list"
	orderread "github.com/magabrotheeeer/laundry-service/internal/http/handlers/order/read"
	orderupdatestatus "github.com/magabrotheeeer/laundry-service/internal/http/handlers/order/updatestatus"
	subactive "github.com/magabrotheeeer/laundry-service/internal/http/handlers/subscription/active"
	subcancel "github.com/magabrotheeeer/laundry-service/internal/http/handlers/subscription/cancel"
	subcreate "github.com/magabrotheeeer/laundry-service/internal/http/handlers/subscription/create"
	sublist "github.com/magabrotheeeer/laundry-service/internal/http/handlers/subscription/list"
	subplans "github.com/magabrotheeeer/laundry-service/internal/http/handlers/subscription/plans"
	subusage "github.com/magabrotheeeer/laundry-service/internal/http/handlers/subscription/usage"
	"github.com/magabrotheeeer/laundry-service/internal/http/handlers/user/profileget"
	"github.com/magabrotheeeer/laundry-service/internal/http/handlers/user/profileupdate"
	"github.com/magabrotheeeer/laundry-service/internal/http/middlewarectx"
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

// Services собирает все бизнес-сервисы, нужные маршрутам.
type Services struct {
	Auth         *authservice.AuthService
	User         *userservice.UserService
	Order        *orderservice.OrderService
	Garment      *garmentservice.GarmentService
	Subscription *subservice.SubscriptionService
	Admin        *adminservice.AdminService
	Activity     *activityservice.ActivityService
	Seed         *seedservice.SeedService
	Notifier     devtestmail.Notifier
	Storage      *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, s.Storage).ServeHTTP)
		r.Get("/subscriptions/plans", subplans.New(logger, s.Subscription).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users/me", profileget.New(logger, s.User).ServeHTTP)
			r.Put("/users/me", profileupdate.New(logger, s.User).ServeHTTP)
			r.Get("/users/{uid}", profileget.New(logger, s.User).ServeHTTP)

			r.Post("/orders", ordercreate.New(logger, s.Order).ServeHTTP)
			r.Get("/orders", orderlist.New(logger, s.Order).ServeHTTP)
			r.Get("/orders/{id}", orderread.New(logger, s.Order).ServeHTTP)

			r.Post("/garments", garmentcreate.New(logger, s.Garment).ServeHTTP)
			r.Get("/garments", garmentlist.New(logger, s.Garment).ServeHTTP)
			r.Put("/garments/{id}", garmentupdate.New(logger, s.Garment).ServeHTTP)
			r.Delete("/garments/{id}", garmentremove.New(logger, s.Garment).ServeHTTP)
			r.Post("/garments/{id}/image", garmentupload.New(logger, s.Garment).ServeHTTP)

			r.Post("/subscriptions", subcreate.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions", sublist.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/active", subactive.New(logger, s.Subscription).ServeHTTP)
			r.Delete("/subscriptions/active", subcancel.New(logger, s.Subscription).ServeHTTP)
			r.Put("/subscriptions/usage", subusage.New(logger, s.Subscription).ServeHTTP)

			// Группа администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Put("/orders/{id}/status", orderupdatestatus.New(logger, s.Order).ServeHTTP)
				r.Get("/admin/stats", adminstats.New(logger, s.Admin).ServeHTTP)
				r.Get("/admin/customers", admincustomers.New(logger, s.Admin).ServeHTTP)
				r.Get("/admin/orders", adminorders.New(logger, s.Admin).ServeHTTP)
				r.Get("/admin/activity", activityfeed.New(logger, s.Activity).ServeHTTP)
			})
		})

		// Служебные конечные точки локальной разработки
		if cfg.Env == "local" {
			r.Post("/dev/seed", devseed.New(logger, s.Seed).ServeHTTP)
			r.Post("/dev/testmail", devtestmail.New(logger, s.Notifier).ServeHTTP)
		}
	})

	// Статика загруженных изображений
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Get("/uploads/*", fs.ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
