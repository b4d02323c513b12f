// Package seed реализует HTTP-обработчик наполнения базы демо-данными.
// Маршрут подключается только при env=local.
package seed

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/laundry-service/internal/http/response"
	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
)

// Handler отвечает за обработку запросов наполнения демо-данными.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис генерации демо-данных
}

// Service описывает интерфейс генерации демо-данных.
type Service interface {
	Run(ctx context.Context) (int, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Наполнить базу демо-данными
// @Description Создает демо-пользователей и заказы. Доступно только при env=local.
// @Tags Dev
// @Produce  json
// @Success 200 {object} map[string]any "Количество созданных записей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dev/seed [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dev.seed"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, orders, err := h.service.Run(r.Context())
	if err != nil {
		log.Error("failed to seed demo data", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not seed demo data"))
		return
	}

	log.Info("success to seed demo data",
		slog.Int("users", users), slog.Int("orders", orders))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"created_users":  users,
		"created_orders": orders,
	}))
}
