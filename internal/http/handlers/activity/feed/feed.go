// Package feed реализует HTTP-обработчик ленты активности для панели
// администратора.
package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/laundry-service/internal/http/response"
	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// Handler отвечает за обработку запросов ленты активности.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики ленты активности
}

// Service описывает интерфейс бизнес-логики ленты активности.
type Service interface {
	Feed(ctx context.Context, limit int) ([]*models.ActivityInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лента активности
// @Description Возвращает последние события сервиса, новые первыми. Только для администратора.
// @Tags Admin
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Success 200 {object} map[string]any "Лента активности"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/activity [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activity.feed"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	activities, err := h.service.Feed(r.Context(), limit)
	if err != nil {
		log.Error("failed to get activity feed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get activity feed"))
		return
	}

	log.Info("success to get activity feed", slog.Int("count", len(activities)))
	render.JSON(w, r, response.OKWithData(activities))
}
