// Package stats реализует HTTP-обработчик сводных показателей панели
// администратора. Показатели пересчитываются по базе на каждый запрос.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/laundry-service/internal/http/response"
	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// Handler отвечает за обработку запросов сводных показателей.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики панели администратора
}

// Service описывает интерфейс бизнес-логики сводных показателей.
type Service interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводные показатели
// @Description Возвращает сводные показатели по заказам и абонементам. Только для администратора.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Сводные показатели"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to get admin stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get stats"))
		return
	}

	log.Info("success to get admin stats")
	render.JSON(w, r, response.OKWithData(stats))
}
