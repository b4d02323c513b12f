// Package customers реализует HTTP-обработчик списка клиентов с агрегатами
// по заказам для панели администратора.
package customers

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

// Handler отвечает за обработку запросов списка клиентов.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики панели администратора
}

// Service описывает интерфейс бизнес-логики списка клиентов.
type Service interface {
	Customers(ctx context.Context) ([]*models.CustomerStat, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Возвращает клиентов с количеством заказов и суммой трат. Только для администратора.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список клиентов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/customers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.customers"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	customers, err := h.service.Customers(r.Context())
	if err != nil {
		log.Error("failed to list customers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list customers"))
		return
	}

	log.Info("success to list customers", slog.Int("count", len(customers)))
	render.JSON(w, r, response.OKWithData(customers))
}
