// Package orders реализует HTTP-обработчик списка заказов всех
// пользователей для панели администратора.
package orders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	orderlist "github.com/magabrotheeeer/laundry-service/internal/http/handlers/order/list"
	"github.com/magabrotheeeer/laundry-service/internal/http/response"
	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// Handler отвечает за обработку запросов списка всех заказов.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики панели администратора
}

// Service описывает интерфейс бизнес-логики списка всех заказов.
type Service interface {
	Orders(ctx context.Context, limit, offset int) ([]*models.OrderInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список всех заказов
// @Description Возвращает заказы всех пользователей с данными владельца. Только для администратора.
// @Tags Admin
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение от начала списка"
// @Success 200 {object} map[string]any "Список заказов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль admin"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.orders"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := orderlist.ParsePagination(r)

	ordersList, err := h.service.Orders(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list all orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list orders"))
		return
	}

	log.Info("success to list all orders", slog.Int("count", len(ordersList)))
	render.JSON(w, r, response.OKWithData(ordersList))
}
