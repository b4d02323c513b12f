// Package testmail реализует HTTP-обработчик проверочной отправки письма.
// Маршрут подключается только при env=local.
package testmail

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/laundry-service/internal/http/response"
	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// Request — структура входных данных проверочной отправки.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Handler отвечает за обработку запросов проверочной отправки письма.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	notifier Notifier            // Издатель сообщений в очередь уведомлений
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Notifier публикует сообщение в очередь уведомлений.
type Notifier interface {
	Publish(routingKey string, message any) error
}

// New создает новый Handler с переданными логгером и издателем.
func New(log *slog.Logger, notifier Notifier) *Handler {
	return &Handler{
		log:      log,
		notifier: notifier,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Проверочная отправка письма
// @Description Публикует проверочное сообщение в очередь уведомлений. Доступно только при env=local.
// @Tags Dev
// @Accept  json
// @Produce  json
// @Param request body Request true "Адрес получателя"
// @Success 202 {object} map[string]any "Сообщение опубликовано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dev/testmail [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dev.testmail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.notifier.Publish("test", models.TestMessage{Email: req.Email}); err != nil {
		log.Error("failed to publish test message", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not publish test message"))
		return
	}

	log.Info("success to publish test message", slog.String("email", req.Email))
	w.WriteHeader(http.StatusAccepted)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"queued": true,
	}))
}
