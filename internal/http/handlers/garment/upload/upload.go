// Package upload реализует HTTP-обработчик загрузки изображения вещи.
//
// Handler принимает multipart-форму с файлом image, проверяет владельца
// и расширение файла, делегирует сохранение сервису и возвращает путь,
// по которому изображение доступно через /uploads/.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/laundry-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/laundry-service/internal/http/response"
	"github.com/magabrotheeeer/laundry-service/internal/lib/policy"
	"github.com/magabrotheeeer/laundry-service/internal/lib/sl"
	"github.com/magabrotheeeer/laundry-service/internal/models"
	"github.com/magabrotheeeer/laundry-service/internal/storage/repository"
)

// maxUploadSize — предел размера загружаемого изображения.
const maxUploadSize = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Handler отвечает за обработку запросов загрузки изображения вещи.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики гардероба
}

// Service описывает интерфейс бизнес-логики сохранения изображения.
type Service interface {
	Read(ctx context.Context, id int) (*models.Garment, error)
	SaveImage(ctx context.Context, id int, ext string, src io.Reader) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Загрузить изображение вещи
// @Description Принимает multipart-форму с полем image и сохраняет изображение вещи.
// @Tags Garments
// @Accept  mpfd
// @Produce  json
// @Param id path int true "ID вещи"
// @Param image formData file true "Файл изображения (jpg, jpeg, png, webp)"
// @Success 200 {object} map[string]any "Путь к изображению"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID, форма или расширение"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет доступа к чужой вещи"
// @Failure 404 {object} response.ErrorResponse "Вещь не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /garments/{id}/image [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.garment.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	garment, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("garment not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("garment not found"))
			return
		}
		log.Error("failed to read garment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not upload image"))
		return
	}

	role, _ := r.Context().Value(middlewarectx.Role).(string)
	if !policy.CanAccess(role, userUID, garment.UserUID) {
		log.Error("access to foreign garment denied")
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Error("failed to read image file from form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("image file is required"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		log.Error("unsupported image extension", slog.String("ext", ext))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unsupported image extension"))
		return
	}

	imagePath, err := h.service.SaveImage(r.Context(), id, ext, file)
	if err != nil {
		log.Error("failed to save image", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save image"))
		return
	}

	log.Info("success to upload image", slog.Int("id", id), slog.String("path", imagePath))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"image_path": imagePath,
	}))
}
