// Package services содержит бизнес-логику инвентаря вещей пользователя.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// GarmentRepository определяет методы для работы с вещами в хранилище.
type GarmentRepository interface {
	// CreateGarment добавляет новую вещь и возвращает её ID.
	CreateGarment(ctx context.Context, garment models.Garment) (int, error)
	// ReadGarment возвращает вещь по ID или ErrNotFound.
	ReadGarment(ctx context.Context, id int) (*models.Garment, error)
	// ListGarments возвращает все вещи пользователя.
	ListGarments(ctx context.Context, userUID string) ([]*models.Garment, error)
	// UpdateGarment обновляет описательные поля вещи.
	UpdateGarment(ctx context.Context, garment models.Garment, id int) (int, error)
	// UpdateGarmentImage сохраняет путь к изображению.
	UpdateGarmentImage(ctx context.Context, id int, imagePath string) (int, error)
	// RemoveGarment удаляет вещь по ID.
	RemoveGarment(ctx context.Context, id int) (int, error)
}

// GarmentService реализует CRUD инвентаря и сохранение изображений на диск.
type GarmentService struct {
	repo       GarmentRepository
	uploadsDir string
	log        *slog.Logger
}

// NewGarmentService создает новый экземпляр GarmentService.
func NewGarmentService(repo GarmentRepository, uploadsDir string, log *slog.Logger) *GarmentService {
	return &GarmentService{
		repo:       repo,
		uploadsDir: uploadsDir,
		log:        log,
	}
}

func parseLastCleaned(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid last cleaned date: %w", err)
	}
	return &d, nil
}

// Create добавляет вещь в гардероб пользователя.
func (s *GarmentService) Create(ctx context.Context, userUID string, req models.DummyGarment) (int, error) {
	lastCleaned, err := parseLastCleaned(req.LastCleaned)
	if err != nil {
		return 0, err
	}

	garment := models.Garment{
		UserUID:     userUID,
		Category:    req.Category,
		Material:    req.Material,
		Condition:   req.Condition,
		CleanCount:  req.CleanCount,
		LastCleaned: lastCleaned,
	}
	id, err := s.repo.CreateGarment(ctx, garment)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new garment", slog.Int("id", id))
	return id, nil
}

// Read возвращает вещь по ID.
func (s *GarmentService) Read(ctx context.Context, id int) (*models.Garment, error) {
	return s.repo.ReadGarment(ctx, id)
}

// List возвращает все вещи пользователя.
func (s *GarmentService) List(ctx context.Context, userUID string) ([]*models.Garment, error) {
	return s.repo.ListGarments(ctx, userUID)
}

// Update обновляет описательные поля вещи.
func (s *GarmentService) Update(ctx context.Context, id int, req models.DummyGarment) (int, error) {
	lastCleaned, err := parseLastCleaned(req.LastCleaned)
	if err != nil {
		return 0, err
	}

	garment := models.Garment{
		Category:    req.Category,
		Material:    req.Material,
		Condition:   req.Condition,
		CleanCount:  req.CleanCount,
		LastCleaned: lastCleaned,
	}
	return s.repo.UpdateGarment(ctx, garment, id)
}

// Remove удаляет вещь по ID.
func (s *GarmentService) Remove(ctx context.Context, id int) (int, error) {
	return s.repo.RemoveGarment(ctx, id)
}

// SaveImage сохраняет загруженное изображение в каталог uploads под
// случайным именем и записывает путь в карточку вещи.
func (s *GarmentService) SaveImage(ctx context.Context, id int, ext string, src io.Reader) (string, error) {
	const op = "garment.SaveImage"

	filename := uuid.New().String() + ext
	fullPath := filepath.Join(s.uploadsDir, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	imagePath := "/uploads/" + filename
	if _, err := s.repo.UpdateGarmentImage(ctx, id, imagePath); err != nil {
		_ = os.Remove(fullPath)
		return "", err
	}
	s.log.Info("saved garment image", slog.Int("id", id), slog.String("path", imagePath))
	return imagePath, nil
}
