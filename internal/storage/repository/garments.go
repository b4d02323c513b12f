package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// CreateGarment вставляет новую вещь и возвращает её ID.
func (s *Storage) CreateGarment(ctx context.Context, garment models.Garment) (int, error) {
	const op = "storage.CreateGarment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO garments (user_uid, category, material, condition,
			      clean_count, last_cleaned, image_path)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		garment.UserUID, garment.Category, garment.Material, garment.Condition,
		garment.CleanCount, garment.LastCleaned, garment.ImagePath).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadGarment возвращает вещь по её ID.
func (s *Storage) ReadGarment(ctx context.Context, id int) (*models.Garment, error) {
	const op = "storage.ReadGarment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, category, material, condition, clean_count,
			      last_cleaned, image_path, created_at
			  FROM garments WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Garment
	var lastCleaned sql.NullTime
	if err := row.Scan(&result.ID, &result.UserUID, &result.Category,
		&result.Material, &result.Condition, &result.CleanCount, &lastCleaned,
		&result.ImagePath, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lastCleaned.Valid {
		result.LastCleaned = &lastCleaned.Time
	}
	return &result, nil
}

// ListGarments возвращает все вещи пользователя.
func (s *Storage) ListGarments(ctx context.Context, userUID string) ([]*models.Garment, error) {
	const op = "storage.ListGarments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, category, material, condition, clean_count,
			      last_cleaned, image_path, created_at
			  FROM garments
			  WHERE user_uid = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Garment
	for rows.Next() {
		var item models.Garment
		var lastCleaned sql.NullTime
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Category,
			&item.Material, &item.Condition, &item.CleanCount, &lastCleaned,
			&item.ImagePath, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if lastCleaned.Valid {
			item.LastCleaned = &lastCleaned.Time
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateGarment обновляет описательные поля вещи и возвращает
// количество изменённых строк.
func (s *Storage) UpdateGarment(ctx context.Context, garment models.Garment, id int) (int, error) {
	const op = "storage.UpdateGarment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE garments
			  SET category = $1, material = $2, condition = $3, clean_count = $4,
			      last_cleaned = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		garment.Category, garment.Material, garment.Condition,
		garment.CleanCount, garment.LastCleaned, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateGarmentImage сохраняет путь к загруженному изображению вещи.
func (s *Storage) UpdateGarmentImage(ctx context.Context, id int, imagePath string) (int, error) {
	const op = "storage.UpdateGarmentImage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE garments SET image_path = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, imagePath, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveGarment удаляет вещь по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveGarment(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveGarment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM garments WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
