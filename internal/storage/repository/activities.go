package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// CreateActivity добавляет запись в ленту активности и возвращает её ID.
// Записи после вставки не изменяются и не удаляются приложением.
func (s *Storage) CreateActivity(ctx context.Context, activity models.Activity) (int, error) {
	const op = "storage.CreateActivity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var userUID any
	if activity.UserUID != "" {
		userUID = activity.UserUID
	}

	query := `INSERT INTO activities (type, message, user_uid, order_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		activity.Type, activity.Message, userUID, activity.OrderID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListActivities возвращает последние записи активности с отображаемыми
// именами пользователей, новые первыми.
func (s *Storage) ListActivities(ctx context.Context, limit int) ([]*models.ActivityInfo, error) {
	const op = "storage.ListActivities"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.type, a.message, a.user_uid, a.order_id,
			      a.created_at, u.name
			  FROM activities a
			  LEFT JOIN users u ON a.user_uid = u.uid
			  ORDER BY a.created_at DESC, a.id DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ActivityInfo
	for rows.Next() {
		var item models.ActivityInfo
		var userUID, userName sql.NullString
		var orderID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.Type, &item.Message, &userUID,
			&orderID, &item.CreatedAt, &userName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userUID.Valid {
			item.UserUID = userUID.String
		}
		if userName.Valid {
			item.UserName = userName.String
		}
		if orderID.Valid {
			id := int(orderID.Int64)
			item.OrderID = &id
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
