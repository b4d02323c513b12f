package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// CreateOrder вставляет новый заказ и возвращает его ID.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (int, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO orders (user_uid, status, items, total, pickup_date,
			      delivery_date, address, instructions)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		order.UserUID, order.Status, items, order.Total, order.PickupDate,
		order.DeliveryDate, order.Address, order.Instructions).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadOrder возвращает заказ по его ID.
func (s *Storage) ReadOrder(ctx context.Context, id int) (*models.Order, error) {
	const op = "storage.ReadOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, status, items, total, pickup_date,
			      delivery_date, address, instructions, created_at
			  FROM orders WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Order
	var items []byte
	var deliveryDate sql.NullTime
	if err := row.Scan(&result.ID, &result.UserUID, &result.Status, &items,
		&result.Total, &result.PickupDate, &deliveryDate, &result.Address,
		&result.Instructions, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(items, &result.Items); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if deliveryDate.Valid {
		result.DeliveryDate = &deliveryDate.Time
	}
	return &result, nil
}

// ListOrders возвращает список заказов пользователя с пагинацией,
// новые заказы первыми.
func (s *Storage) ListOrders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, error) {
	const op = "storage.ListOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, status, items, total, pickup_date,
			      delivery_date, address, instructions, created_at
			  FROM orders
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		var item models.Order
		var items []byte
		var deliveryDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Status, &items,
			&item.Total, &item.PickupDate, &deliveryDate, &item.Address,
			&item.Instructions, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(items, &item.Items); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if deliveryDate.Valid {
			item.DeliveryDate = &deliveryDate.Time
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllOrders возвращает все заказы с данными владельцев для админки.
func (s *Storage) ListAllOrders(ctx context.Context, limit, offset int) ([]*models.OrderInfo, error) {
	const op = "storage.ListAllOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT o.id, o.user_uid, o.status, o.items, o.total, o.pickup_date,
			      o.delivery_date, o.address, o.instructions, o.created_at,
			      u.name, u.email
			  FROM orders o
			  JOIN users u ON o.user_uid = u.uid
			  ORDER BY o.created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.OrderInfo
	for rows.Next() {
		var item models.OrderInfo
		var items []byte
		var deliveryDate sql.NullTime
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Status, &items,
			&item.Total, &item.PickupDate, &deliveryDate, &item.Address,
			&item.Instructions, &item.CreatedAt, &item.UserName, &item.UserEmail); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(items, &item.Items); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if deliveryDate.Valid {
			item.DeliveryDate = &deliveryDate.Time
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateOrderStatus записывает новый статус заказа и возвращает
// количество изменённых строк.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateOrderStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
