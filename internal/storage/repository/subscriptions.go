package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// CreateSubscription вставляет новый абонемент и возвращает его ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, plan, status, price,
			      weight_allowed, weight_used, pickups_allowed, pickups_used,
			      start_date, end_date, auto_renew, card_last4, card_expiry)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.Plan, sub.Status, sub.Price,
		sub.WeightAllowed, sub.WeightUsed, sub.PickupsAllowed, sub.PickupsUsed,
		sub.StartDate, sub.EndDate, sub.AutoRenew, sub.CardLast4, sub.CardExpiry).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CancelActiveSubscriptions переводит все активные абонементы пользователя
// в статус cancelled и возвращает количество изменённых строк.
func (s *Storage) CancelActiveSubscriptions(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CancelActiveSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = 'cancelled', auto_renew = false
			  WHERE user_uid = $1 AND status = 'active'`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetActiveSubscription возвращает активный абонемент пользователя.
func (s *Storage) GetActiveSubscription(ctx context.Context, userUID string) (*models.Subscription, error) {
	const op = "storage.GetActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan, status, price, weight_allowed,
			      weight_used, pickups_allowed, pickups_used, start_date,
			      end_date, auto_renew, card_last4, card_expiry
			  FROM subscriptions
			  WHERE user_uid = $1 AND status = 'active'
			  ORDER BY id DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var result models.Subscription
	if err := row.Scan(&result.ID, &result.UserUID, &result.Plan, &result.Status,
		&result.Price, &result.WeightAllowed, &result.WeightUsed,
		&result.PickupsAllowed, &result.PickupsUsed, &result.StartDate,
		&result.EndDate, &result.AutoRenew, &result.CardLast4, &result.CardExpiry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateSubscriptionUsage записывает счётчики использования активного
// абонемента пользователя и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscriptionUsage(ctx context.Context, userUID string, pickupsUsed, weightUsed int) (int, error) {
	const op = "storage.UpdateSubscriptionUsage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET pickups_used = LEAST($1, pickups_allowed),
			      weight_used = LEAST($2, weight_allowed)
			  WHERE user_uid = $3 AND status = 'active'`
	result, err := s.DB.ExecContext(ctx, query, pickupsUsed, weightUsed, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptions возвращает все абонементы пользователя, новые первыми.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan, status, price, weight_allowed,
			      weight_used, pickups_allowed, pickups_used, start_date,
			      end_date, auto_renew, card_last4, card_expiry
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Plan, &item.Status,
			&item.Price, &item.WeightAllowed, &item.WeightUsed,
			&item.PickupsAllowed, &item.PickupsUsed, &item.StartDate,
			&item.EndDate, &item.AutoRenew, &item.CardLast4, &item.CardExpiry); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
