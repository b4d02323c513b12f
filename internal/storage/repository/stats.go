package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/laundry-service/internal/models"
)

// GetAdminStats пересчитывает сводные показатели панели администратора.
func (s *Storage) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	const op = "storage.GetAdminStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM orders),
			      (SELECT COUNT(*) FROM orders WHERE status <> 'completed'),
			      (SELECT COUNT(DISTINCT user_uid) FROM orders),
			      (SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'completed'),
			      (SELECT COUNT(*) FROM subscriptions WHERE status = 'active'),
			      (SELECT COUNT(*) FROM subscriptions
			          WHERE start_date >= date_trunc('month', CURRENT_DATE)),
			      (SELECT COALESCE(SUM(price), 0) FROM subscriptions
			          WHERE start_date >= date_trunc('month', CURRENT_DATE))`
	var stats models.AdminStats
	row := s.DB.QueryRowContext(ctx, query)
	if err := row.Scan(&stats.TotalOrders, &stats.PendingOrders,
		&stats.ActiveCustomers, &stats.CompletedRevenue,
		&stats.ActiveSubscriptions, &stats.MonthSubscriptions,
		&stats.MonthSubscRevenue); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}

// ListCustomerStats возвращает количество заказов и траты по каждому клиенту.
func (s *Storage) ListCustomerStats(ctx context.Context) ([]*models.CustomerStat, error) {
	const op = "storage.ListCustomerStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.name, u.email,
			      COUNT(o.id), COALESCE(SUM(o.total), 0)
			  FROM users u
			  LEFT JOIN orders o ON o.user_uid = u.uid
			  WHERE u.role = 'user'
			  GROUP BY u.uid, u.name, u.email
			  ORDER BY COUNT(o.id) DESC, u.name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CustomerStat
	for rows.Next() {
		var item models.CustomerStat
		if err := rows.Scan(&item.UserUID, &item.Name, &item.Email,
			&item.OrdersCount, &item.TotalSpend); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
