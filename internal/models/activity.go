package models

import "time"

// Activity представляет запись ленты активности. Записи создаются как
// побочный эффект других операций и после записи не изменяются.
type Activity struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	UserUID   string    `json:"user_uid,omitempty"`
	OrderID   *int      `json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Типы записей активности.
const (
	ActivityNewUser      = "new_user"
	ActivityNewOrder     = "new_order"
	ActivityStatusUpdate = "status_update"
)

// ActivityInfo объединяет запись активности с отображаемым именем
// пользователя для админской ленты.
type ActivityInfo struct {
	Activity
	UserName string `json:"user_name,omitempty"`
}
