package models

import "time"

// Order представляет заказ на стирку, принадлежащий одному пользователю.
// Список позиций фиксируется при создании и далее не меняется,
// статус меняется только действиями администратора.
type Order struct {
	ID           int        `json:"id"`
	UserUID      string     `json:"user_uid"`
	Status       string     `json:"status"`
	Items        []string   `json:"items"`
	Total        int        `json:"total"`
	PickupDate   time.Time  `json:"pickup_date"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	Address      string     `json:"address"`
	Instructions string     `json:"instructions,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Статусы заказа в порядке прохождения.
const (
	StatusPickupScheduled = "pickup_scheduled"
	StatusPickedUp        = "picked_up"
	StatusWashing         = "washing"
	StatusReady           = "ready"
	StatusOutForDelivery  = "out_for_delivery"
	StatusCompleted       = "completed"
)

// OrderStatuses содержит статусы в порядке прохождения заказа.
// Администратор может выставить любой известный статус, последовательность
// не навязывается: это даёт возможность ручной корректировки.
var OrderStatuses = []string{
	StatusPickupScheduled,
	StatusPickedUp,
	StatusWashing,
	StatusReady,
	StatusOutForDelivery,
	StatusCompleted,
}

// KnownOrderStatus проверяет, что статус входит в список известных.
func KnownOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// DummyOrder используется для приёма данных нового заказа из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся на уровне сервиса.
type DummyOrder struct {
	Items        []string `json:"items" validate:"required,min=1,dive,required"`
	Total        int      `json:"total" validate:"required,gt=0"`
	PickupDate   string   `json:"pickup_date" validate:"required"`
	DeliveryDate string   `json:"delivery_date" validate:"omitempty"`
	Address      string   `json:"address" validate:"required,max=300"`
	Instructions string   `json:"instructions" validate:"omitempty,max=500"`
}

// DummyStatusUpdate используется для приёма нового статуса заказа.
type DummyStatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// OrderInfo объединяет заказ с данными владельца для админских списков.
type OrderInfo struct {
	Order
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
