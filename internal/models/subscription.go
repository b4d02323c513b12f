package models

import "time"

// Subscription представляет абонемент пользователя на стирку.
// У пользователя одновременно может быть не больше одного активного
// абонемента: при оформлении нового прежние активные переводятся в cancelled.
type Subscription struct {
	ID             int       `json:"id"`
	UserUID        string    `json:"user_uid"`
	Plan           string    `json:"plan"`
	Status         string    `json:"status"`
	Price          int       `json:"price"`
	WeightAllowed  int       `json:"weight_allowed"`
	WeightUsed     int       `json:"weight_used"`
	PickupsAllowed int       `json:"pickups_allowed"`
	PickupsUsed    int       `json:"pickups_used"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	AutoRenew      bool      `json:"auto_renew"`
	CardLast4      string    `json:"card_last4,omitempty"`
	CardExpiry     string    `json:"card_expiry,omitempty"`
}

// Статусы абонемента.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Plan описывает тариф из серверного каталога. Цена и лимиты берутся
// только отсюда, клиентским значениям не доверяем.
type Plan struct {
	Name           string `json:"name"`
	Price          int    `json:"price"`
	WeightAllowed  int    `json:"weight_allowed"`
	PickupsAllowed int    `json:"pickups_allowed"`
}

// DummySubscription используется для приёма данных оформления абонемента.
// Карта передаётся только нечувствительной сводкой: последние 4 цифры и срок.
type DummySubscription struct {
	Plan       string `json:"plan" validate:"required"`
	AutoRenew  bool   `json:"auto_renew"`
	CardLast4  string `json:"card_last4" validate:"omitempty,len=4,numeric"`
	CardExpiry string `json:"card_expiry" validate:"omitempty,max=7"`
}

// DummyUsage используется для приёма отчёта об использовании абонемента.
// Значения абсолютные, отрицательные отклоняются на границе.
type DummyUsage struct {
	PickupsUsed int `json:"pickups_used" validate:"gte=0"`
	WeightUsed  int `json:"weight_used" validate:"gte=0"`
}
