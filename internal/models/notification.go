package models

// WelcomeMessage — сообщение очереди notifications.welcome,
// публикуется при регистрации нового пользователя.
type WelcomeMessage struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrderStatusMessage — сообщение очереди notifications.order_status,
// публикуется при смене статуса заказа администратором.
type OrderStatusMessage struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	OrderID int    `json:"order_id"`
	Status  string `json:"status"`
}

// TestMessage — сообщение для проверочной отправки почты из dev-группы.
type TestMessage struct {
	Email string `json:"email"`
}
