package models

// AdminStats — сводные показатели для панели администратора.
// Значения пересчитываются на момент запроса, инкрементально не ведутся.
type AdminStats struct {
	TotalOrders         int `json:"total_orders"`
	PendingOrders       int `json:"pending_orders"`
	ActiveCustomers     int `json:"active_customers"`
	CompletedRevenue    int `json:"completed_revenue"`
	ActiveSubscriptions int `json:"active_subscriptions"`
	MonthSubscriptions  int `json:"month_subscriptions"`
	MonthSubscRevenue   int `json:"month_subscriptions_revenue"`
}

// CustomerStat — количество заказов и траты одного клиента.
type CustomerStat struct {
	UserUID     string `json:"user_uid"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	OrdersCount int    `json:"orders_count"`
	TotalSpend  int    `json:"total_spend"`
}
