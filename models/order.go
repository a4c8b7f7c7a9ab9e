package models

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// Order is an immutable snapshot of a submitted cart.
// Timestamp is Unix milliseconds at submission.
type Order struct {
	ID         string     `json:"id"`
	Items      []CartItem `json:"items"`
	TotalPrice int64      `json:"totalPrice"`
	Timestamp  int64      `json:"timestamp"`
	Status     string     `json:"status"`
}

// AppView is the screen a chat session is on.
type AppView string

const (
	ViewCustomer       AppView = "customer"
	ViewAdminLogin     AppView = "admin-login"
	ViewAdminDashboard AppView = "admin-dashboard"
)

// OrderEvent is published to the kitchen exchange when the order queue changes.
type OrderEvent struct {
	Type       string     `json:"type"` // order.submitted | order.completed | order.deleted
	OrderID    string     `json:"order_id"`
	Items      []CartItem `json:"items,omitempty"`
	TotalPrice int64      `json:"total_price,omitempty"`
	Timestamp  int64      `json:"timestamp"`
}

const (
	EventOrderSubmitted = "order.submitted"
	EventOrderCompleted = "order.completed"
	EventOrderDeleted   = "order.deleted"
)
