package domain

// EventType: тип события по заказу.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderDeleted       EventType = "order.deleted"
)

// OrderEvent: сообщение, публикуемое после успешного изменения заказа.
type OrderEvent struct {
	Type       EventType `json:"type"`
	OrderID    string    `json:"orderId"`
	Status     Status    `json:"status,omitempty"`
	TotalPrice float64   `json:"totalPrice,omitempty"`
	OccurredAt string    `json:"occurredAt"`
}
