package validate

import "github.com/Gunvolt24/pos_orders/internal/domain"

// OrderPreview: то, что сервер сохранил бы для запроса (без id и timestamp).
type OrderPreview struct {
	Items      []domain.OrderItem `json:"items"`
	TotalPrice float64            `json:"totalPrice"`
}

// Preview: позиции и итоговая сумма провалидированного запроса.
func Preview(req *domain.CreateOrderRequest) OrderPreview {
	items := req.OrderItems()
	return OrderPreview{Items: items, TotalPrice: domain.CalcTotal(items)}
}
