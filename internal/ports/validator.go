package ports

import (
	"context"

	"github.com/Gunvolt24/pos_orders/internal/domain"
)

// OrderValidator: проверка запроса на создание заказа.
type OrderValidator interface {
	Validate(ctx context.Context, req *domain.CreateOrderRequest) error
}
