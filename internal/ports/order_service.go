package ports

import (
	"context"

	"github.com/Gunvolt24/pos_orders/internal/domain"
)

// OrderService: прикладные операции над заказами, которые нужны транспорту.
type OrderService interface {
	CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, domain.Stats, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	DeleteOrder(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.Stats, error)
	Backup(ctx context.Context) (string, error)
}
