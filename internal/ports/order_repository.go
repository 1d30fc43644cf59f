package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
)

// OrderRepository: CRUD и запросы над коллекцией заказов.
// Методы с признаком found/removed не возвращают ошибку для отсутствующего id.
type OrderRepository interface {
	AddOrder(ctx context.Context, order *domain.Order) error
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (domain.Order, bool, error)
	GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.Status) (bool, error)
	DeleteOrder(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	GetStats(ctx context.Context) (domain.Stats, error)
}

// BackupMaker: снимок документа в отдельный файл.
type BackupMaker interface {
	Backup() (string, error)
}
