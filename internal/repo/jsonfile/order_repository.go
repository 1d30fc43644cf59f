package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/Gunvolt24/pos_orders/internal/ports"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository: CRUD над коллекцией orders документа.
// Все изменения идут через Store.Update; наружу отдаются копии заказов.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository: конструктор OrderRepository.
func NewOrderRepository(store *Store) *OrderRepository { return &OrderRepository{store: store} }

// AddOrder: добавляет заказ в начало коллекции. Уникальность id не проверяется.
func (r *OrderRepository) AddOrder(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("add order: order is nil")
	}
	stored := order.Clone()

	err := r.store.Update(func(doc *domain.Document) (bool, error) {
		doc.Orders = append([]domain.Order{stored}, doc.Orders...)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("add order id=%s: %w", order.ID, err)
	}
	return nil
}

// GetAllOrders: копия коллекции, отсортированная по timestamp (новые первыми).
func (r *OrderRepository) GetAllOrders(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.store.View(func(doc *domain.Document) error {
		out = cloneOrders(doc.Orders, nil)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get all orders: %w", err)
	}

	domain.SortByTimestampDesc(out)
	return out, nil
}

// GetOrderByID: линейный поиск; found=false, если заказа нет.
func (r *OrderRepository) GetOrderByID(_ context.Context, id string) (domain.Order, bool, error) {
	var (
		found domain.Order
		ok    bool
	)
	err := r.store.View(func(doc *domain.Document) error {
		if i := indexByID(doc.Orders, id); i >= 0 {
			found, ok = doc.Orders[i].Clone(), true
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("get order id=%s: %w", id, err)
	}
	return found, ok, nil
}

// GetOrdersByDateRange: заказы с timestamp в [start, end] (обе границы включительно).
// Порядок: как в документе.
func (r *OrderRepository) GetOrdersByDateRange(_ context.Context, start, end time.Time) ([]domain.Order, error) {
	var out []domain.Order
	err := r.store.View(func(doc *domain.Document) error {
		out = cloneOrders(doc.Orders, func(o *domain.Order) bool {
			ts := o.Time()
			return !ts.Before(start) && !ts.After(end)
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get orders by date range: %w", err)
	}
	return out, nil
}

// UpdateOrderStatus: меняет только status. false без записи на диск, если заказа нет.
func (r *OrderRepository) UpdateOrderStatus(_ context.Context, id string, status domain.Status) (bool, error) {
	updated := false
	err := r.store.Update(func(doc *domain.Document) (bool, error) {
		i := indexByID(doc.Orders, id)
		if i < 0 {
			return false, nil
		}
		doc.Orders[i].Status = status
		updated = true
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("update order status id=%s: %w", id, err)
	}
	return updated, nil
}

// DeleteOrder: удаляет заказ(ы) с данным id; true, если что-то удалено.
func (r *OrderRepository) DeleteOrder(_ context.Context, id string) (bool, error) {
	removed := false
	err := r.store.Update(func(doc *domain.Document) (bool, error) {
		kept := doc.Orders[:0:0]
		for i := range doc.Orders {
			if doc.Orders[i].ID == id {
				continue
			}
			kept = append(kept, doc.Orders[i])
		}
		if len(kept) == len(doc.Orders) {
			return false, nil
		}
		doc.Orders = kept
		removed = true
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("delete order id=%s: %w", id, err)
	}
	return removed, nil
}

// Clear: очищает коллекцию (сброс данных, тесты).
func (r *OrderRepository) Clear(_ context.Context) error {
	err := r.store.Update(func(doc *domain.Document) (bool, error) {
		doc.Orders = []domain.Order{}
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}
	return nil
}

// Count: количество заказов в документе.
func (r *OrderRepository) Count(_ context.Context) (int, error) {
	n := 0
	err := r.store.View(func(doc *domain.Document) error {
		n = len(doc.Orders)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// GetStats: делегирует Store.ComputeStats.
func (r *OrderRepository) GetStats(_ context.Context) (domain.Stats, error) {
	st, err := r.store.ComputeStats()
	if err != nil {
		return domain.Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

func indexByID(orders []domain.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneOrders: глубокие копии заказов, удовлетворяющих keep (nil: все).
func cloneOrders(orders []domain.Order, keep func(*domain.Order) bool) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for i := range orders {
		if keep != nil && !keep(&orders[i]) {
			continue
		}
		out = append(out, orders[i].Clone())
	}
	return out
}
