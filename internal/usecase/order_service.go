package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/Gunvolt24/pos_orders/internal/ports"
	"github.com/Gunvolt24/pos_orders/pkg/metrics"
	"github.com/Gunvolt24/pos_orders/pkg/validate"
	"github.com/google/uuid"
)

// Проверка, что OrderService удовлетворяет порту, который использует транспорт.
var _ ports.OrderService = (*OrderService)(nil)

// OrderService: прикладная логика работы с заказами (без знаний о транспорте).
type OrderService struct {
	repo      ports.OrderRepository // хранилище заказов
	backups   ports.BackupMaker     // снимки документа
	publisher ports.EventPublisher  // события по заказам (может быть no-op)
	log       ports.Logger
	validator ports.OrderValidator

	now   func() time.Time
	newID func() string
}

// NewOrderService: DI-конструктор.
func NewOrderService(
	repo ports.OrderRepository,
	backups ports.BackupMaker,
	publisher ports.EventPublisher,
	log ports.Logger,
	validator ports.OrderValidator,
) *OrderService {
	return &OrderService{
		repo:      repo,
		backups:   backups,
		publisher: publisher,
		log:       log,
		validator: validator,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// CreateOrder: валидирует запрос, присваивает id заказу и позициям, считает сумму,
// сохраняет заказ и публикует order.created.
// Ошибка валидации оборачивает validate.ErrInvalidOrder.
func (s *OrderService) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		s.log.Warnf(ctx, "create order rejected: %v", err)
		return nil, err
	}

	items := req.OrderItems()
	for i := range items {
		items[i].ID = s.newID()
	}

	order := &domain.Order{
		ID:         s.newID(),
		Items:      items,
		TotalPrice: domain.CalcTotal(items),
		Timestamp:  domain.FormatTimestamp(s.now()),
		Status:     domain.StatusPending,
	}

	// Сумма, которую нельзя сохранить в JSON, не должна попасть в документ.
	if !domain.ValidAmount(order.TotalPrice) {
		err := fmt.Errorf("%w: Order total is too large", validate.ErrInvalidOrder)
		s.log.Warnf(ctx, "create order rejected: %v", err)
		return nil, err
	}

	if err := s.repo.AddOrder(ctx, order); err != nil {
		s.log.Errorf(ctx, "repo.AddOrder failed order_id=%s err=%v", order.ID, err)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	s.log.Infof(ctx, "order created id=%s items=%d total=%.2f", order.ID, len(order.Items), order.TotalPrice)

	s.publish(ctx, domain.OrderEvent{
		Type:       domain.EventOrderCreated,
		OrderID:    order.ID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
	})
	return order, nil
}

// ListOrders: выборка для админки: период → статус → поиск по названию позиции,
// сортировка по времени (новые первыми), затем limit/offset. Вместе со списком: текущая статистика.
func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, domain.Stats, error) {
	var (
		orders []domain.Order
		err    error
	)

	if filter.DateRange != "" {
		now := s.now()
		orders, err = s.repo.GetOrdersByDateRange(ctx, filter.DateRange.Start(now), now)
		if err == nil {
			domain.SortByTimestampDesc(orders)
		}
	} else {
		orders, err = s.repo.GetAllOrders(ctx)
	}
	if err != nil {
		s.log.Errorf(ctx, "list orders failed filter=%+v err=%v", filter, err)
		return nil, domain.Stats{}, err
	}

	orders = applyFilter(orders, filter)

	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetStats failed err=%v", err)
		return nil, domain.Stats{}, err
	}
	return orders, stats, nil
}

// GetOrder: заказ по id. Возвращает (*Order, nil) или (nil, nil), если записи нет.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, found, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetOrderByID failed id=%s err=%v", id, err)
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &order, nil
}

// UpdateStatus: смена статуса без ограничений на переход.
// domain.ErrOrderNotFound, если заказа нет; validate.ErrInvalidOrder для неизвестного статуса.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if _, err := validate.ParseStatus(string(status)); err != nil {
		return err
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		s.log.Errorf(ctx, "repo.UpdateOrderStatus failed id=%s err=%v", id, err)
		return err
	}
	if !updated {
		return domain.ErrOrderNotFound
	}

	metrics.OrderStatusUpdates.WithLabelValues(string(status)).Inc()
	s.log.Infof(ctx, "order status updated id=%s status=%s", id, status)

	s.publish(ctx, domain.OrderEvent{Type: domain.EventOrderStatusChanged, OrderID: id, Status: status})
	return nil
}

// DeleteOrder: удаление заказа; domain.ErrOrderNotFound, если удалять нечего.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	removed, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.DeleteOrder failed id=%s err=%v", id, err)
		return err
	}
	if !removed {
		return domain.ErrOrderNotFound
	}

	s.log.Infof(ctx, "order deleted id=%s", id)
	s.publish(ctx, domain.OrderEvent{Type: domain.EventOrderDeleted, OrderID: id})
	return nil
}

// Stats: агрегированная статистика.
func (s *OrderService) Stats(ctx context.Context) (domain.Stats, error) {
	st, err := s.repo.GetStats(ctx)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetStats failed err=%v", err)
		return domain.Stats{}, err
	}
	return st, nil
}

// Backup: снимок документа в отдельный файл.
func (s *OrderService) Backup(ctx context.Context) (string, error) {
	if s.backups == nil {
		return "", errors.New("backups are not configured")
	}
	path, err := s.backups.Backup()
	if err != nil {
		s.log.Errorf(ctx, "backup failed err=%v", err)
		return "", err
	}
	s.log.Infof(ctx, "backup created path=%s", path)
	return path, nil
}

// publish: best-effort: заказ уже сохранён, ошибка брокера только логируется.
func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	event.OccurredAt = domain.FormatTimestamp(s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warnf(ctx, "publish %s failed order_id=%s err=%v", event.Type, event.OrderID, err)
	}
}

// applyFilter: статус и поиск по названию, затем пагинация. Порядок входа сохраняется.
func applyFilter(orders []domain.Order, filter domain.OrderFilter) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for i := range orders {
		if filter.Status != "" && orders[i].Status != filter.Status {
			continue
		}
		if filter.Search != "" && !orders[i].HasItemLike(filter.Search) {
			continue
		}
		out = append(out, orders[i])
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []domain.Order{}
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}
