package ports

import (
	"context"

	"github.com/Gunvolt24/pos_orders/internal/domain"
)

// EventPublisher: публикация событий по заказам во внешний брокер.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
	Close() error
}
