package kafka

import (
	"context"
	"errors"
	"sync"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/Gunvolt24/pos_orders/internal/ports"
	"github.com/Gunvolt24/pos_orders/pkg/metrics"
)

var _ ports.EventPublisher = (*AsyncPublisher)(nil)

var (
	// ErrQueueFull: очередь событий переполнена, событие отброшено.
	ErrQueueFull = errors.New("event queue is full")
	// ErrPublisherClosed: публикация после Close.
	ErrPublisherClosed = errors.New("event publisher is closed")
)

// DefaultQueueSize: размер очереди, если он не задан.
const DefaultQueueSize = 1024

type queuedEvent struct {
	ctx   context.Context
	event domain.OrderEvent
}

// AsyncPublisher: ставит события в очередь и публикует их одним воркером,
// поэтому HTTP-запрос не ждёт брокер. Порядок событий сохраняется.
type AsyncPublisher struct {
	next ports.EventPublisher
	log  ports.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan queuedEvent

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAsyncPublisher: запускает воркер; queueSize <= 0 → DefaultQueueSize.
func NewAsyncPublisher(next ports.EventPublisher, queueSize int, log ports.Logger) *AsyncPublisher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	p := &AsyncPublisher{
		next:  next,
		log:   log,
		queue: make(chan queuedEvent, queueSize),
	}

	p.wg.Add(1)
	go p.loop()
	return p
}

// Publish: не блокируется. Контекст отвязан от отмены запроса,
// но значения (trace, request_id) сохраняются для заголовков и логов.
func (p *AsyncPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		metrics.EventsFailed.WithLabelValues(string(event.Type)).Inc()
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) loop() {
	defer p.wg.Done()
	for q := range p.queue {
		if err := p.next.Publish(q.ctx, q.event); err != nil {
			p.log.Warnf(q.ctx, "async publish %s failed order_id=%s err=%v", q.event.Type, q.event.OrderID, err)
		}
	}
}

// Close: перестаёт принимать события, досылает очередь и закрывает нижний publisher.
// Повторный вызов безопасен.
func (p *AsyncPublisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()

		p.wg.Wait()
		retErr = p.next.Close()
	})
	return retErr
}
