package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/Gunvolt24/pos_orders/internal/ports"
	"github.com/Gunvolt24/pos_orders/pkg/metrics"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// Проверка, что Publisher и NopPublisher удовлетворяют порту приложения.
var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.EventPublisher = NopPublisher{}
)

// writer: минимальный контракт над kafka.Writer, чтобы подменять его в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher: обёртка над kafka.Writer: JSON-события по заказам, ключ: id заказа.
type Publisher struct {
	writer         writer
	topic          string
	log            ports.Logger
	publishTimeout time.Duration
	maxAttempts    int
	retryInitial   time.Duration
	retryMax       time.Duration

	randMu     sync.Mutex
	jitterRand *rand.Rand
	closeOnce  sync.Once
}

// NewPublisher: конструктор с дефолтами для незаданных параметров.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	return newPublisher(cfg.WriterConfig(), cfg, log)
}

func newPublisher(w writer, cfg *PublisherConfig, log ports.Logger) *Publisher {
	pt := cfg.PublishTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 100 * time.Millisecond
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 2 * time.Second
	}

	return &Publisher{
		writer:         w,
		topic:          cfg.Topic,
		log:            log,
		publishTimeout: pt,
		maxAttempts:    attempts,
		retryInitial:   rInit,
		retryMax:       rMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Publish: пишет событие с повторами (экспоненциальный backoff с equal-jitter).
// В заголовки сообщения прокидывается контекст трейса.
func (p *Publisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:     []byte(event.OrderID),
		Value:   payload,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(event.Type)}},
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	retry := p.retryInitial
	for attempt := 1; ; attempt++ {
		err = p.write(ctx, &msg)
		if err == nil {
			metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()
			return nil
		}
		if attempt >= p.maxAttempts || ctx.Err() != nil {
			break
		}

		sleep := p.withJitterEqual(retry)
		p.log.Warnf(ctx, "publish attempt %d failed topic=%s: %v (will retry in %s)", attempt, p.topic, err, sleep)
		if !sleepWithBackoff(ctx, sleep) {
			break
		}
		retry = p.nextBackoff(retry)
	}

	metrics.EventsFailed.WithLabelValues(string(event.Type)).Inc()
	return fmt.Errorf("publish %s to %s: %w", event.Type, p.topic, err)
}

func (p *Publisher) write(ctx context.Context, msg *kafka.Message) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()
	return p.writer.WriteMessages(ctxTimeout, *msg)
}

// Close: закрывает writer (досылает буфер). Повторный вызов безопасен.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

// NopPublisher: публикация отключена (брокеры не заданы).
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.OrderEvent) error { return nil }
func (NopPublisher) Close() error                                     { return nil }
