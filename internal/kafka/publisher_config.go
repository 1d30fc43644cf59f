package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type PublisherConfig struct {
	Brokers        []string
	Topic          string
	RequiredAcks   string
	PublishTimeout time.Duration
	MaxAttempts    int
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// Enabled: публикация включена, только если заданы брокеры и топик.
func (c *PublisherConfig) Enabled() bool {
	return c != nil && len(c.Brokers) > 0 && strings.TrimSpace(c.Topic) != ""
}

// WriterConfig: синхронный writer; повторы делает сам Publisher, поэтому MaxAttempts=1.
func (c *PublisherConfig) WriterConfig() *kafka.Writer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            1,
		AllowAutoTopicCreation: true,
	}

	switch strings.ToLower(strings.TrimSpace(c.RequiredAcks)) {
	case "none":
		w.RequiredAcks = kafka.RequireNone
	case "one":
		w.RequiredAcks = kafka.RequireOne
	default:
		w.RequiredAcks = kafka.RequireAll
	}

	return w
}
