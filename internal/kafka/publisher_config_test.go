package kafka_test

import (
	"testing"

	mykafka "github.com/Gunvolt24/pos_orders/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
)

func TestPublisherConfig_WriterConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		acks     string
		wantAcks kafkago.RequiredAcks
	}{
		{"default -> all", "", kafkago.RequireAll},
		{"all", "all", kafkago.RequireAll},
		{"one upper", " ONE ", kafkago.RequireOne},
		{"none", "none", kafkago.RequireNone},
		{"unknown -> all", "bogus", kafkago.RequireAll},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := mykafka.PublisherConfig{
				Brokers:      []string{"k1:9092"},
				Topic:        "orders-events",
				RequiredAcks: tt.acks,
			}
			w := cfg.WriterConfig()

			if w.RequiredAcks != tt.wantAcks {
				t.Fatalf("RequiredAcks: want %v, got %v", tt.wantAcks, w.RequiredAcks)
			}
			if w.Topic != cfg.Topic {
				t.Fatalf("Topic: want %s, got %s", cfg.Topic, w.Topic)
			}
			if w.Addr.String() != "k1:9092" {
				t.Fatalf("Addr: got %s", w.Addr.String())
			}
			if w.MaxAttempts != 1 {
				t.Fatalf("MaxAttempts: want 1, got %d", w.MaxAttempts)
			}
		})
	}
}

func TestPublisherConfig_Enabled(t *testing.T) {
	t.Parallel()

	var nilCfg *mykafka.PublisherConfig
	if nilCfg.Enabled() {
		t.Fatal("nil config must be disabled")
	}
	if (&mykafka.PublisherConfig{Topic: "t"}).Enabled() {
		t.Fatal("no brokers must be disabled")
	}
	if (&mykafka.PublisherConfig{Brokers: []string{"b:9092"}, Topic: "  "}).Enabled() {
		t.Fatal("blank topic must be disabled")
	}
	if !(&mykafka.PublisherConfig{Brokers: []string{"b:9092"}, Topic: "t"}).Enabled() {
		t.Fatal("brokers + topic must be enabled")
	}
}
