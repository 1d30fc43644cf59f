//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup: уникальные topic/group от базового префикса,
// например "orders-events-itc-20250601T120000123456789".
func UniqueTopicAndGroup(base string) (topic, group string) {
	s := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	return base + "-" + s, base + "-" + s + "-g"
}

// EnsureTopic: создаёт топик через контроллер кластера (уже существующий: не ошибка)
// и ждёт его появления в метаданных. broker: "host:port", "PLAINTEXT://host:port" или список через запятую.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := firstBootstrap(broker)

	conn, err := kafka.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}

	admin, err := kafka.Dial("tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return err
	}

	return waitTopicReady(ctx, addr, topic)
}

// ReadEvents: читает n событий заказов из топика с начала; ключ сообщения: id заказа.
func ReadEvents(ctx context.Context, brokers []string, topic, group string, n int) ([]domain.OrderEvent, []string, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     group,
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()

	events := make([]domain.OrderEvent, 0, n)
	keys := make([]string, 0, n)
	for len(events) < n {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			return events, keys, fmt.Errorf("read message %d: %w", len(events)+1, err)
		}
		var ev domain.OrderEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			return events, keys, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, ev)
		keys = append(keys, string(msg.Key))
	}
	return events, keys, nil
}

// firstBootstrap: первый адрес из bootstrap-строки без схемы.
func firstBootstrap(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitTopicReady(ctx context.Context, broker, topic string) error {
	deadline := time.Now().Add(5 * time.Second)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, err := kafka.Dial("tcp", broker)
		if err == nil {
			parts, perr := c.ReadPartitions(topic)
			_ = c.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topic %q not ready: %v", topic, err)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
