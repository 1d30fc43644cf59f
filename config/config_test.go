package config_test

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/pos_orders/config"
)

// TestLoadWithPrefix_Defaults: проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	c, err := cfg.LoadWithPrefix("POS_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":3000" {
		t.Fatalf("HTTP.Addr: want :3000, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" || c.HTTP.Production {
		t.Fatalf("HTTP mode defaults wrong: %+v", c.HTTP)
	}
	if !c.HTTP.BackupEndpoint {
		t.Fatal("HTTP.BackupEndpoint: want true by default")
	}
	if c.HTTP.BodyLimit != 10<<20 {
		t.Fatalf("HTTP.BodyLimit: want 10MiB, got %d", c.HTTP.BodyLimit)
	}
	if len(c.HTTP.CORSOrigins) != 0 {
		t.Fatalf("HTTP.CORSOrigins: want empty, got %v", c.HTTP.CORSOrigins)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP header/idle timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("HTTP handler/shutdown timeouts wrong: %+v", c.HTTP)
	}

	// Metrics
	if c.Metrics.Addr != "" {
		t.Fatalf("Metrics.Addr: want empty, got %q", c.Metrics.Addr)
	}

	// Store
	if c.Store.Path() != filepath.Join("data", "db.json") || !c.Store.BackupOnShutdown {
		t.Fatalf("Store defaults wrong: %+v path=%s", c.Store, c.Store.Path())
	}

	// Kafka
	if len(c.Kafka.Brokers) != 0 {
		t.Fatalf("Kafka.Brokers: want empty (publisher off), got %v", c.Kafka.Brokers)
	}
	if c.Kafka.Topic != "orders-events" || c.Kafka.RequiredAcks != "all" || c.Kafka.MaxAttempts != 1 || c.Kafka.QueueSize != 1024 {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.PublishTimeout != 5*time.Second || c.Kafka.RetryInitial != 100*time.Millisecond || c.Kafka.RetryMax != 2*time.Second {
		t.Fatalf("Kafka timeouts wrong: %+v", c.Kafka)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "pos-orders" || c.Tracing.Endpoint != "localhost:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "POS_TEST_OVR"

	// HTTP
	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_PRODUCTION", "true")
	t.Setenv(p+"_HTTP_CORS_ORIGINS", "https://admin.example.com,https://pos.example.com")
	t.Setenv(p+"_HTTP_BODY_LIMIT", "1024")
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "2s")
	t.Setenv(p+"_HTTP_WRITE_TIMEOUT", "3s")
	t.Setenv(p+"_HTTP_READ_HEADER_TIMEOUT", "1s")
	t.Setenv(p+"_HTTP_IDLE_TIMEOUT", "15s")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_HTTP_SHUTDOWN_TIMEOUT", "20s")
	// явный ADDR важнее PORT
	t.Setenv("PORT", "4000")

	// Metrics
	t.Setenv(p+"_METRICS_ADDR", ":9998")

	// Store
	t.Setenv(p+"_STORE_DIR", "/var/lib/pos")
	t.Setenv(p+"_STORE_FILE", "orders.json")
	t.Setenv(p+"_STORE_BACKUP_ON_SHUTDOWN", "false")

	// Kafka
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_TOPIC", "pos-events")
	t.Setenv(p+"_KAFKA_REQUIRED_ACKS", "one")
	t.Setenv(p+"_KAFKA_PUBLISH_TIMEOUT", "7s")
	t.Setenv(p+"_KAFKA_MAX_ATTEMPTS", "4")
	t.Setenv(p+"_KAFKA_RETRY_INITIAL", "250ms")
	t.Setenv(p+"_KAFKA_RETRY_MAX", "5s")

	// Tracing
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SERVICE_NAME", "svc")
	t.Setenv(p+"_TRACING_OTEL_ENDPOINT", "collector:4318")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")

	// Logger
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// Проверки
	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || !c.HTTP.Production || c.HTTP.BodyLimit != 1024 {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if !slices.Equal(c.HTTP.CORSOrigins, []string{"https://admin.example.com", "https://pos.example.com"}) {
		t.Fatalf("HTTP.CORSOrigins override wrong: %v", c.HTTP.CORSOrigins)
	}
	if c.HTTP.ReadTimeout != 2*time.Second || c.HTTP.WriteTimeout != 3*time.Second ||
		c.HTTP.ReadHeaderTimeout != 1*time.Second || c.HTTP.IdleTimeout != 15*time.Second ||
		c.HTTP.HandlerTimeout != 4500*time.Millisecond || c.HTTP.ShutdownTimeout != 20*time.Second {
		t.Fatalf("HTTP timeouts override wrong: %+v", c.HTTP)
	}
	if c.Metrics.Addr != ":9998" {
		t.Fatalf("Metrics.Addr override wrong: %q", c.Metrics.Addr)
	}
	if c.Store.Path() != filepath.Join("/var/lib/pos", "orders.json") || c.Store.BackupOnShutdown {
		t.Fatalf("Store overrides wrong: %+v", c.Store)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) ||
		c.Kafka.Topic != "pos-events" || c.Kafka.RequiredAcks != "one" || c.Kafka.MaxAttempts != 4 {
		t.Fatalf("Kafka basic overrides wrong: %+v", c.Kafka)
	}
	if c.Kafka.PublishTimeout != 7*time.Second || c.Kafka.RetryInitial != 250*time.Millisecond || c.Kafka.RetryMax != 5*time.Second {
		t.Fatalf("Kafka timeouts override wrong: %+v", c.Kafka)
	}
	if !c.Tracing.Enabled || c.Tracing.ServiceName != "svc" || c.Tracing.Endpoint != "collector:4318" || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// PORT задаёт адрес, если ADDR не указан явно.
func TestLoadWithPrefix_PortFallback(t *testing.T) {
	t.Setenv("PORT", "8081")

	c, err := cfg.LoadWithPrefix("POS_TEST_PORT")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}
	if c.HTTP.Addr != ":8081" {
		t.Fatalf("HTTP.Addr: want :8081, got %q", c.HTTP.Addr)
	}
}

// Тоже меняем окружение: но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "POS_TEST_BAD"
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
