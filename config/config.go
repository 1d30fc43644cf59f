package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultPrefix: префикс переменных окружения сервиса.
const DefaultPrefix = "POS"

type HTTP struct {
	Addr              string        `default:":3000" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	Production        bool          `default:"false" envconfig:"PRODUCTION"`
	CORSOrigins       []string      `envconfig:"CORS_ORIGINS"`
	BodyLimit         int64         `default:"10485760" envconfig:"BODY_LIMIT"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"3s" envconfig:"HANDLER_TIMEOUT"`
	ShutdownTimeout   time.Duration `default:"10s" envconfig:"SHUTDOWN_TIMEOUT"`
	// BackupEndpoint: POST /api/orders/api/backup (служебный маршрут для операторов).
	BackupEndpoint bool `default:"true" envconfig:"BACKUP_ENDPOINT"`
}

// Metrics: пустой Addr: /metrics отдаётся только основным роутером.
type Metrics struct {
	Addr string `envconfig:"ADDR"`
}

type Store struct {
	Dir              string `default:"./data" envconfig:"DIR"`
	File             string `default:"db.json" envconfig:"FILE"`
	BackupOnShutdown bool   `default:"true" envconfig:"BACKUP_ON_SHUTDOWN"`
}

// Path: полный путь к файлу документа.
func (s Store) Path() string { return filepath.Join(s.Dir, s.File) }

// Kafka: без брокеров публикация событий отключена.
type Kafka struct {
	Brokers        []string      `envconfig:"BROKERS"`
	Topic          string        `default:"orders-events" envconfig:"TOPIC"`
	RequiredAcks   string        `default:"all" envconfig:"REQUIRED_ACKS"`
	PublishTimeout time.Duration `default:"5s" envconfig:"PUBLISH_TIMEOUT"`
	MaxAttempts    int           `default:"1" envconfig:"MAX_ATTEMPTS"`
	RetryInitial   time.Duration `default:"100ms" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"2s" envconfig:"RETRY_MAX"`
	// QueueSize: очередь событий перед брокером; при переполнении событие отбрасывается.
	QueueSize int `default:"1024" envconfig:"QUEUE_SIZE"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"pos-orders" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"localhost:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Config struct {
	HTTP    HTTP
	Metrics Metrics
	Store   Store
	Kafka   Kafka
	Tracing Tracing
	Logger  Logger
}

// Load: конфигурация из окружения с префиксом POS.
func Load() (Config, error) { return LoadWithPrefix(DefaultPrefix) }

// LoadWithPrefix: то же с произвольным префиксом (для тестов).
// PORT без явного <PREFIX>_HTTP_ADDR задаёт порт HTTP-сервера.
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	if _, explicit := os.LookupEnv(strings.ToUpper(prefix) + "_HTTP_ADDR"); !explicit {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			c.HTTP.Addr = ":" + port
		}
	}

	return c, nil
}
