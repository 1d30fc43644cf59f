package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/pos_orders/config"
	"github.com/Gunvolt24/pos_orders/internal/kafka"
	"github.com/Gunvolt24/pos_orders/internal/ports"
	"github.com/Gunvolt24/pos_orders/internal/repo/jsonfile"
	rest "github.com/Gunvolt24/pos_orders/internal/transport/http"
	"github.com/Gunvolt24/pos_orders/internal/usecase"
	"github.com/Gunvolt24/pos_orders/pkg/httpx"
	"github.com/Gunvolt24/pos_orders/pkg/logger"
	"github.com/Gunvolt24/pos_orders/pkg/metrics"
	"github.com/Gunvolt24/pos_orders/pkg/telemetry"
	"github.com/Gunvolt24/pos_orders/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App: собранное приложение и его внешние интерфейсы.
type App struct {
	Logger        ports.Logger         // логгер
	HTTPServer    *http.Server         // основной HTTP-сервер
	MetricsServer *http.Server         // отдельный сервер /metrics (nil: только основной роутер)
	Publisher     ports.EventPublisher // события по заказам
	Backups       ports.BackupMaker    // бэкап при остановке (nil: без бэкапа)
	Store         io.Closer            // хранилище закрывается последним

	gracefulTimeout time.Duration // время ожидания завершения HTTP-серверов
}

// Cleanup: функция освобождения ресурсов.
type Cleanup func()

// applyGinMode: устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap: собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// Ошибка инициализации хранилища фатальна: сервис без документа не стартует.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Хранилище: JSON-документ на диске.
	store := jsonfile.NewStore(cfg.Store.Path(), logg)
	if err := store.Initialize(ctx); err != nil {
		logg.Errorf(ctx, "store initialization failed path=%s: %v", cfg.Store.Path(), err)
		closeLogger()
		return nil, func() {}, fmt.Errorf("init store: %w", err)
	}
	logg.Infof(ctx, "store initialized path=%s", store.Path())

	// Трейсинг OTEL (при включённой конфигурации); иначе: только пропагаторы.
	shutdownTrace, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
		shutdownTrace = func(context.Context) error { return nil }
	} else if cfg.Tracing.Enabled {
		logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
			cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}

	// Публикация событий: без брокеров: no-op.
	var publisher ports.EventPublisher = kafka.NopPublisher{}
	kafkaCfg := kafka.PublisherConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.Topic,
		RequiredAcks:   cfg.Kafka.RequiredAcks,
		PublishTimeout: cfg.Kafka.PublishTimeout,
		MaxAttempts:    cfg.Kafka.MaxAttempts,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}
	if kafkaCfg.Enabled() {
		publisher = kafka.NewAsyncPublisher(kafka.NewPublisher(&kafkaCfg, logg), cfg.Kafka.QueueSize, logg)
		logg.Infof(ctx, "kafka publisher enabled topic=%s brokers=%v queue=%d",
			kafkaCfg.Topic, kafkaCfg.Brokers, cfg.Kafka.QueueSize)
	}

	// Сборка зависимостей доменного слоя.
	orderRepo := jsonfile.NewOrderRepository(store)
	orderValidator := validate.NewOrderValidator()
	orderService := usecase.NewOrderService(orderRepo, store, publisher, logg, orderValidator)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(orderService, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, rest.RouterOptions{
		OTelServiceName: otelServiceName,
		CORS: httpx.CORSOptions{
			Production:     cfg.HTTP.Production,
			AllowedOrigins: cfg.HTTP.CORSOrigins,
		},
		BodyLimit:     cfg.HTTP.BodyLimit,
		DisableBackup: !cfg.HTTP.BackupEndpoint,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   metricsSrv,
		Publisher:       publisher,
		Store:           store,
		gracefulTimeout: cfg.HTTP.ShutdownTimeout,
	}
	if cfg.Store.BackupOnShutdown {
		app.Backups = store
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		closeLogger()
	}

	return app, cleanup, nil
}

// Run: запускает HTTP-серверы; ждёт отмены контекста или ошибки сервера,
// затем останавливает серверы, делает бэкап (best-effort), закрывает publisher и хранилище.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	serve := func(name string, srv *http.Server) {
		a.Logger.Infof(ctx, "%s server starting (addr=%s)", name, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s server: %w", name, err)
		}
	}

	go serve("http", a.HTTPServer)
	if a.MetricsServer != nil {
		go serve("metrics", a.MetricsServer)
	}

	// Ожидание сигнала остановки или ошибки сервера.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Errorf(ctx, "server error: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-серверов.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}
	if a.MetricsServer != nil {
		if err := a.MetricsServer.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "metrics server shutdown failed: %v", err)
		}
	}

	// Бэкап перед выходом: ошибка только логируется.
	if a.Backups != nil {
		if path, err := a.Backups.Backup(); err != nil {
			a.Logger.Errorf(ctx, "failed to create backup: %v", err)
		} else {
			a.Logger.Infof(ctx, "backup created path=%s", path)
		}
	}

	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Logger.Warnf(ctx, "event publisher close error: %v", err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warnf(ctx, "store close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
