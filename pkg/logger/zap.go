package logger

import (
	"context"

	"github.com/Gunvolt24/pos_orders/pkg/ctxmeta"
	"go.uber.org/zap"
)

// ZapLogger: реализация ports.Logger поверх zap.SugaredLogger.
// Метаданные запроса из ctx (request_id, trace_id, span_id) пишутся отдельными полями.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger: prod: JSON-вывод уровня info; dev: консольный вывод уровня debug.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	return wrap(logger, isProd), func() error { return logger.Sync() }, nil
}

// NewNop: логгер без вывода (для тестов и CLI).
func NewNop() *ZapLogger { return wrap(zap.NewNop(), false) }

func wrap(l *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{base: l, sugar: l.Sugar(), isProd: isProd}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Infof(format, args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Warnf(format, args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Errorf(format, args...)
}

// withMeta: sugared-логгер с полями метаданных из ctx (если они есть).
func (z *ZapLogger) withMeta(ctx context.Context) *zap.SugaredLogger {
	var kv []any
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		kv = append(kv, "request_id", id)
	}
	if id, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		kv = append(kv, "trace_id", id)
	}
	if id, ok := ctxmeta.SpanIDFromContext(ctx); ok {
		kv = append(kv, "span_id", id)
	}
	if len(kv) == 0 {
		return z.sugar
	}
	return z.sugar.With(kv...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
func (z *ZapLogger) IsProd() bool                { return z.isProd }
