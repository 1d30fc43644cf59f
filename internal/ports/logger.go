package ports

import "context"

// Logger: контракт логгера для всех слоёв.
// Из ctx реализация достаёт request_id/trace_id и добавляет их к записи.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
