package logger

import (
	"context"
	"testing"

	"github.com/Gunvolt24/pos_orders/pkg/ctxmeta"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := wrap(zap.New(core), false)

	ctx := ctxmeta.WithRequestID(context.Background(), "req-7")
	l.Infof(ctx, "order created id=%s", "o-1")
	l.Warnf(context.Background(), "no meta")

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "order created id=o-1" {
		t.Fatalf("message: %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-7" {
		t.Fatalf("request_id field: %v", got)
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Fatal("request_id must be absent without ctx meta")
	}
}

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l := wrap(zap.New(core), true)

	l.Infof(context.Background(), "skipped")
	l.Warnf(context.Background(), "warn")
	l.Errorf(context.Background(), "error")

	if logs.Len() != 2 {
		t.Fatalf("want 2 entries at warn+, got %d", logs.Len())
	}
	if !l.IsProd() {
		t.Fatal("IsProd must reflect constructor flag")
	}
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	l := NewNop()
	l.Infof(context.Background(), "x=%d", 1)
	l.Errorf(context.Background(), "y")
}
