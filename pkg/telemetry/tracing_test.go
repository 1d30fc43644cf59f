package telemetry_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/pos_orders/pkg/telemetry"
	"go.opentelemetry.io/otel"
)

func TestClampRatio(t *testing.T) {
	t.Parallel()

	cases := map[float64]float64{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 3: 1}
	for in, want := range cases {
		if got := telemetry.ClampRatio(in); got != want {
			t.Fatalf("ClampRatio(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Options{Enabled: false})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown must not fail: %v", err)
	}

	fields := otel.GetTextMapPropagator().Fields()
	found := false
	for _, f := range fields {
		if f == "traceparent" {
			found = true
		}
	}
	if !found {
		t.Fatalf("trace context propagator must be installed, fields=%v", fields)
	}
}

func TestSetup_Enabled(t *testing.T) {
	// экспортёр ленивый: соединение с коллектором не требуется до первого батча
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Options{
		Enabled:     true,
		ServiceName: "pos-orders-test",
		Endpoint:    "127.0.0.1:4318",
		SampleRatio: 1,
	})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	_ = shutdown(context.Background())
}
