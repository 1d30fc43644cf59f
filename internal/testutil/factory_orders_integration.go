//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/pos_orders/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeCreateRequest: валидный запрос на заказ: Latte medium x2 + Muffin small x1 (итого 11.25).
// Название латте уникально, чтобы находить заказ поиском.
func MakeCreateRequest(opts ...func(*domain.CreateOrderRequest)) domain.CreateOrderRequest {
	req := domain.CreateOrderRequest{Items: []domain.CreateOrderItem{
		{Name: "Latte " + UniqSuffix(), Size: "medium", Price: 4.5, Quantity: float64(2)},
		{Name: "Muffin", Size: "small", Price: 2.25, Quantity: float64(1)},
	}}
	for _, fn := range opts {
		fn(&req)
	}
	return req
}
