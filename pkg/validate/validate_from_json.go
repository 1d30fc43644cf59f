package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/Gunvolt24/pos_orders/internal/ports"
)

// ValidateRequestFromJSON: разбор и валидация запроса на создание заказа из JSON.
func ValidateRequestFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.CreateOrderRequest, error) {
	var req domain.CreateOrderRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// после объекта не должно быть данных
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if err := validator.Validate(ctx, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
