package validate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/Gunvolt24/pos_orders/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder: базовая (sentinel error) ошибка валидации.
// Текст после префикса: сообщение для клиента, см. Message.
var ErrInvalidOrder = errors.New("order validation failed")

// maxQuantity: верхняя граница количества в одной позиции.
const maxQuantity = math.MaxInt32

// OrderValidator: валидация запроса на создание заказа.
type OrderValidator struct{}

// NewOrderValidator: конструктор OrderValidator.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate: проверяет запрос; при первой же проблеме возвращает ErrInvalidOrder с описанием поля.
func (v *OrderValidator) Validate(_ context.Context, req *domain.CreateOrderRequest) error {
	if req == nil || len(req.Items) == 0 {
		return invalid("Items array is required and cannot be empty")
	}

	var total float64
	for i := range req.Items {
		line, err := v.validateItem(i+1, &req.Items[i])
		if err != nil {
			return err
		}
		total += line
	}
	if !domain.ValidAmount(total) {
		return invalid("Order total is too large")
	}
	return nil
}

// validateItem: проверка позиции; n: номер позиции, начиная с 1. Возвращает price*quantity.
func (v *OrderValidator) validateItem(n int, item *domain.CreateOrderItem) (float64, error) {
	name, ok := item.Name.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return 0, invalid("Item %d: Name is required and cannot be empty", n)
	}

	size, ok := item.Size.(string)
	if !ok || !domain.Size(size).Valid() {
		return 0, invalid("Item %d: Size must be 'small', 'medium', or 'large'", n)
	}

	price, ok := item.Price.(float64)
	if !ok || price <= 0 || math.IsInf(price, 0) {
		return 0, invalid("Item %d: Price must be a positive number", n)
	}
	if price > domain.MaxAmount {
		return 0, invalid("Item %d: Price is too large", n)
	}

	qty, ok := item.Quantity.(float64)
	if !ok || qty <= 0 {
		return 0, invalid("Item %d: Quantity must be a positive number", n)
	}
	if qty != math.Trunc(qty) {
		return 0, invalid("Item %d: Quantity must be a whole number", n)
	}
	if qty > maxQuantity {
		return 0, invalid("Item %d: Quantity is too large", n)
	}

	line := price * qty
	if !domain.ValidAmount(line) {
		return 0, invalid("Item %d: Price multiplied by quantity is too large", n)
	}
	return line, nil
}

// ParseStatus: статус из строки; ошибка ErrInvalidOrder для неизвестного значения.
func ParseStatus(raw string) (domain.Status, error) {
	s := domain.Status(raw)
	if !s.Valid() {
		return "", invalid("Valid status is required (pending, completed, cancelled)")
	}
	return s, nil
}

// ParseDateRange: период фильтрации из строки.
func ParseDateRange(raw string) (domain.DateRange, error) {
	d := domain.DateRange(raw)
	if !d.Valid() {
		return "", invalid("Invalid dateRange: must be one of today, week, month, year")
	}
	return d, nil
}

// Message: клиентское сообщение из ошибки валидации (без префикса ErrInvalidOrder).
func Message(err error) string {
	msg := err.Error()
	prefix := ErrInvalidOrder.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOrder, fmt.Sprintf(format, args...))
}
