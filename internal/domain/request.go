package domain

import (
	"encoding/json"
	"time"
)

// CreateOrderItem: позиция во входящем запросе (без id).
// Поля имеют тип any: типы значений проверяет валидатор.
type CreateOrderItem struct {
	Name     any `json:"name"`
	Size     any `json:"size"`
	Price    any `json:"price"`
	Quantity any `json:"quantity"`
}

// CreateOrderRequest: тело POST /api/orders.
// Items == nil означает, что поле отсутствовало или не было массивом.
type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

// UnmarshalJSON: items, не являющийся массивом, трактуем как отсутствующий,
// чтобы ответить валидационной ошибкой, а не ошибкой разбора.
func (r *CreateOrderRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Items = nil

	var elems []json.RawMessage
	if len(raw.Items) == 0 || json.Unmarshal(raw.Items, &elems) != nil {
		return nil
	}

	// Элемент, не являющийся объектом, остаётся пустой позицией:
	// валидатор сообщит о первом же обязательном поле.
	r.Items = make([]CreateOrderItem, len(elems))
	for i := range elems {
		_ = json.Unmarshal(elems[i], &r.Items[i])
	}
	return nil
}

// DateRange: предустановленный период фильтрации заказов.
type DateRange string

const (
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
	DateRangeYear  DateRange = "year"
)

func (d DateRange) Valid() bool {
	switch d {
	case DateRangeToday, DateRangeWeek, DateRangeMonth, DateRangeYear:
		return true
	}
	return false
}

// Start: начало периода относительно now; конец периода: сам now.
func (d DateRange) Start(now time.Time) time.Time {
	switch d {
	case DateRangeToday:
		y, m, day := now.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	case DateRangeWeek:
		return now.AddDate(0, 0, -7)
	case DateRangeMonth:
		return now.AddDate(0, -1, 0)
	case DateRangeYear:
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}

// OrderFilter: параметры выборки списка заказов. Пустые поля не фильтруют.
type OrderFilter struct {
	Status    Status    `json:"status,omitempty"`
	Search    string    `json:"search,omitempty"`
	DateRange DateRange `json:"dateRange,omitempty"`
	Limit     int       `json:"limit,omitempty"`
	Offset    int       `json:"offset,omitempty"`
}

// OrderItems: позиции заказа из проверенного запроса (id не заполнены).
// Значения неверного типа становятся нулевыми: запрос должен быть провалидирован заранее.
func (r *CreateOrderRequest) OrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(r.Items))
	for i := range r.Items {
		in := &r.Items[i]
		name, _ := in.Name.(string)
		size, _ := in.Size.(string)
		price, _ := in.Price.(float64)
		qty, _ := in.Quantity.(float64)
		items = append(items, OrderItem{
			Name:     name,
			Size:     Size(size),
			Price:    price,
			Quantity: int(qty),
		})
	}
	return items
}
