package domain

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Status: статус заказа. Переходы между статусами не ограничены.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses: допустимые статусы в порядке вывода в сообщениях об ошибках.
var Statuses = []Status{StatusPending, StatusCompleted, StatusCancelled}

// Valid: true, если статус входит в допустимый набор.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Size: размер позиции (напитка).
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// TimestampLayout: формат timestamp заказа (ISO-8601, миллисекунды, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// OrderItem: позиция заказа. ID присваивается при создании заказа.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Size     Size    `json:"size"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order: заказ точки продаж.
type Order struct {
	ID         string      `json:"id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	Timestamp  string      `json:"timestamp"`
	Status     Status      `json:"status"`
}

// Time: разобранный timestamp; нулевое время, если строка некорректна.
func (o *Order) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, o.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HasItemLike: есть ли позиция, имя которой содержит подстроку (без учёта регистра).
func (o *Order) HasItemLike(search string) bool {
	needle := strings.ToLower(search)
	for i := range o.Items {
		if strings.Contains(strings.ToLower(o.Items[i].Name), needle) {
			return true
		}
	}
	return false
}

// Clone: глубокая копия заказа (слайс позиций копируется).
func (o *Order) Clone() Order {
	c := *o
	if o.Items != nil {
		c.Items = append([]OrderItem(nil), o.Items...)
	}
	return c
}

// CalcTotal: round2(Σ price*quantity).
func CalcTotal(items []OrderItem) float64 {
	var total float64
	for i := range items {
		total += items[i].Price * float64(items[i].Quantity)
	}
	return Round2(total)
}

// MaxAmount: верхняя граница цены, суммы позиции и суммы заказа.
// Выше неё round2 теряет точность, а при переполнении до ±Inf документ нельзя записать в JSON.
const MaxAmount = 1e12

// ValidAmount: конечная неотрицательная сумма не больше MaxAmount.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= MaxAmount
}

// Round2: округление денежной суммы до двух знаков.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatTimestamp: timestamp заказа в формате хранения.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// SortByTimestampDesc: стабильная сортировка по времени создания: новые первыми.
func SortByTimestampDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Time().After(orders[j].Time())
	})
}
