package domain

import "time"

// DocumentVersion: версия схемы документа по умолчанию.
const DocumentVersion = "1.0.0"

// Metadata: служебные поля документа.
type Metadata struct {
	Version     string `json:"version"`
	CreatedAt   string `json:"createdAt"`
	LastUpdated string `json:"lastUpdated"`
}

// Document: весь набор данных, хранимый одним JSON-файлом.
type Document struct {
	Orders   []Order  `json:"orders"`
	Metadata Metadata `json:"metadata"`
}

// NewDocument: документ по умолчанию: пустой список заказов и свежие метаданные.
func NewDocument(now time.Time) *Document {
	ts := FormatTimestamp(now)
	return &Document{
		Orders: []Order{},
		Metadata: Metadata{
			Version:     DocumentVersion,
			CreatedAt:   ts,
			LastUpdated: ts,
		},
	}
}

// Clone: глубокая копия документа.
func (d *Document) Clone() *Document {
	c := &Document{Metadata: d.Metadata, Orders: make([]Order, len(d.Orders))}
	for i := range d.Orders {
		c.Orders[i] = d.Orders[i].Clone()
	}
	return c
}

// Stats: агрегированная статистика по заказам.
type Stats struct {
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	LastUpdated   string  `json:"lastUpdated"`
}

// ComputeStats: чистая функция от состояния документа.
func ComputeStats(doc *Document) Stats {
	var revenue float64
	for i := range doc.Orders {
		revenue += doc.Orders[i].TotalPrice
	}

	avg := 0.0
	if n := len(doc.Orders); n > 0 {
		avg = revenue / float64(n)
	}

	return Stats{
		TotalOrders:   len(doc.Orders),
		TotalRevenue:  Round2(revenue),
		AvgOrderValue: Round2(avg),
		LastUpdated:   doc.Metadata.LastUpdated,
	}
}
