package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
)

func TestCalcTotal_RoundsToCents(t *testing.T) {
	t.Parallel()

	items := []domain.OrderItem{
		{Name: "Latte", Size: domain.SizeMedium, Price: 4.50, Quantity: 2},
		{Name: "Muffin", Size: domain.SizeSmall, Price: 2.25, Quantity: 1},
	}
	if got := domain.CalcTotal(items); got != 11.25 {
		t.Fatalf("CalcTotal = %v, want 11.25", got)
	}

	// 0.1*3 = 0.30000000000000004
	if got := domain.CalcTotal([]domain.OrderItem{{Price: 0.1, Quantity: 3}}); got != 0.3 {
		t.Fatalf("CalcTotal = %v, want 0.3", got)
	}
	if got := domain.CalcTotal(nil); got != 0 {
		t.Fatalf("CalcTotal(nil) = %v, want 0", got)
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{1.005, 1},
		{1.006, 1.01},
		{2.499, 2.5},
		{10, 10},
		{0, 0},
	}
	for _, tt := range tests {
		if got := domain.Round2(tt.in); got != tt.want {
			t.Fatalf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want bool
	}{
		{0, true},
		{4.5, true},
		{domain.MaxAmount, true},
		{domain.MaxAmount * 2, false},
		{-1, false},
		{math.Inf(1), false},
		{math.NaN(), false},
		{domain.Round2(1e307), false},
	}
	for _, tt := range tests {
		if got := domain.ValidAmount(tt.in); got != tt.want {
			t.Fatalf("ValidAmount(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStatusAndSize_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range domain.Statuses {
		if !s.Valid() {
			t.Fatalf("status %q must be valid", s)
		}
	}
	if domain.Status("bogus").Valid() || domain.Status("").Valid() {
		t.Fatal("unknown status must be invalid")
	}

	for _, s := range []domain.Size{domain.SizeSmall, domain.SizeMedium, domain.SizeLarge} {
		if !s.Valid() {
			t.Fatalf("size %q must be valid", s)
		}
	}
	if domain.Size("venti").Valid() {
		t.Fatal("unknown size must be invalid")
	}
}

func TestOrder_TimeAndTimestampFormat(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.UTC)
	ts := domain.FormatTimestamp(at)
	if ts != "2025-03-04T05:06:07.890Z" {
		t.Fatalf("FormatTimestamp = %q", ts)
	}

	o := domain.Order{Timestamp: ts}
	if !o.Time().Equal(at) {
		t.Fatalf("Time() = %v, want %v", o.Time(), at)
	}

	bad := domain.Order{Timestamp: "yesterday"}
	if !bad.Time().IsZero() {
		t.Fatalf("invalid timestamp must give zero time")
	}
}

func TestOrder_HasItemLike_CaseInsensitive(t *testing.T) {
	t.Parallel()

	o := domain.Order{Items: []domain.OrderItem{{Name: "Caramel Latte"}, {Name: "Muffin"}}}
	if !o.HasItemLike("latte") || !o.HasItemLike("MUF") {
		t.Fatal("expected case-insensitive substring match")
	}
	if o.HasItemLike("espresso") {
		t.Fatal("unexpected match")
	}
}

func TestOrder_CloneIsDeep(t *testing.T) {
	t.Parallel()

	o := domain.Order{ID: "o1", Items: []domain.OrderItem{{ID: "i1", Name: "Tea"}}}
	c := o.Clone()
	c.Items[0].Name = "Coffee"
	if o.Items[0].Name != "Tea" {
		t.Fatal("clone must not share items with the original")
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	empty := domain.NewDocument(time.Now())
	st := domain.ComputeStats(empty)
	if st.TotalOrders != 0 || st.TotalRevenue != 0 || st.AvgOrderValue != 0 {
		t.Fatalf("empty stats: %+v", st)
	}
	if st.LastUpdated != empty.Metadata.LastUpdated {
		t.Fatalf("LastUpdated: got %q want %q", st.LastUpdated, empty.Metadata.LastUpdated)
	}

	doc := domain.NewDocument(time.Now())
	doc.Orders = []domain.Order{{TotalPrice: 10}, {TotalPrice: 5.5}, {TotalPrice: 1.01}}
	st = domain.ComputeStats(doc)
	if st.TotalOrders != 3 || st.TotalRevenue != 16.51 || st.AvgOrderValue != 5.5 {
		t.Fatalf("stats: %+v", st)
	}
}

func TestNewDocument_Defaults(t *testing.T) {
	t.Parallel()

	doc := domain.NewDocument(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if doc.Orders == nil || len(doc.Orders) != 0 {
		t.Fatalf("orders must be empty non-nil slice")
	}
	if doc.Metadata.Version != domain.DocumentVersion {
		t.Fatalf("version: %q", doc.Metadata.Version)
	}
	if doc.Metadata.CreatedAt != "2025-01-01T00:00:00.000Z" || doc.Metadata.LastUpdated != doc.Metadata.CreatedAt {
		t.Fatalf("metadata: %+v", doc.Metadata)
	}
}
