package jsonfile

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func makeOrder(id string, at time.Time) *domain.Order {
	items := []domain.OrderItem{
		{ID: id + "-i1", Name: "Latte", Size: domain.SizeMedium, Price: 4.5, Quantity: 2},
		{ID: id + "-i2", Name: "Muffin", Size: domain.SizeSmall, Price: 2.25, Quantity: 1},
	}
	return &domain.Order{
		ID:         id,
		Items:      items,
		TotalPrice: domain.CalcTotal(items),
		Timestamp:  domain.FormatTimestamp(at),
		Status:     domain.StatusPending,
	}
}

func newRepo(t *testing.T) (*OrderRepository, *Store) {
	t.Helper()
	s, _ := newTestStore(t)
	return NewOrderRepository(s), s
}

func TestOrderRepository_AddAndGetByID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	o := makeOrder("o-1", base)
	require.NoError(t, repo.AddOrder(ctx, o))

	got, found, err := repo.GetOrderByID(ctx, "o-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, *o, got)

	_, found, err = repo.GetOrderByID(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestOrderRepository_AddInsertsAtFront(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t)

	require.NoError(t, repo.AddOrder(ctx, makeOrder("first", base)))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("second", base.Add(-time.Hour))))

	onDisk := readDoc(t, s.Path())
	require.Len(t, onDisk.Orders, 2)
	require.Equal(t, "second", onDisk.Orders[0].ID)
	require.Equal(t, "first", onDisk.Orders[1].ID)
}

func TestOrderRepository_AddDoesNotAliasCaller(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	o := makeOrder("o-1", base)
	require.NoError(t, repo.AddOrder(ctx, o))
	o.Items[0].Name = "changed"
	o.Status = domain.StatusCancelled

	got, _, err := repo.GetOrderByID(ctx, "o-1")
	require.NoError(t, err)
	require.Equal(t, "Latte", got.Items[0].Name)
	require.Equal(t, domain.StatusPending, got.Status)

	// и наоборот: изменение результата не меняет документ
	got.Items[0].Name = "mutated"
	again, _, err := repo.GetOrderByID(ctx, "o-1")
	require.NoError(t, err)
	require.Equal(t, "Latte", again.Items[0].Name)
}

func TestOrderRepository_AddDuplicateIDNotGuarded(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.AddOrder(ctx, makeOrder("dup", base)))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("dup", base)))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestOrderRepository_GetAllOrders_SortedDescRegardlessOfInsertion(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	offsets := []int{3, -2, 7, 0, 5, -9, 1}
	for i, off := range offsets {
		require.NoError(t, repo.AddOrder(ctx, makeOrder(fmt.Sprintf("o-%d", i), base.Add(time.Duration(off)*time.Minute))))
	}

	all, err := repo.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(offsets))
	for i := 1; i < len(all); i++ {
		require.True(t, all[i-1].Time().After(all[i].Time()),
			"not strictly descending at %d: %s vs %s", i, all[i-1].Timestamp, all[i].Timestamp)
	}
}

func TestOrderRepository_GetOrdersByDateRange_Inclusive(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.AddOrder(ctx, makeOrder("before", base.Add(-time.Millisecond))))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("start", base)))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("middle", base.Add(time.Hour))))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("end", base.Add(2*time.Hour))))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("after", base.Add(2*time.Hour+time.Millisecond))))

	got, err := repo.GetOrdersByDateRange(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	require.ElementsMatch(t, []string{"start", "middle", "end"}, ids)
}

func TestOrderRepository_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t)

	o := makeOrder("o-1", base)
	require.NoError(t, repo.AddOrder(ctx, o))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("o-2", base)))
	before := readDoc(t, s.Path())

	ok, err := repo.UpdateOrderStatus(ctx, "missing", domain.StatusCompleted)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, before, readDoc(t, s.Path()))

	ok, err = repo.UpdateOrderStatus(ctx, "o-1", domain.StatusCompleted)
	require.NoError(t, err)
	require.True(t, ok)

	got, _, err := repo.GetOrderByID(ctx, "o-1")
	require.NoError(t, err)
	want := *o
	want.Status = domain.StatusCompleted
	require.Equal(t, want, got)

	other, _, err := repo.GetOrderByID(ctx, "o-2")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, other.Status)

	// любой переход разрешён
	ok, err = repo.UpdateOrderStatus(ctx, "o-1", domain.StatusPending)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOrderRepository_DeleteOrder(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.AddOrder(ctx, makeOrder("o-1", base)))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("o-2", base)))

	removed, err := repo.DeleteOrder(ctx, "missing")
	require.NoError(t, err)
	require.False(t, removed)

	removed, err = repo.DeleteOrder(ctx, "o-1")
	require.NoError(t, err)
	require.True(t, removed)

	_, found, err := repo.GetOrderByID(ctx, "o-1")
	require.NoError(t, err)
	require.False(t, found)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestOrderRepository_ClearAndStats(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t)

	require.NoError(t, repo.AddOrder(ctx, makeOrder("o-1", base)))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("o-2", base)))

	st, err := repo.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, st.TotalOrders)
	require.Equal(t, 22.5, st.TotalRevenue)
	require.Equal(t, 11.25, st.AvgOrderValue)

	require.NoError(t, repo.Clear(ctx))
	require.Empty(t, readDoc(t, s.Path()).Orders)

	st, err = repo.GetStats(ctx)
	require.NoError(t, err)
	require.Zero(t, st.TotalOrders)
	require.Zero(t, st.TotalRevenue)
	require.Zero(t, st.AvgOrderValue)
}

func TestOrderRepository_RoundTripThroughDisk(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AddOrder(ctx, makeOrder(fmt.Sprintf("o-%d", i), base.Add(time.Duration(i)*time.Second))))
	}
	_, err := repo.UpdateOrderStatus(ctx, "o-2", domain.StatusCancelled)
	require.NoError(t, err)

	before, err := s.Document()
	require.NoError(t, err)
	wantOrders := append([]domain.Order(nil), before.Orders...)

	reloaded := NewStore(s.Path(), noopLogger{})
	require.NoError(t, reloaded.Initialize(ctx))
	doc, err := reloaded.Document()
	require.NoError(t, err)
	require.Equal(t, wantOrders, doc.Orders)
}

func TestOrderRepository_StoreFailurePropagates(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t)
	require.NoError(t, s.Close())

	require.ErrorIs(t, repo.AddOrder(ctx, makeOrder("o", base)), domain.ErrStoreNotInitialized)
	_, err := repo.GetAllOrders(ctx)
	require.ErrorIs(t, err, domain.ErrStoreNotInitialized)
	_, _, err = repo.GetOrderByID(ctx, "o")
	require.ErrorIs(t, err, domain.ErrStoreNotInitialized)
	_, err = repo.UpdateOrderStatus(ctx, "o", domain.StatusCompleted)
	require.ErrorIs(t, err, domain.ErrStoreNotInitialized)
	_, err = repo.DeleteOrder(ctx, "o")
	require.ErrorIs(t, err, domain.ErrStoreNotInitialized)
	require.ErrorIs(t, repo.Clear(ctx), domain.ErrStoreNotInitialized)
	_, err = repo.GetStats(ctx)
	require.ErrorIs(t, err, domain.ErrStoreNotInitialized)
}

func TestOrderRepository_FailedAddLeavesStoreUsable(t *testing.T) {
	ctx := context.Background()
	repo, s := newRepo(t)

	bad := makeOrder("bad", base)
	bad.TotalPrice = math.Inf(1)
	require.ErrorIs(t, repo.AddOrder(ctx, bad), ErrDocumentEncode)

	require.NoError(t, repo.AddOrder(ctx, makeOrder("o-1", base)))
	require.NoError(t, repo.AddOrder(ctx, makeOrder("o-2", base.Add(time.Minute))))

	all, err := repo.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// перезапуск видит всё, что было принято после отказа
	reloaded := NewStore(s.Path(), noopLogger{})
	require.NoError(t, reloaded.Initialize(ctx))
	n, err := NewOrderRepository(reloaded).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
