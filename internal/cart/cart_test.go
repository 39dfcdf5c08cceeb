package cart

import (
	"context"
	"math"
	"testing"

	"github.com/adilbekov/homecook-api/internal/kv"
	"github.com/adilbekov/homecook-api/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T, opts ...Option) (*Cart, *kv.MemoryStore) {
	t.Helper()

	store := kv.NewMemoryStore()
	c, err := Load(context.Background(), store, "cart:test", opts...)
	require.NoError(t, err)

	return c, store
}

func TestAddItemDeduplicatesByName(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.AddItem(ctx, "Dal", 50))
	}

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 3, c.Lines()[0].Qty)
}

func TestAddItemKeepsOriginalPrice(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)

	require.NoError(t, c.AddItem(ctx, "Dal", 50))
	require.NoError(t, c.AddItem(ctx, "Dal", 75))

	assert.Equal(t, 50.0, c.Lines()[0].Price, "re-adding must not reprice the line")
	assert.Equal(t, 2, c.Lines()[0].Qty)
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)

	require.NoError(t, c.AddItem(ctx, "Rice", 30))
	require.NoError(t, c.Increment(ctx, "Rice"))

	require.NoError(t, c.Decrement(ctx, "Rice"))
	require.Len(t, c.Lines(), 1)

	require.NoError(t, c.Decrement(ctx, "Rice"))
	assert.Empty(t, c.Lines())

	// decrementing an absent name is a no-op
	require.NoError(t, c.Decrement(ctx, "Rice"))
	require.NoError(t, c.Decrement(ctx, "Nothing"))
	assert.Empty(t, c.Lines())
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)

	require.NoError(t, c.AddItem(ctx, "Dal", 50))
	require.NoError(t, c.AddItem(ctx, "Rice", 30))

	require.NoError(t, c.Remove(ctx, "Dal"))
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, "Rice", c.Lines()[0].Name)

	require.NoError(t, c.Clear(ctx))
	assert.Empty(t, c.Lines())
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t, WithTaxRate(0.05))

	require.NoError(t, c.AddItem(ctx, "Dal", 50))
	require.NoError(t, c.Increment(ctx, "Dal"))
	require.NoError(t, c.AddItem(ctx, "Rice", 30))

	assert.InDelta(t, 130.0, c.Subtotal(), 1e-9)
	assert.InDelta(t, 6.5, c.Tax(), 1e-9)
	assert.InDelta(t, 136.5, c.Total(), 1e-9)
	assert.InDelta(t, c.Subtotal()+c.Tax(), c.Total(), 1e-9)
}

func TestInvalidPriceCoercedToZero(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)

	require.NoError(t, c.AddItem(ctx, "Mystery", math.Inf(-1)))
	require.NoError(t, c.AddItem(ctx, "Free", 0))

	for _, line := range c.Lines() {
		assert.GreaterOrEqual(t, line.Price, 0.0)
	}
}

func TestRoundTripPreservesLines(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	c, err := Load(ctx, store, "cart:u1")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(ctx, "Dal", 50))
	require.NoError(t, c.AddItem(ctx, "Dal", 50))
	require.NoError(t, c.AddItem(ctx, "Rice", 30))

	reloaded, err := Load(ctx, store, "cart:u1")
	require.NoError(t, err)

	assert.Equal(t, c.Lines(), reloaded.Lines())
}

func TestLoadRepairsMalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	// pre-uniqueness snapshot: duplicates, string numbers, junk entries
	snapshot := `[
		{"name":"Dal","price":50,"qty":2},
		{"name":"Dal","price":50,"qty":1},
		{"name":"Rice","price":"30","qty":"2"},
		{"price":10,"qty":1},
		{"name":"Soup","price":"not-a-number"},
		{"name":"Bread","price":20,"qty":0}
	]`
	require.NoError(t, store.Set(ctx, "cart:legacy", snapshot))

	c, err := Load(ctx, store, "cart:legacy")
	require.NoError(t, err)

	require.Len(t, c.Lines(), 4, "nameless entry dropped, duplicates merged")
	assert.Equal(t, Line{Name: "Dal", Price: 50, Qty: 3}, c.Lines()[0])
	assert.Equal(t, Line{Name: "Rice", Price: 30, Qty: 2}, c.Lines()[1])
	assert.Equal(t, Line{Name: "Soup", Price: 0, Qty: 1}, c.Lines()[2])
	assert.Equal(t, Line{Name: "Bread", Price: 20, Qty: 1}, c.Lines()[3])
}

func TestLoadGarbageSnapshotYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "cart:bad", "{not json"))

	c, err := Load(ctx, store, "cart:bad")
	require.NoError(t, err)
	assert.Empty(t, c.Lines())
}

func TestAddItemNotifies(t *testing.T) {
	ctx := context.Background()
	collector := notify.NewCollector()
	c, _ := newTestCart(t, WithNotifier(collector))

	require.NoError(t, c.AddItem(ctx, "Dal", 50))

	require.NotNil(t, collector.Last())
	assert.Equal(t, "Dal has been added to your cart!", collector.Last().Text)
	assert.Equal(t, notify.SeveritySuccess, collector.Last().Severity)
}
