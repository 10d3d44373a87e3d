package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SCWINCK/CatDist/internal/domain/catalog"
	"github.com/SCWINCK/CatDist/internal/domain/coupon"
)

func testProduct(id, supplierID, price string) catalog.Product {
	return catalog.Product{
		ID:         id,
		SupplierID: supplierID,
		Name:       "Product " + id,
		Price:      decimal.RequireFromString(price),
	}
}

func newTestStore(t *testing.T, products ...catalog.Product) (*Store, *catalog.Holder) {
	t.Helper()
	idx, errs := catalog.Build([]catalog.Supplier{{ID: "s1"}}, products)
	require.Empty(t, errs)
	holder := catalog.NewHolder(idx)
	return NewStore(holder, coupon.DefaultRepository()), holder
}

func TestAdd(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	require.NoError(t, store.Add("sess", "p1", 1))
	require.NoError(t, store.Add("sess", "p1", 2))

	snap := store.Snapshot("sess")
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 3, snap.Lines[0].Quantity)
	assert.Equal(t, 3, snap.ItemCount)
	assert.Equal(t, "30.00", snap.GrandTotal.StringFixed(2))
}

func TestAdd_UnknownProduct(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	err := store.Add("sess", "ghost", 1)
	require.ErrorIs(t, err, ErrUnknownProduct)
	assert.Empty(t, store.Snapshot("sess").Lines)
}

func TestAdd_InvalidQuantity(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	require.ErrorIs(t, store.Add("sess", "p1", 0), ErrInvalidQuantity)
	require.ErrorIs(t, store.Add("sess", "p1", -5), ErrInvalidQuantity)
}

func TestSetQuantity(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	require.NoError(t, store.SetQuantity("sess", "p1", 5))
	assert.Equal(t, 5, store.Snapshot("sess").ItemCount)

	// Zero or negative removes the line.
	require.NoError(t, store.SetQuantity("sess", "p1", 0))
	assert.Empty(t, store.Snapshot("sess").Lines)

	require.NoError(t, store.SetQuantity("sess", "p1", 2))
	require.NoError(t, store.SetQuantity("sess", "p1", -1))
	assert.Empty(t, store.Snapshot("sess").Lines)
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	require.ErrorIs(t, store.SetQuantity("sess", "ghost", 3), ErrUnknownProduct)
	// Removal path does not require the product to exist.
	require.NoError(t, store.SetQuantity("sess", "ghost", 0))
}

func TestRemove_Idempotent(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	require.NoError(t, store.Add("sess", "p1", 2))
	before := store.Snapshot("sess")

	store.Remove("sess", "absent")
	assert.Equal(t, before.ItemCount, store.Snapshot("sess").ItemCount)

	store.Remove("sess", "p1")
	store.Remove("sess", "p1")
	assert.Empty(t, store.Snapshot("sess").Lines)

	// Removing from a session that never existed is fine too.
	store.Remove("never-seen", "p1")
}

func TestClear_Idempotent(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	require.NoError(t, store.Add("sess", "p1", 4))
	store.Clear("sess")
	store.Clear("sess")

	snap := store.Snapshot("sess")
	assert.Equal(t, 0, snap.ItemCount)
	assert.Equal(t, "0.00", snap.GrandTotal.StringFixed(2))
}

func TestSnapshot_PromoPricing(t *testing.T) {
	onPromo := testProduct("p1", "s1", "100.00")
	onPromo.PromoPrice = decimal.NullDecimal{Decimal: decimal.RequireFromString("80.00"), Valid: true}
	store, _ := newTestStore(t, onPromo, testProduct("p2", "s1", "20.00"))

	require.NoError(t, store.Add("sess", "p1", 2))
	require.NoError(t, store.Add("sess", "p2", 1))

	snap := store.Snapshot("sess")
	require.Len(t, snap.Lines, 2)
	assert.Equal(t, "80.00", snap.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "160.00", snap.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "180.00", snap.Subtotal.StringFixed(2))
	assert.Equal(t, "180.00", snap.GrandTotal.StringFixed(2))
}

func TestSnapshot_LinesFollowCatalogOrder(t *testing.T) {
	store, _ := newTestStore(t,
		testProduct("p1", "s1", "1.00"),
		testProduct("p2", "s1", "2.00"),
		testProduct("p3", "s1", "3.00"),
	)

	// Insert in reverse; the snapshot must come back in catalog order.
	require.NoError(t, store.Add("sess", "p3", 1))
	require.NoError(t, store.Add("sess", "p1", 1))
	require.NoError(t, store.Add("sess", "p2", 1))

	snap := store.Snapshot("sess")
	require.Len(t, snap.Lines, 3)
	assert.Equal(t, "p1", snap.Lines[0].Product.ID)
	assert.Equal(t, "p2", snap.Lines[1].Product.ID)
	assert.Equal(t, "p3", snap.Lines[2].Product.ID)
}

func TestSnapshot_DropsProductsGoneFromCatalog(t *testing.T) {
	store, holder := newTestStore(t,
		testProduct("p1", "s1", "10.00"),
		testProduct("p2", "s1", "5.00"),
	)

	require.NoError(t, store.Add("sess", "p1", 1))
	require.NoError(t, store.Add("sess", "p2", 3))
	assert.Equal(t, "25.00", store.Snapshot("sess").GrandTotal.StringFixed(2))

	// Rebuild the catalog without p2; its line silently disappears.
	idx, errs := catalog.Build(
		[]catalog.Supplier{{ID: "s1"}},
		[]catalog.Product{testProduct("p1", "s1", "10.00")},
	)
	require.Empty(t, errs)
	holder.Publish(idx)

	snap := store.Snapshot("sess")
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "p1", snap.Lines[0].Product.ID)
	assert.Equal(t, "10.00", snap.GrandTotal.StringFixed(2))
}

func TestSnapshot_CouponAndShipping(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "100.00"))
	ctx := context.Background()

	require.NoError(t, store.Add("sess", "p1", 1))
	require.NoError(t, store.ApplyCoupon(ctx, "sess", "desconto10"))
	require.NoError(t, store.SetShipping("sess", decimal.RequireFromString("15.00")))

	snap := store.Snapshot("sess")
	assert.Equal(t, "DESCONTO10", snap.CouponCode)
	assert.Equal(t, "10.00", snap.Discount.StringFixed(2))
	assert.Equal(t, "15.00", snap.Shipping.StringFixed(2))
	assert.Equal(t, "105.00", snap.GrandTotal.StringFixed(2))

	store.ClearCoupon("sess")
	snap = store.Snapshot("sess")
	assert.Empty(t, snap.CouponCode)
	assert.Equal(t, "115.00", snap.GrandTotal.StringFixed(2))
}

func TestApplyCoupon_Invalid(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	err := store.ApplyCoupon(context.Background(), "sess", "NOPE")
	require.ErrorIs(t, err, coupon.ErrInvalidCoupon)
}

func TestSetShipping_Negative(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	err := store.SetShipping("sess", decimal.RequireFromString("-1"))
	require.ErrorIs(t, err, ErrInvalidShipping)
}

func TestAdd_ConcurrentSameSession(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "1.00"))

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			_ = store.Add("sess", "p1", 1)
		}()
	}
	wg.Wait()

	snap := store.Snapshot("sess")
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, n, snap.Lines[0].Quantity)
}

func TestAdd_ConcurrentDistinctSessions(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "1.00"))

	const sessions = 50
	var wg sync.WaitGroup
	wg.Add(sessions)
	for i := range sessions {
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			_ = store.Add(id+"-cart", "p1", 1)
		}(i)
	}
	wg.Wait()
}

func TestSnapshot_EmptySessionIsZero(t *testing.T) {
	store, _ := newTestStore(t, testProduct("p1", "s1", "10.00"))

	snap := store.Snapshot("never-written")
	assert.Empty(t, snap.Lines)
	assert.Equal(t, 0, snap.ItemCount)
	assert.Equal(t, "0.00", snap.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", snap.GrandTotal.StringFixed(2))
}
