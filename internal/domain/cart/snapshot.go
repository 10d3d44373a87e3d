package cart

import (
	"github.com/shopspring/decimal"

	"github.com/SCWINCK/CatDist/internal/domain/catalog"
)

// Line is one enriched cart line, priced from the catalog snapshot the
// enclosing Snapshot was taken against.
type Line struct {
	Product   catalog.Product
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Snapshot is a fully priced view of one session's cart. Money values are
// rounded to two decimal places.
type Snapshot struct {
	Lines      []Line
	ItemCount  int
	Subtotal   decimal.Decimal
	CouponCode string
	Discount   decimal.Decimal
	Shipping   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Snapshot prices the session's cart against the current catalog snapshot.
// Lines are ordered by the catalog's load order. Product ids stored in the
// cart that no longer resolve in the current catalog are silently dropped:
// the cart keeps only ids and quantities, so a reload that removed a product
// implicitly removes its line. GrandTotal never goes below zero.
func (s *Store) Snapshot(sessionID string) Snapshot {
	idx := s.catalog.Load()

	snap := Snapshot{
		Subtotal:   decimal.Zero,
		Discount:   decimal.Zero,
		Shipping:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}

	sess, ok := s.peek(sessionID)
	if !ok {
		return snap
	}

	sess.mu.Lock()
	items := make(map[string]int, len(sess.items))
	for id, qty := range sess.items {
		items[id] = qty
	}
	rule := sess.coupon
	snap.Shipping = sess.shipping
	sess.mu.Unlock()

	// Walk the catalog in load order so line order is deterministic.
	for _, p := range idx.Products() {
		qty, ok := items[p.ID]
		if !ok || qty <= 0 {
			continue
		}
		unit := p.EffectivePrice()
		lineTotal := unit.Mul(decimal.NewFromInt(int64(qty)))
		snap.Lines = append(snap.Lines, Line{
			Product:   p,
			Quantity:  qty,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		snap.ItemCount += qty
		snap.Subtotal = snap.Subtotal.Add(lineTotal)
	}

	if rule != nil {
		snap.CouponCode = rule.Code
		snap.Discount = rule.Apply(snap.Subtotal)
	}

	total := snap.Subtotal.Sub(snap.Discount).Add(snap.Shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}
	snap.Subtotal = snap.Subtotal.Round(2)
	snap.GrandTotal = total.Round(2)
	return snap
}
