// Package catalog holds the distributor catalog domain model: suppliers,
// products, the immutable generation-stamped index built from them, and the
// paginated query path over that index.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Supplier is a distributor listing products in the catalog. Immutable after
// load. Logo is a relative path owned by the asset-serving layer; the core
// never resolves it.
type Supplier struct {
	ID   string
	Name string
	Logo string
}

// Product is a single catalog item. Immutable after load. Image is a relative
// path string, stored verbatim.
type Product struct {
	ID         string
	SupplierID string
	Name       string
	Price      decimal.Decimal
	PromoPrice decimal.NullDecimal
	Image      string
}

// EffectivePrice returns the unit price a customer pays: the lesser of the
// base price and the promotional price when a promo is set, else the base
// price. A promo at or above the base price has no effect.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.PromoPrice.Valid && p.PromoPrice.Decimal.LessThan(p.Price) {
		return p.PromoPrice.Decimal
	}
	return p.Price
}

// RowKind classifies why a source row was rejected.
type RowKind string

const (
	// RowMissingField marks a row lacking a mandatory column value.
	RowMissingField RowKind = "missing_field"
	// RowInvalidNumber marks a row whose numeric column failed to parse.
	RowInvalidNumber RowKind = "invalid_number"
	// RowNegativeValue marks a row with a negative price or promo price.
	RowNegativeValue RowKind = "negative_value"
	// RowOrphanProduct marks a product whose supplier_id matches no supplier.
	RowOrphanProduct RowKind = "orphan_product"
)

// RowError reports a single rejected source row. Rows are skipped and
// collected, never aborting the load; callers decide whether a partial
// catalog is acceptable.
type RowError struct {
	Row    int
	Field  string
	Kind   RowKind
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s (%s %s)", e.Row, e.Reason, e.Kind, e.Field)
}
