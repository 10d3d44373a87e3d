package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/SCWINCK/CatDist/internal/domain/cart"
	"github.com/SCWINCK/CatDist/internal/domain/catalog"
)

// writeJSON sends the encoder's buffer with the given status code.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// respondError sends the standard {code, message} error body.
func respondError(w http.ResponseWriter, status int, message string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Int(status)
	e.FieldStart("message")
	e.Str(message)
	e.ObjEnd()
	writeJSON(w, status, &e)
}

// respondInternal logs the error and sends an opaque 500.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	respondError(w, http.StatusInternalServerError, "internal error")
}

func encodeSupplier(e *jx.Encoder, s catalog.Supplier) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(s.ID)
	e.FieldStart("name")
	e.Str(s.Name)
	if s.Logo != "" {
		e.FieldStart("logo")
		e.Str(s.Logo)
	}
	e.ObjEnd()
}

// encodeProduct writes a product with all price fields as fixed two-decimal
// strings. Formatting happens only here, at the boundary.
func encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(p.ID)
	e.FieldStart("supplier_id")
	e.Str(p.SupplierID)
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("price")
	e.Str(p.Price.StringFixed(2))
	if p.PromoPrice.Valid {
		e.FieldStart("promo_price")
		e.Str(p.PromoPrice.Decimal.StringFixed(2))
	}
	e.FieldStart("effective_price")
	e.Str(p.EffectivePrice().StringFixed(2))
	if p.Image != "" {
		e.FieldStart("image")
		e.Str(p.Image)
	}
	e.ObjEnd()
}

func encodeSnapshot(e *jx.Encoder, snap cart.Snapshot) {
	e.ObjStart()
	e.FieldStart("lines")
	e.ArrStart()
	for _, line := range snap.Lines {
		e.ObjStart()
		e.FieldStart("product")
		encodeProduct(e, line.Product)
		e.FieldStart("quantity")
		e.Int(line.Quantity)
		e.FieldStart("unit_price")
		e.Str(line.UnitPrice.StringFixed(2))
		e.FieldStart("line_total")
		e.Str(line.LineTotal.StringFixed(2))
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("item_count")
	e.Int(snap.ItemCount)
	e.FieldStart("subtotal")
	e.Str(snap.Subtotal.StringFixed(2))
	if snap.CouponCode != "" {
		e.FieldStart("coupon_code")
		e.Str(snap.CouponCode)
		e.FieldStart("discount")
		e.Str(snap.Discount.StringFixed(2))
	}
	if !snap.Shipping.IsZero() {
		e.FieldStart("shipping")
		e.Str(snap.Shipping.StringFixed(2))
	}
	e.FieldStart("grand_total")
	e.Str(snap.GrandTotal.StringFixed(2))
	e.ObjEnd()
}
