package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/SCWINCK/CatDist/internal/domain/cart"
	"github.com/SCWINCK/CatDist/internal/domain/coupon"
	"github.com/SCWINCK/CatDist/internal/export"
)

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	var e jx.Encoder
	encodeSnapshot(&e, h.carts.Snapshot(sessionID(r)))
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var (
		productID string
		quantity  = 1
	)
	err := jx.Decode(r.Body, 512).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "product_id":
			v, err := d.Str()
			productID = v
			return err
		case "quantity":
			v, err := d.Int()
			quantity = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if productID == "" {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	sid := h.ensureSession(w, r)
	if err := h.carts.Add(sid, productID, quantity); err != nil {
		h.respondCartError(w, r, err)
		return
	}
	h.respondSnapshot(w, sid)
}

func (h *Handler) setItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var (
		quantity int
		seen     bool
	)
	err := jx.Decode(r.Body, 512).Obj(func(d *jx.Decoder, key string) error {
		if key != "quantity" {
			return d.Skip()
		}
		v, err := d.Int()
		quantity = v
		seen = true
		return err
	})
	if err != nil || !seen {
		respondError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	sid := h.ensureSession(w, r)
	if err := h.carts.SetQuantity(sid, productID, quantity); err != nil {
		h.respondCartError(w, r, err)
		return
	}
	h.respondSnapshot(w, sid)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	h.carts.Remove(sid, chi.URLParam(r, "productID"))
	h.respondSnapshot(w, sid)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.carts.Clear(sessionID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var code string
	err := jx.Decode(r.Body, 512).Obj(func(d *jx.Decoder, key string) error {
		if key != "code" {
			return d.Skip()
		}
		v, err := d.Str()
		code = v
		return err
	})
	if err != nil || code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}

	sid := h.ensureSession(w, r)
	if err := h.carts.ApplyCoupon(r.Context(), sid, code); err != nil {
		h.respondCartError(w, r, err)
		return
	}
	h.respondSnapshot(w, sid)
}

func (h *Handler) clearCoupon(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	h.carts.ClearCoupon(sid)
	h.respondSnapshot(w, sid)
}

func (h *Handler) setShipping(w http.ResponseWriter, r *http.Request) {
	var raw string
	err := jx.Decode(r.Body, 512).Obj(func(d *jx.Decoder, key string) error {
		if key != "value" {
			return d.Skip()
		}
		v, err := d.Str()
		raw = v
		return err
	})
	if err != nil || raw == "" {
		respondError(w, http.StatusBadRequest, "value is required")
		return
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "value must be a decimal number")
		return
	}

	sid := h.ensureSession(w, r)
	if err := h.carts.SetShipping(sid, value); err != nil {
		h.respondCartError(w, r, err)
		return
	}
	h.respondSnapshot(w, sid)
}

func (h *Handler) exportCart(w http.ResponseWriter, r *http.Request) {
	snap := h.carts.Snapshot(sessionID(r))

	switch r.URL.Query().Get("format") {
	case "", "csv":
		data, err := export.CartCSV(snap)
		if err != nil {
			respondInternal(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="cart.csv"`)
		_, _ = w.Write(data)
	case "xlsx":
		data, err := export.CartXLSX(snap)
		if err != nil {
			respondInternal(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="cart.xlsx"`)
		_, _ = w.Write(data)
	default:
		respondError(w, http.StatusBadRequest, "format must be csv or xlsx")
	}
}

func (h *Handler) respondSnapshot(w http.ResponseWriter, sessionID string) {
	var e jx.Encoder
	encodeSnapshot(&e, h.carts.Snapshot(sessionID))
	writeJSON(w, http.StatusOK, &e)
}

// respondCartError maps domain errors to status codes; anything unexpected
// becomes an opaque 500.
func (h *Handler) respondCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cart.ErrUnknownProduct):
		respondError(w, http.StatusUnprocessableEntity, "product not in catalog")
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusUnprocessableEntity, "quantity must be greater than 0")
	case errors.Is(err, cart.ErrInvalidShipping):
		respondError(w, http.StatusUnprocessableEntity, "shipping value must not be negative")
	case errors.Is(err, coupon.ErrInvalidCoupon):
		respondError(w, http.StatusUnprocessableEntity, "invalid coupon code")
	default:
		respondInternal(w, r, err)
	}
}
