package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/SCWINCK/CatDist/internal/domain/catalog"
)

func (h *Handler) listSuppliers(w http.ResponseWriter, _ *http.Request) {
	idx := h.catalog.Load()

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("suppliers")
	e.ArrStart()
	for _, s := range idx.Suppliers() {
		encodeSupplier(&e, s)
	}
	e.ArrEnd()
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
		page = n
	}

	result := catalog.List(h.catalog.Load(), r.URL.Query().Get("supplier_id"), page)

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("items")
	e.ArrStart()
	for _, p := range result.Items {
		encodeProduct(&e, p)
	}
	e.ArrEnd()
	e.FieldStart("total_count")
	e.Int(result.TotalCount)
	e.FieldStart("total_pages")
	e.Int(result.TotalPages)
	e.FieldStart("page")
	e.Int(result.Page)
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) reloadCatalog(w http.ResponseWriter, r *http.Request) {
	if h.reload == nil {
		respondError(w, http.StatusServiceUnavailable, "reload not configured")
		return
	}

	idx, rowErrs, err := h.reload(r.Context())
	if err != nil {
		// The previous index keeps serving; report the failure to the caller.
		zctx.From(r.Context()).Error("catalog reload failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "catalog reload failed: "+err.Error())
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("generation")
	e.UInt64(idx.Generation())
	e.FieldStart("suppliers")
	e.Int(len(idx.Suppliers()))
	e.FieldStart("products")
	e.Int(len(idx.Products()))
	e.FieldStart("row_errors")
	e.ArrStart()
	for _, re := range rowErrs {
		e.Str(re.Error())
	}
	e.ArrEnd()
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}
