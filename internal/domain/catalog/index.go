package catalog

import "sync/atomic"

// buildSeq stamps each built index with a monotonically increasing generation.
var buildSeq atomic.Uint64

// Index is an immutable snapshot of the catalog. It is built wholesale by
// Build and never mutated afterwards; a reload produces a brand-new Index
// that replaces the old one via Holder. In-flight readers holding the old
// snapshot stay consistent.
type Index struct {
	generation uint64

	suppliers   map[string]Supplier
	supplierIDs []string

	products           []Product
	productsByID       map[string]Product
	productsBySupplier map[string][]string
}

// Build constructs an Index from loaded suppliers and products. Products
// referencing an unknown supplier are rejected and reported as
// RowOrphanProduct errors; the row index in those errors is the product's
// position in the input slice. Input order is preserved and becomes the
// catalog's default iteration and pagination order.
func Build(suppliers []Supplier, products []Product) (*Index, []RowError) {
	idx := &Index{
		generation:         buildSeq.Add(1),
		suppliers:          make(map[string]Supplier, len(suppliers)),
		supplierIDs:        make([]string, 0, len(suppliers)),
		products:           make([]Product, 0, len(products)),
		productsByID:       make(map[string]Product, len(products)),
		productsBySupplier: make(map[string][]string, len(suppliers)),
	}

	for _, s := range suppliers {
		if _, dup := idx.suppliers[s.ID]; !dup {
			idx.supplierIDs = append(idx.supplierIDs, s.ID)
		}
		idx.suppliers[s.ID] = s
	}

	var errs []RowError
	for i, p := range products {
		if _, ok := idx.suppliers[p.SupplierID]; !ok {
			errs = append(errs, RowError{
				Row:    i,
				Field:  "supplier_id",
				Kind:   RowOrphanProduct,
				Reason: "product " + p.ID + " references unknown supplier " + p.SupplierID,
			})
			continue
		}
		idx.products = append(idx.products, p)
		idx.productsByID[p.ID] = p
		idx.productsBySupplier[p.SupplierID] = append(idx.productsBySupplier[p.SupplierID], p.ID)
	}

	return idx, errs
}

// Generation returns the index's build generation stamp.
func (i *Index) Generation() uint64 { return i.generation }

// Suppliers returns all suppliers in load order.
func (i *Index) Suppliers() []Supplier {
	out := make([]Supplier, len(i.supplierIDs))
	for n, id := range i.supplierIDs {
		out[n] = i.suppliers[id]
	}
	return out
}

// Supplier looks up a supplier by id.
func (i *Index) Supplier(id string) (Supplier, bool) {
	s, ok := i.suppliers[id]
	return s, ok
}

// Products returns all products in load order. The returned slice is shared;
// callers must not modify it.
func (i *Index) Products() []Product { return i.products }

// Product looks up a product by id.
func (i *Index) Product(id string) (Product, bool) {
	p, ok := i.productsByID[id]
	return p, ok
}

// ProductsBySupplier returns the supplier's products in load order.
func (i *Index) ProductsBySupplier(supplierID string) []Product {
	ids := i.productsBySupplier[supplierID]
	out := make([]Product, len(ids))
	for n, id := range ids {
		out[n] = i.productsByID[id]
	}
	return out
}

// Holder publishes the current Index snapshot. Readers never block a swap and
// a swap never tears a reader: Load returns whichever complete snapshot was
// current at call time.
type Holder struct {
	ptr atomic.Pointer[Index]
}

// NewHolder creates a Holder publishing the given initial index.
func NewHolder(idx *Index) *Holder {
	h := &Holder{}
	h.ptr.Store(idx)
	return h
}

// Load returns the currently published snapshot.
func (h *Holder) Load() *Index { return h.ptr.Load() }

// Publish atomically replaces the published snapshot.
func (h *Holder) Publish(idx *Index) { h.ptr.Store(idx) }
