package tabular

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SCWINCK/CatDist/internal/domain/catalog"
)

// header maps lowercased column names to their index in a row.
type header map[string]int

func parseHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

// cell returns the trimmed value of the named column, or "" when the column
// is absent or the row is too short.
func (h header) cell(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// LoadSuppliers loads the suppliers dataset from dir. Rows failing validation
// are skipped and reported; a duplicated id keeps the later row's data.
func LoadSuppliers(ctx context.Context, dir string) ([]catalog.Supplier, []catalog.RowError, error) {
	rows, err := readRows(ctx, filepath.Join(dir, "suppliers"))
	if err != nil {
		return nil, nil, err
	}

	h := parseHeader(rows[0])
	var (
		out      []catalog.Supplier
		rowErrs  []catalog.RowError
		position = make(map[string]int)
	)
	for n, row := range rows[1:] {
		rowNum := n + 2 // 1-based, counting the header row

		id := h.cell(row, "id")
		if id == "" {
			rowErrs = append(rowErrs, catalog.RowError{
				Row: rowNum, Field: "id", Kind: catalog.RowMissingField,
				Reason: "supplier id is required",
			})
			continue
		}

		s := catalog.Supplier{
			ID:   id,
			Name: h.cell(row, "name"),
			Logo: normalizeRelPath(h.cell(row, "logo")),
		}
		if at, dup := position[id]; dup {
			out[at] = s // later row wins
			continue
		}
		position[id] = len(out)
		out = append(out, s)
	}
	return out, rowErrs, nil
}

// LoadProducts loads the products dataset from dir. The id, supplier_id and
// price columns are mandatory; promo_price is optional. Rows failing
// validation are skipped and reported; a duplicated id keeps the later row's
// data. Referential integrity against suppliers is checked later, at index
// build time.
func LoadProducts(ctx context.Context, dir string) ([]catalog.Product, []catalog.RowError, error) {
	rows, err := readRows(ctx, filepath.Join(dir, "products"))
	if err != nil {
		return nil, nil, err
	}

	h := parseHeader(rows[0])
	var (
		out      []catalog.Product
		rowErrs  []catalog.RowError
		position = make(map[string]int)
	)
	for n, row := range rows[1:] {
		rowNum := n + 2

		p, rowErr := parseProduct(h, row, rowNum)
		if rowErr != nil {
			rowErrs = append(rowErrs, *rowErr)
			continue
		}

		if at, dup := position[p.ID]; dup {
			out[at] = p
			continue
		}
		position[p.ID] = len(out)
		out = append(out, p)
	}
	return out, rowErrs, nil
}

func parseProduct(h header, row []string, rowNum int) (catalog.Product, *catalog.RowError) {
	var p catalog.Product

	p.ID = h.cell(row, "id")
	if p.ID == "" {
		return p, &catalog.RowError{
			Row: rowNum, Field: "id", Kind: catalog.RowMissingField,
			Reason: "product id is required",
		}
	}
	p.SupplierID = h.cell(row, "supplier_id")
	if p.SupplierID == "" {
		return p, &catalog.RowError{
			Row: rowNum, Field: "supplier_id", Kind: catalog.RowMissingField,
			Reason: "supplier_id is required",
		}
	}
	p.Name = h.cell(row, "name")
	p.Image = normalizeRelPath(h.cell(row, "image"))

	raw := h.cell(row, "price")
	if raw == "" {
		return p, &catalog.RowError{
			Row: rowNum, Field: "price", Kind: catalog.RowMissingField,
			Reason: "price is required",
		}
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return p, &catalog.RowError{
			Row: rowNum, Field: "price", Kind: catalog.RowInvalidNumber,
			Reason: "price " + raw + " is not a number",
		}
	}
	if price.IsNegative() {
		return p, &catalog.RowError{
			Row: rowNum, Field: "price", Kind: catalog.RowNegativeValue,
			Reason: "price " + raw + " is negative",
		}
	}
	p.Price = price

	if raw = h.cell(row, "promo_price"); raw != "" {
		promo, err := decimal.NewFromString(raw)
		if err != nil {
			return p, &catalog.RowError{
				Row: rowNum, Field: "promo_price", Kind: catalog.RowInvalidNumber,
				Reason: "promo_price " + raw + " is not a number",
			}
		}
		if promo.IsNegative() {
			return p, &catalog.RowError{
				Row: rowNum, Field: "promo_price", Kind: catalog.RowNegativeValue,
				Reason: "promo_price " + raw + " is negative",
			}
		}
		p.PromoPrice = decimal.NullDecimal{Decimal: promo, Valid: true}
	}

	return p, nil
}

// normalizeRelPath converts Windows-style separators in stored image and logo
// paths. The path itself is opaque to the core; resolution belongs to the
// asset-serving layer.
func normalizeRelPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
