// Package export renders a priced cart snapshot to downloadable tabular
// formats.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/SCWINCK/CatDist/internal/domain/cart"
)

var headerRow = []string{"Product", "Unit Price", "Quantity", "Line Total"}

// CartCSV renders the snapshot as a CSV document with a totals footer.
func CartCSV(snap cart.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{headerRow}
	for _, line := range snap.Lines {
		records = append(records, []string{
			line.Product.Name,
			line.UnitPrice.StringFixed(2),
			strconv.Itoa(line.Quantity),
			line.LineTotal.StringFixed(2),
		})
	}
	records = append(records, footerRows(snap)...)

	if err := w.WriteAll(records); err != nil {
		return nil, errors.Wrap(err, "write csv")
	}
	return buf.Bytes(), nil
}

// CartXLSX renders the snapshot as an xlsx workbook with a single sheet.
func CartXLSX(snap cart.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Cart"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rowNum := 1
	writeRow := func(cells []string) error {
		addr, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		rowNum++
		row := make([]any, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		return f.SetSheetRow(sheet, addr, &row)
	}

	if err := writeRow(headerRow); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	for _, line := range snap.Lines {
		err := writeRow([]string{
			line.Product.Name,
			line.UnitPrice.StringFixed(2),
			strconv.Itoa(line.Quantity),
			line.LineTotal.StringFixed(2),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "write line %s", line.Product.ID)
		}
	}
	for _, r := range footerRows(snap) {
		if err := writeRow(r); err != nil {
			return nil, errors.Wrap(err, "write footer")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "serialize workbook")
	}
	return buf.Bytes(), nil
}

// footerRows builds the totals block appended after the line items. Coupon
// and shipping rows appear only when they affect the total.
func footerRows(snap cart.Snapshot) [][]string {
	rows := [][]string{
		{},
		{"Subtotal", "", "", snap.Subtotal.StringFixed(2)},
	}
	if snap.CouponCode != "" {
		rows = append(rows, []string{"Discount (" + snap.CouponCode + ")", "", "", "-" + snap.Discount.StringFixed(2)})
	}
	if !snap.Shipping.IsZero() {
		rows = append(rows, []string{"Shipping", "", "", snap.Shipping.StringFixed(2)})
	}
	return append(rows, []string{"Grand Total", "", "", snap.GrandTotal.StringFixed(2)})
}
