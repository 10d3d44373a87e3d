package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SCWINCK/CatDist/internal/domain/cart"
	"github.com/SCWINCK/CatDist/internal/domain/catalog"
)

func sampleSnapshot() cart.Snapshot {
	return cart.Snapshot{
		Lines: []cart.Line{
			{
				Product:   catalog.Product{ID: "p1", Name: "Widget"},
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("10.00"),
				LineTotal: decimal.RequireFromString("20.00"),
			},
			{
				Product:   catalog.Product{ID: "p2", Name: "Gadget"},
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("5.50"),
				LineTotal: decimal.RequireFromString("5.50"),
			},
		},
		ItemCount:  3,
		Subtotal:   decimal.RequireFromString("25.50"),
		CouponCode: "DESCONTO10",
		Discount:   decimal.RequireFromString("2.55"),
		Shipping:   decimal.RequireFromString("4.00"),
		GrandTotal: decimal.RequireFromString("26.95"),
	}
}

func TestCartCSV(t *testing.T) {
	data, err := CartCSV(sampleSnapshot())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(records), 5)
	assert.Equal(t, []string{"Product", "Unit Price", "Quantity", "Line Total"}, records[0])
	assert.Equal(t, []string{"Widget", "10.00", "2", "20.00"}, records[1])
	assert.Equal(t, []string{"Gadget", "5.50", "1", "5.50"}, records[2])

	last := records[len(records)-1]
	assert.Equal(t, "Grand Total", last[0])
	assert.Equal(t, "26.95", last[3])
}

func TestCartCSV_EmptyCart(t *testing.T) {
	snap := cart.Snapshot{
		Subtotal:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}
	data, err := CartCSV(snap)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	// Header plus totals only, no line rows.
	assert.Equal(t, "Grand Total", records[len(records)-1][0])
}

func TestCartXLSX(t *testing.T) {
	data, err := CartXLSX(sampleSnapshot())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Cart")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, []string{"Product", "Unit Price", "Quantity", "Line Total"}, rows[0])
	assert.Equal(t, []string{"Widget", "10.00", "2", "20.00"}, rows[1])

	last := rows[len(rows)-1]
	assert.Equal(t, "Grand Total", last[0])
	assert.Equal(t, "26.95", last[3])
}
