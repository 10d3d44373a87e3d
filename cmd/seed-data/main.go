// Command seed-data writes sample suppliers and products tabular files into a
// data directory, in both the primary xlsx format and the csv fallback, so a
// fresh checkout can serve a populated catalog.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

func main() {
	var dataDir string
	flag.StringVar(&dataDir, "data-dir", "data", "directory to write the sample files into")
	flag.Parse()

	if err := run(dataDir); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("sample data written", slog.String("dir", dataDir))
}

func run(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return errors.Wrap(err, "create data dir")
	}

	suppliers := [][]string{
		{"id", "name", "logo"},
		{"forn1", "Fornecedor A", "logos/fornA.png"},
		{"forn2", "Fornecedor B", "logos/fornB.png"},
	}

	// Twelve products for the first supplier (every third one on promo) and
	// six for the second, enough to exercise pagination at nine per page.
	products := [][]string{
		{"id", "supplier_id", "name", "price", "promo_price", "image"},
	}
	for i := 1; i <= 12; i++ {
		id := fmt.Sprintf("A%d", i)
		promo := ""
		if i%3 == 0 {
			promo = fmt.Sprintf("%.2f", 9.5+float64(i))
		}
		products = append(products, []string{
			id, "forn1", "Produto " + id,
			fmt.Sprintf("%.2f", 10.0+float64(i)),
			promo,
			"produtos/" + id + ".jpg",
		})
	}
	for i := 1; i <= 6; i++ {
		id := fmt.Sprintf("B%d", i)
		products = append(products, []string{
			id, "forn2", "Produto " + id,
			fmt.Sprintf("%.2f", 20.0+float64(i)),
			"",
			"produtos/" + id + ".jpg",
		})
	}

	for name, rows := range map[string][][]string{
		"suppliers": suppliers,
		"products":  products,
	} {
		if err := writeXLSX(filepath.Join(dataDir, name+".xlsx"), rows); err != nil {
			return errors.Wrapf(err, "write %s.xlsx", name)
		}
		if err := writeCSV(filepath.Join(dataDir, name+".csv"), rows); err != nil {
			return errors.Wrapf(err, "write %s.csv", name)
		}
		slog.Info("dataset written", slog.String("name", name), slog.Int("rows", len(rows)-1))
	}

	return nil
}

func writeXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}
