// Package tabular loads supplier and product records from spreadsheet-like
// source files. Each dataset is tried against an ordered list of loader
// strategies (xlsx, then csv, then gzip-compressed csv at sibling paths);
// the first strategy yielding rows wins. Rows are coerced into strict typed
// records at this boundary so downstream code only ever sees validated data.
package tabular

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/SCWINCK/CatDist/internal/domain/catalog"
)

// ErrSourceUnavailable is returned when no loader strategy could read a
// dataset. The dataset is then empty for the process, which keeps serving.
var ErrSourceUnavailable = errors.New("tabular source unavailable")

// strategy reads raw rows (header first) from one concrete file format.
type strategy struct {
	ext  string
	read func(path string) ([][]string, error)
}

// strategies are tried in order; the primary structured format first, then
// the delimited fallbacks.
var strategies = []strategy{
	{ext: ".xlsx", read: readXLSX},
	{ext: ".csv", read: readCSV},
	{ext: ".csv.gz", read: readGzipCSV},
}

// readRows loads raw rows for the dataset at base (path without extension).
// A strategy whose file is missing, unreadable, or empty is skipped; when all
// strategies fail the error wraps ErrSourceUnavailable.
func readRows(ctx context.Context, base string) ([][]string, error) {
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := s.read(base + s.ext)
		if err != nil || len(rows) == 0 {
			continue
		}
		return rows, nil
	}
	return nil, errors.Wrapf(ErrSourceUnavailable, "dataset %s", base)
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet of %s", path)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	return readCSVStream(f, path)
}

func readGzipCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	return readCSVStream(gz, path)
}

func readCSVStream(r io.Reader, path string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-field downstream
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parse csv %s", path)
	}
	return rows, nil
}

// Datasets holds the two loaded datasets plus all per-row rejections.
type Datasets struct {
	Suppliers []catalog.Supplier
	Products  []catalog.Product
	RowErrors []catalog.RowError
}

// LoadAll loads suppliers and products concurrently from dir. A dataset whose
// source is entirely unavailable comes back empty, not as a failure: the
// catalog degrades rather than crashes. Row-level rejections from both
// datasets are aggregated for the caller's diagnostics.
func LoadAll(ctx context.Context, dir string) (*Datasets, error) {
	var (
		ds           Datasets
		supplierErrs []catalog.RowError
		productErrs  []catalog.RowError
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds.Suppliers, supplierErrs, err = LoadSuppliers(ctx, dir)
		if errors.Is(err, ErrSourceUnavailable) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		ds.Products, productErrs, err = LoadProducts(ctx, dir)
		if errors.Is(err, ErrSourceUnavailable) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.RowErrors = append(ds.RowErrors, supplierErrs...)
	ds.RowErrors = append(ds.RowErrors, productErrs...)
	return &ds, nil
}
