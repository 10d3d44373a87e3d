package app

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/SCWINCK/CatDist/internal/domain/catalog"
	"github.com/SCWINCK/CatDist/internal/tabular"
)

// Reloader rebuilds the catalog index from the tabular sources and publishes
// it. Reloads are serialized; a failed reload leaves the previously published
// index serving.
type Reloader struct {
	mu      sync.Mutex
	holder  *catalog.Holder
	dataDir string
	timeout time.Duration
}

// NewReloader creates a Reloader publishing into holder.
func NewReloader(holder *catalog.Holder, dataDir string, timeout time.Duration) *Reloader {
	return &Reloader{
		holder:  holder,
		dataDir: dataDir,
		timeout: timeout,
	}
}

// Reload loads both datasets, builds a fresh index off to the side, and swaps
// it in only on success. The load is bounded by the configured timeout so a
// hung source never blocks readers indefinitely.
func (r *Reloader) Reload(ctx context.Context) (*catalog.Index, []catalog.RowError, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ds, err := tabular.LoadAll(ctx, r.dataDir)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load tabular sources")
	}

	idx, orphanErrs := catalog.Build(ds.Suppliers, ds.Products)
	rowErrs := append(ds.RowErrors, orphanErrs...)

	r.holder.Publish(idx)

	lg := zctx.From(ctx)
	lg.Info("catalog published",
		zap.Uint64("generation", idx.Generation()),
		zap.Int("suppliers", len(idx.Suppliers())),
		zap.Int("products", len(idx.Products())),
		zap.Int("row_errors", len(rowErrs)),
	)
	for _, re := range rowErrs {
		lg.Warn("row rejected", zap.String("detail", re.Error()))
	}

	return idx, rowErrs, nil
}
