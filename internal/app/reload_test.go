package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SCWINCK/CatDist/internal/domain/catalog"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReloader_PublishesFreshIndex(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "suppliers.csv", "id,name\ns1,Supplier One\n")
	writeDataset(t, dir, "products.csv",
		"id,supplier_id,name,price\np1,s1,Widget,10.00\np2,ghost,Orphan,1.00\n")

	empty, _ := catalog.Build(nil, nil)
	holder := catalog.NewHolder(empty)
	r := NewReloader(holder, dir, 5*time.Second)

	idx, rowErrs, err := r.Reload(context.Background())
	require.NoError(t, err)

	assert.Same(t, idx, holder.Load())
	assert.Len(t, idx.Products(), 1)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, catalog.RowOrphanProduct, rowErrs[0].Kind)
	assert.Greater(t, idx.Generation(), empty.Generation())
}

func TestReloader_MissingSourcesYieldEmptyCatalog(t *testing.T) {
	empty, _ := catalog.Build(nil, nil)
	holder := catalog.NewHolder(empty)
	r := NewReloader(holder, t.TempDir(), 5*time.Second)

	// A completely unavailable source is degradation, not failure: the
	// process serves an empty catalog.
	idx, rowErrs, err := r.Reload(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Empty(t, idx.Products())
	assert.Empty(t, idx.Suppliers())
}

func TestReloader_FailureKeepsOldIndex(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "suppliers.csv", "id,name\ns1,Supplier One\n")
	writeDataset(t, dir, "products.csv", "id,supplier_id,name,price\np1,s1,Widget,10.00\n")

	empty, _ := catalog.Build(nil, nil)
	holder := catalog.NewHolder(empty)
	r := NewReloader(holder, dir, 5*time.Second)

	good, _, err := r.Reload(context.Background())
	require.NoError(t, err)
	require.Same(t, good, holder.Load())

	// A cancelled reload surfaces the error and leaves the previous good
	// index published.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = r.Reload(ctx)
	require.Error(t, err)
	assert.Same(t, good, holder.Load())
}
