package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/stockroomapp/stockroom-server/internal/errors"
	"github.com/stockroomapp/stockroom-server/internal/store/sqlite"
)

// setupCatalogTest creates catalog and tag services over one temporary store.
func setupCatalogTest(t *testing.T) (*CatalogService, *TagService) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewCatalogService(s, logger), NewTagService(s, logger)
}

func TestCatalogService_CreateStore(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, "Shop1", st.Name)

	got, err := catalog.GetStore(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)
}

func TestCatalogService_CreateStore_Duplicate(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	_, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)

	_, err = catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestCatalogService_CreateStore_Validation(t *testing.T) {
	catalog, _ := setupCatalogTest(t)

	_, err := catalog.CreateStore(context.Background(), CreateStoreRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCatalogService_ListStores(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	_, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Zeta"})
	require.NoError(t, err)
	_, err = catalog.CreateStore(ctx, CreateStoreRequest{Name: "Alpha"})
	require.NoError(t, err)

	stores, err := catalog.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Alpha", stores[0].Name)
	assert.Equal(t, "Zeta", stores[1].Name)
}

func TestCatalogService_DeleteStore(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteStore(ctx, st.ID))

	_, err = catalog.GetStore(ctx, st.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = catalog.DeleteStore(ctx, st.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_DeleteStore_WithItems(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)
	_, err = catalog.CreateItem(ctx, CreateItemRequest{Name: "Widget", Price: 9.99, StoreID: st.ID})
	require.NoError(t, err)

	err = catalog.DeleteStore(ctx, st.ID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestCatalogService_CreateItem(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)

	item, err := catalog.CreateItem(ctx, CreateItemRequest{Name: "Widget", Price: 9.99, StoreID: st.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, st.ID, item.StoreID)

	got, err := catalog.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 9.99, got.Price)
}

func TestCatalogService_CreateItem_UnknownStore(t *testing.T) {
	catalog, _ := setupCatalogTest(t)

	_, err := catalog.CreateItem(context.Background(), CreateItemRequest{
		Name:    "Widget",
		Price:   1,
		StoreID: "store-missing",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_CreateItem_NegativePrice(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)

	_, err = catalog.CreateItem(ctx, CreateItemRequest{Name: "Widget", Price: -1, StoreID: st.ID})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCatalogService_UpdateItem(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)
	item, err := catalog.CreateItem(ctx, CreateItemRequest{Name: "Widget", Price: 10, StoreID: st.ID})
	require.NoError(t, err)

	updated, err := catalog.UpdateItem(ctx, item.ID, UpdateItemRequest{Name: "Gadget", Price: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, st.ID, updated.StoreID)
}

func TestCatalogService_UpdateItem_NotFound(t *testing.T) {
	catalog, _ := setupCatalogTest(t)

	_, err := catalog.UpdateItem(context.Background(), "item-missing", UpdateItemRequest{Name: "Gadget", Price: 1})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_DeleteItem(t *testing.T) {
	catalog, _ := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)
	item, err := catalog.CreateItem(ctx, CreateItemRequest{Name: "Widget", Price: 10, StoreID: st.ID})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteItem(ctx, item.ID))

	_, err = catalog.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
