package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomapp/stockroom-server/internal/domain"
	domainerrors "github.com/stockroomapp/stockroom-server/internal/errors"
)

// seedStoreWithItem creates a store and one item in it.
func seedStoreWithItem(t *testing.T, catalog *CatalogService, storeName, itemName string) (*domain.Store, *domain.Item) {
	t.Helper()
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: storeName})
	require.NoError(t, err)
	item, err := catalog.CreateItem(ctx, CreateItemRequest{Name: itemName, Price: 10, StoreID: st.ID})
	require.NoError(t, err)
	return st, item
}

func TestTagService_CreateTag(t *testing.T) {
	catalog, tags := setupCatalogTest(t)
	ctx := context.Background()

	st, _ := seedStoreWithItem(t, catalog, "Shop1", "Widget")

	tag, err := tags.CreateTag(ctx, st.ID, CreateTagRequest{Name: "sale"})
	require.NoError(t, err)
	assert.NotEmpty(t, tag.ID)
	assert.Equal(t, st.ID, tag.StoreID)

	got, err := tags.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "sale", got.Name)
}

func TestTagService_CreateTag_DuplicateInStore(t *testing.T) {
	catalog, tags := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)
	other, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop2"})
	require.NoError(t, err)

	_, err = tags.CreateTag(ctx, st.ID, CreateTagRequest{Name: "sale"})
	require.NoError(t, err)

	_, err = tags.CreateTag(ctx, st.ID, CreateTagRequest{Name: "sale"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	// Same name in another store is allowed.
	_, err = tags.CreateTag(ctx, other.ID, CreateTagRequest{Name: "sale"})
	assert.NoError(t, err)
}

func TestTagService_CreateTag_UnknownStore(t *testing.T) {
	_, tags := setupCatalogTest(t)

	_, err := tags.CreateTag(context.Background(), "store-missing", CreateTagRequest{Name: "sale"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTagService_ListStoreTags(t *testing.T) {
	catalog, tags := setupCatalogTest(t)
	ctx := context.Background()

	st, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop1"})
	require.NoError(t, err)

	_, err = tags.CreateTag(ctx, st.ID, CreateTagRequest{Name: "sale"})
	require.NoError(t, err)
	_, err = tags.CreateTag(ctx, st.ID, CreateTagRequest{Name: "new"})
	require.NoError(t, err)

	list, err := tags.ListStoreTags(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = tags.ListStoreTags(ctx, "store-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTagService_LinkAndUnlink(t *testing.T) {
	catalog, tags := setupCatalogTest(t)
	ctx := context.Background()

	st, item := seedStoreWithItem(t, catalog, "Shop1", "Widget")
	tag, err := tags.CreateTag(ctx, st.ID, CreateTagRequest{Name: "sale"})
	require.NoError(t, err)

	linked, err := tags.LinkTagToItem(ctx, item.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag.ID, linked.ID)

	itemTags, err := tags.ListItemTags(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, itemTags, 1)
	assert.Equal(t, tag.ID, itemTags[0].ID)

	// Linking twice is a no-op success.
	_, err = tags.LinkTagToItem(ctx, item.ID, tag.ID)
	assert.NoError(t, err)

	require.NoError(t, tags.UnlinkTagFromItem(ctx, item.ID, tag.ID))

	itemTags, err = tags.ListItemTags(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, itemTags)

	// Unlinking an absent link is also a no-op success.
	assert.NoError(t, tags.UnlinkTagFromItem(ctx, item.ID, tag.ID))
}

func TestTagService_Link_CrossStore(t *testing.T) {
	catalog, tags := setupCatalogTest(t)
	ctx := context.Background()

	_, item := seedStoreWithItem(t, catalog, "Shop1", "Widget")
	other, err := catalog.CreateStore(ctx, CreateStoreRequest{Name: "Shop2"})
	require.NoError(t, err)
	tag, err := tags.CreateTag(ctx, other.ID, CreateTagRequest{Name: "sale"})
	require.NoError(t, err)

	_, err = tags.LinkTagToItem(ctx, item.ID, tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCrossStoreLink)

	// Nothing was linked.
	itemTags, err := tags.ListItemTags(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, itemTags)
}

func TestTagService_Link_MissingSides(t *testing.T) {
	catalog, tags := setupCatalogTest(t)
	ctx := context.Background()

	st, item := seedStoreWithItem(t, catalog, "Shop1", "Widget")
	tag, err := tags.CreateTag(ctx, st.ID, CreateTagRequest{Name: "sale"})
	require.NoError(t, err)

	_, err = tags.LinkTagToItem(ctx, "item-missing", tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = tags.LinkTagToItem(ctx, item.ID, "tag-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = tags.UnlinkTagFromItem(ctx, "item-missing", tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTagService_DeleteTag_InUse(t *testing.T) {
	catalog, tags := setupCatalogTest(t)
	ctx := context.Background()

	st, item := seedStoreWithItem(t, catalog, "Shop1", "Widget")
	tag, err := tags.CreateTag(ctx, st.ID, CreateTagRequest{Name: "sale"})
	require.NoError(t, err)

	_, err = tags.LinkTagToItem(ctx, item.ID, tag.ID)
	require.NoError(t, err)

	err = tags.DeleteTag(ctx, tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTagInUse)

	require.NoError(t, tags.UnlinkTagFromItem(ctx, item.ID, tag.ID))
	require.NoError(t, tags.DeleteTag(ctx, tag.ID))

	_, err = tags.GetTag(ctx, tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTagService_DeleteTag_NotFound(t *testing.T) {
	_, tags := setupCatalogTest(t)

	err := tags.DeleteTag(context.Background(), "tag-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
