package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/stash/internal/core/model"
)

func TestFolderRepoCreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	folder := model.NewFolder("Cooking", nil, []string{"food"}, true)
	assert.NoError(t, st.Folders.Create(ctx, folder))

	byID, err := st.Folders.GetByID(ctx, folder.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Cooking", byID.Label)

	byPath, err := st.Folders.GetByPath(ctx, "Cooking")
	assert.NoError(t, err)
	assert.Equal(t, folder.ID, byPath.ID)
}

func TestFolderRepoCreateDuplicatePath(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	assert.NoError(t, st.Folders.Create(ctx, model.NewFolder("Cooking", nil, nil, false)))
	err := st.Folders.Create(ctx, model.NewFolder("Cooking", nil, nil, false))
	assert.Error(t, err)
}

func TestFolderRepoGetMissing(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, err := st.Folders.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Folders.GetByPath(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFolderRepoDepthAndChildren(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	parent := model.NewFolder("Cooking", nil, nil, false)
	child := model.NewFolder("Recipes", parent, nil, false)
	other := model.NewFolder("Travel", nil, nil, false)
	for _, f := range []*model.Folder{parent, child, other} {
		assert.NoError(t, st.Folders.Create(ctx, f))
	}

	depth1, err := st.Folders.GetByDepth(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, depth1, 2)

	children, err := st.Folders.GetChildren(ctx, parent.ID)
	assert.NoError(t, err)
	assert.Len(t, children, 1)
	assert.Equal(t, "Cooking/Recipes", children[0].Path)
}

func TestFolderRepoIncrementItemCount(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	folder := model.NewFolder("Cooking", nil, nil, false)
	assert.NoError(t, st.Folders.Create(ctx, folder))

	assert.NoError(t, st.Folders.IncrementItemCount(ctx, folder.ID))
	assert.NoError(t, st.Folders.IncrementItemCount(ctx, folder.ID))

	got, err := st.Folders.GetByID(ctx, folder.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, got.ItemCount)

	assert.ErrorIs(t, st.Folders.IncrementItemCount(ctx, "nope"), ErrNotFound)
}

func TestFolderRepoDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	folder := model.NewFolder("Cooking", nil, nil, false)
	assert.NoError(t, st.Folders.Create(ctx, folder))

	deleted, err := st.Folders.Delete(ctx, folder.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = st.Folders.Delete(ctx, folder.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)

	// Path is reusable after deletion.
	assert.NoError(t, st.Folders.Create(ctx, model.NewFolder("Cooking", nil, nil, false)))
}

func TestItemFolderReassociationMoves(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	assert.NoError(t, st.ItemFolders.Associate(ctx, "item-1", "folder-a", nil))
	folderID, err := st.ItemFolders.FolderForItem(ctx, "item-1")
	assert.NoError(t, err)
	assert.Equal(t, "folder-a", folderID)

	// Latest write wins.
	assert.NoError(t, st.ItemFolders.Associate(ctx, "item-1", "folder-b", nil))
	folderID, err = st.ItemFolders.FolderForItem(ctx, "item-1")
	assert.NoError(t, err)
	assert.Equal(t, "folder-b", folderID)

	_, err = st.ItemFolders.FolderForItem(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemsInFolderPagination(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	assert.NoError(t, st.ItemFolders.Associate(ctx, "i1", "f", nil))
	assert.NoError(t, st.ItemFolders.Associate(ctx, "i2", "f", nil))
	assert.NoError(t, st.ItemFolders.Associate(ctx, "i3", "other", nil))

	items, err := st.ItemFolders.ItemsInFolder(ctx, "f", 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"i1", "i2"}, items)

	items, err = st.ItemFolders.ItemsInFolder(ctx, "f", 1, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"i1"}, items)

	items, err = st.ItemFolders.ItemsInFolder(ctx, "f", 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"i2"}, items)

	items, err = st.ItemFolders.ItemsInFolder(ctx, "f", 10, 5)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemsInFolderStableAcrossMoves(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	for _, id := range []string{"i1", "i2", "i3", "i4"} {
		assert.NoError(t, st.ItemFolders.Associate(ctx, id, "f", nil))
	}
	// Moving an item out keeps the remaining page order by association time.
	assert.NoError(t, st.ItemFolders.Associate(ctx, "i2", "other", nil))

	first, err := st.ItemFolders.ItemsInFolder(ctx, "f", 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"i1", "i3"}, first)

	second, err := st.ItemFolders.ItemsInFolder(ctx, "f", 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"i4"}, second)
}

func TestStatsHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	for _, id := range []string{"a", "b", "c"} {
		assert.NoError(t, st.Stats.RecordClassification(ctx, &model.Output{ItemID: id}))
	}

	history, err := st.Stats.ClassificationHistory(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, "c", history[0].ItemID)
	assert.Equal(t, "b", history[1].ItemID)

	all, err := st.Stats.ClassificationHistory(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}
