package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryIndexSearchOrdersByScore(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	assert.NoError(t, idx.Add(ctx, "far", []float32{0, 1}, map[string]any{"depth": 1}))
	assert.NoError(t, idx.Add(ctx, "near", []float32{1, 0.1}, map[string]any{"depth": 1}))
	assert.NoError(t, idx.Add(ctx, "exact", []float32{1, 0}, map[string]any{"depth": 1}))

	results, err := idx.Search(ctx, []float32{1, 0}, 5, nil)

	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "exact", results[0].ID)
	assert.Equal(t, "near", results[1].ID)
	assert.Equal(t, "far", results[2].ID)
}

func TestMemoryIndexSearchAppliesFilter(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	assert.NoError(t, idx.Add(ctx, "d1", []float32{1, 0}, map[string]any{"depth": 1, "parent_id": ""}))
	assert.NoError(t, idx.Add(ctx, "d2a", []float32{1, 0}, map[string]any{"depth": 2, "parent_id": "a"}))
	assert.NoError(t, idx.Add(ctx, "d2b", []float32{1, 0}, map[string]any{"depth": 2, "parent_id": "b"}))

	results, err := idx.Search(ctx, []float32{1, 0}, 5, map[string]any{"depth": 2, "parent_id": "a"})

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "d2a", results[0].ID)
}

func TestMemoryIndexEqualScoresKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	assert.NoError(t, idx.Add(ctx, "first", []float32{1, 0}, nil))
	assert.NoError(t, idx.Add(ctx, "second", []float32{1, 0}, nil))
	assert.NoError(t, idx.Add(ctx, "third", []float32{1, 0}, nil))

	results, err := idx.Search(ctx, []float32{1, 0}, 5, nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, []string{results[0].ID, results[1].ID, results[2].ID})
}

func TestMemoryIndexSearchTruncatesToTopK(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	for _, id := range []string{"a", "b", "c", "d"} {
		assert.NoError(t, idx.Add(ctx, id, []float32{1, 0}, nil))
	}

	results, err := idx.Search(ctx, []float32{1, 0}, 2, nil)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestMemoryIndexAddUpserts(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	assert.NoError(t, idx.Add(ctx, "v", []float32{0, 1}, map[string]any{"path": "old"}))
	assert.NoError(t, idx.Add(ctx, "v", []float32{1, 0}, map[string]any{"path": "new"}))

	vec, meta, err := idx.Get(ctx, "v")
	assert.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
	assert.Equal(t, "new", meta["path"])
}

func TestMemoryIndexDelete(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	assert.NoError(t, idx.Add(ctx, "a", []float32{1, 0}, nil))
	assert.NoError(t, idx.Add(ctx, "b", []float32{0, 1}, nil))

	deleted, err := idx.Delete(ctx, "a")
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = idx.Delete(ctx, "a")
	assert.NoError(t, err)
	assert.False(t, deleted)

	results, err := idx.Search(ctx, []float32{0, 1}, 5, nil)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "b", results[0].ID)
}
