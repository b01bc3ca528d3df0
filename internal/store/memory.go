package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agenthands/stash/internal/core/model"
)

// NewMemoryStore returns a Store backed entirely by process memory.
func NewMemoryStore() *Store {
	return &Store{
		Folders:     newMemoryFolderRepo(),
		ItemFolders: newMemoryItemFolderRepo(),
		Stats:       newMemoryStatsRepo(),
	}
}

type memoryFolderRepo struct {
	mu     sync.RWMutex
	byID   map[string]*model.Folder
	byPath map[string]*model.Folder
	order  []string
}

func newMemoryFolderRepo() *memoryFolderRepo {
	return &memoryFolderRepo{
		byID:   make(map[string]*model.Folder),
		byPath: make(map[string]*model.Folder),
	}
}

func (r *memoryFolderRepo) Create(ctx context.Context, folder *model.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byPath[folder.Path]; exists {
		return fmt.Errorf("folder path already exists: %s", folder.Path)
	}
	clone := *folder
	r.byID[folder.ID] = &clone
	r.byPath[folder.Path] = &clone
	r.order = append(r.order, folder.ID)
	return nil
}

func (r *memoryFolderRepo) GetByID(ctx context.Context, id string) (*model.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *memoryFolderRepo) GetByPath(ctx context.Context, path string) (*model.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byPath[path]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *memoryFolderRepo) GetByDepth(ctx context.Context, depth int) ([]*model.Folder, error) {
	return r.collect(func(f *model.Folder) bool { return f.Depth == depth })
}

func (r *memoryFolderRepo) GetChildren(ctx context.Context, parentID string) ([]*model.Folder, error) {
	return r.collect(func(f *model.Folder) bool { return f.ParentID == parentID })
}

func (r *memoryFolderRepo) ListAll(ctx context.Context) ([]*model.Folder, error) {
	return r.collect(func(*model.Folder) bool { return true })
}

func (r *memoryFolderRepo) collect(keep func(*model.Folder) bool) ([]*model.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Folder
	for _, id := range r.order {
		f := r.byID[id]
		if f != nil && keep(f) {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memoryFolderRepo) Update(ctx context.Context, folder *model.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[folder.ID]
	if !ok {
		return ErrNotFound
	}
	delete(r.byPath, existing.Path)
	clone := *folder
	clone.UpdatedAt = time.Now().UTC()
	r.byID[folder.ID] = &clone
	r.byPath[clone.Path] = &clone
	return nil
}

func (r *memoryFolderRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byID, id)
	delete(r.byPath, f.Path)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *memoryFolderRepo) IncrementItemCount(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	f.ItemCount++
	f.UpdatedAt = time.Now().UTC()
	return nil
}

type memoryItemFolderRepo struct {
	mu    sync.RWMutex
	items map[string]*model.ItemFolder
	order []string
}

func newMemoryItemFolderRepo() *memoryItemFolderRepo {
	return &memoryItemFolderRepo{items: make(map[string]*model.ItemFolder)}
}

func (r *memoryItemFolderRepo) Associate(ctx context.Context, itemID, folderID string, metadata map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.items[itemID]; ok && existing.FolderID != folderID {
		// Latest write wins; record the move.
		r.items[itemID] = &model.ItemFolder{
			ItemID:       itemID,
			FolderID:     folderID,
			Metadata:     metadata,
			AssociatedAt: existing.AssociatedAt,
			MovedAt:      &now,
		}
		return nil
	}

	if _, ok := r.items[itemID]; !ok {
		r.order = append(r.order, itemID)
	}
	r.items[itemID] = &model.ItemFolder{
		ItemID:       itemID,
		FolderID:     folderID,
		Metadata:     metadata,
		AssociatedAt: now,
	}
	return nil
}

func (r *memoryItemFolderRepo) FolderForItem(ctx context.Context, itemID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assoc, ok := r.items[itemID]
	if !ok {
		return "", ErrNotFound
	}
	return assoc.FolderID, nil
}

func (r *memoryItemFolderRepo) ItemsInFolder(ctx context.Context, folderID string, limit, offset int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, id := range r.order {
		if assoc, ok := r.items[id]; ok && assoc.FolderID == folderID {
			ids = append(ids, id)
		}
	}
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type memoryStatsRepo struct {
	mu      sync.RWMutex
	records []*model.Output
}

func newMemoryStatsRepo() *memoryStatsRepo {
	return &memoryStatsRepo{}
}

func (r *memoryStatsRepo) RecordClassification(ctx context.Context, output *model.Output) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, output)
	return nil
}

func (r *memoryStatsRepo) ClassificationHistory(ctx context.Context, limit int) ([]*model.Output, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}
	// Newest first.
	out := make([]*model.Output, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
