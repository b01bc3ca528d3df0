// Package store holds the persistence interfaces for folders, item-folder
// associations, and classification stats. The backend (memory or Memgraph)
// is selected once at startup; nothing downstream branches on which one is
// active.
package store

import (
	"context"
	"errors"

	"github.com/agenthands/stash/internal/core/model"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrRepository indicates the backing database rejected or failed an
// operation. Callers that can degrade (association, stats) log and move on;
// callers that cannot (seed bootstrap) propagate it.
var ErrRepository = errors.New("repository error")

// FolderRepository is the system of record for folders. The matcher's
// in-process cache is rebuilt from it on restart.
type FolderRepository interface {
	Create(ctx context.Context, folder *model.Folder) error
	GetByID(ctx context.Context, id string) (*model.Folder, error)
	GetByPath(ctx context.Context, path string) (*model.Folder, error)
	GetByDepth(ctx context.Context, depth int) ([]*model.Folder, error)
	GetChildren(ctx context.Context, parentID string) ([]*model.Folder, error)
	ListAll(ctx context.Context) ([]*model.Folder, error)
	Update(ctx context.Context, folder *model.Folder) error
	Delete(ctx context.Context, id string) (bool, error)
	IncrementItemCount(ctx context.Context, id string) error
}

// ItemFolderRepository tracks which folder each item lives in. At most one
// active folder per item; re-association overwrites.
type ItemFolderRepository interface {
	Associate(ctx context.Context, itemID, folderID string, metadata map[string]string) error
	FolderForItem(ctx context.Context, itemID string) (string, error)
	ItemsInFolder(ctx context.Context, folderID string, limit, offset int) ([]string, error)
}

// StatsRepository records completed classifications for history queries.
type StatsRepository interface {
	RecordClassification(ctx context.Context, output *model.Output) error
	ClassificationHistory(ctx context.Context, limit int) ([]*model.Output, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Folders     FolderRepository
	ItemFolders ItemFolderRepository
	Stats       StatsRepository
}
