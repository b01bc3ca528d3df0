package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/stash/internal/core/model"
	"github.com/agenthands/stash/internal/driver"
)

// NewMemgraphStore returns a Store backed by a Memgraph graph database.
func NewMemgraphStore(d driver.GraphDriver) *Store {
	return &Store{
		Folders:     &memgraphFolderRepo{driver: d},
		ItemFolders: &memgraphItemFolderRepo{driver: d},
		Stats:       &memgraphStatsRepo{driver: d},
	}
}

type memgraphFolderRepo struct {
	driver driver.GraphDriver
}

func (r *memgraphFolderRepo) Create(ctx context.Context, folder *model.Folder) error {
	return r.save(ctx, folder)
}

func (r *memgraphFolderRepo) Update(ctx context.Context, folder *model.Folder) error {
	folder.UpdatedAt = time.Now().UTC()
	return r.save(ctx, folder)
}

func (r *memgraphFolderRepo) save(ctx context.Context, folder *model.Folder) error {
	params := map[string]interface{}{
		"folder_id":  folder.ID,
		"path":       folder.Path,
		"label":      folder.Label,
		"depth":      folder.Depth,
		"parent_id":  folder.ParentID,
		"aliases":    folder.Aliases,
		"embedding":  folder.Embedding,
		"item_count": folder.ItemCount,
		"is_seed":    folder.IsSeed,
		"owner_id":   folder.OwnerID,
		"created_at": folder.CreatedAt.Format(time.RFC3339),
		"updated_at": folder.UpdatedAt.Format(time.RFC3339),
	}
	if _, err := r.driver.ExecuteQuery(ctx, driver.SaveFolderQuery, params); err != nil {
		return fmt.Errorf("failed to save folder %s: %w: %v", folder.Path, ErrRepository, err)
	}
	return nil
}

func (r *memgraphFolderRepo) GetByID(ctx context.Context, id string) (*model.Folder, error) {
	return r.one(ctx, driver.GetFolderByIDQuery, map[string]interface{}{"folder_id": id})
}

func (r *memgraphFolderRepo) GetByPath(ctx context.Context, path string) (*model.Folder, error) {
	return r.one(ctx, driver.GetFolderByPathQuery, map[string]interface{}{"path": path})
}

func (r *memgraphFolderRepo) GetByDepth(ctx context.Context, depth int) ([]*model.Folder, error) {
	return r.many(ctx, driver.GetFoldersByDepthQuery, map[string]interface{}{"depth": depth})
}

func (r *memgraphFolderRepo) GetChildren(ctx context.Context, parentID string) ([]*model.Folder, error) {
	return r.many(ctx, driver.GetChildrenQuery, map[string]interface{}{"parent_id": parentID})
}

func (r *memgraphFolderRepo) ListAll(ctx context.Context) ([]*model.Folder, error) {
	return r.many(ctx, driver.GetAllFoldersQuery, nil)
}

func (r *memgraphFolderRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.driver.ExecuteQuery(ctx, driver.DeleteFolderQuery, map[string]interface{}{"folder_id": id})
	if err != nil {
		return false, fmt.Errorf("delete folder: %w: %v", ErrRepository, err)
	}
	if len(res.Records) == 0 {
		return false, nil
	}
	deleted, _ := res.Records[0].Get("deleted")
	n, _ := deleted.(int64)
	return n > 0, nil
}

func (r *memgraphFolderRepo) IncrementItemCount(ctx context.Context, id string) error {
	params := map[string]interface{}{
		"folder_id":  id,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	res, err := r.driver.ExecuteQuery(ctx, driver.IncrementItemCountQuery, params)
	if err != nil {
		return fmt.Errorf("increment item count: %w: %v", ErrRepository, err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *memgraphFolderRepo) one(ctx context.Context, query string, params map[string]interface{}) (*model.Folder, error) {
	res, err := r.driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("query folder: %w: %v", ErrRepository, err)
	}
	if len(res.Records) == 0 {
		return nil, ErrNotFound
	}
	return folderFromRecord(res.Records[0]), nil
}

func (r *memgraphFolderRepo) many(ctx context.Context, query string, params map[string]interface{}) ([]*model.Folder, error) {
	res, err := r.driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w: %v", ErrRepository, err)
	}
	folders := make([]*model.Folder, 0, len(res.Records))
	for _, rec := range res.Records {
		folders = append(folders, folderFromRecord(rec))
	}
	return folders, nil
}

func folderFromRecord(rec *neo4j.Record) *model.Folder {
	f := &model.Folder{}
	if v, ok := rec.Get("folder_id"); ok {
		f.ID, _ = v.(string)
	}
	if v, ok := rec.Get("path"); ok {
		f.Path, _ = v.(string)
	}
	if v, ok := rec.Get("label"); ok {
		f.Label, _ = v.(string)
	}
	if v, ok := rec.Get("depth"); ok {
		if n, ok := v.(int64); ok {
			f.Depth = int(n)
		}
	}
	if v, ok := rec.Get("parent_id"); ok {
		f.ParentID, _ = v.(string)
	}
	if v, ok := rec.Get("aliases"); ok {
		f.Aliases = toStringSlice(v)
	}
	if v, ok := rec.Get("embedding"); ok {
		f.Embedding = toFloat32Slice(v)
	}
	if v, ok := rec.Get("item_count"); ok {
		if n, ok := v.(int64); ok {
			f.ItemCount = int(n)
		}
	}
	if v, ok := rec.Get("is_seed"); ok {
		f.IsSeed, _ = v.(bool)
	}
	return f
}

func toStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toFloat32Slice(v interface{}) []float32 {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]float32, 0, len(raw))
	for _, e := range raw {
		if f, ok := e.(float64); ok {
			out = append(out, float32(f))
		}
	}
	return out
}

type memgraphItemFolderRepo struct {
	driver driver.GraphDriver
}

func (r *memgraphItemFolderRepo) Associate(ctx context.Context, itemID, folderID string, metadata map[string]string) error {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	params := map[string]interface{}{
		"item_id":       itemID,
		"folder_id":     folderID,
		"metadata":      string(meta),
		"associated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := r.driver.ExecuteQuery(ctx, driver.AssociateItemQuery, params); err != nil {
		return fmt.Errorf("failed to associate item %s: %w: %v", itemID, ErrRepository, err)
	}
	return nil
}

func (r *memgraphItemFolderRepo) FolderForItem(ctx context.Context, itemID string) (string, error) {
	res, err := r.driver.ExecuteQuery(ctx, driver.GetFolderForItemQuery, map[string]interface{}{"item_id": itemID})
	if err != nil {
		return "", fmt.Errorf("lookup item folder: %w: %v", ErrRepository, err)
	}
	if len(res.Records) == 0 {
		return "", ErrNotFound
	}
	v, _ := res.Records[0].Get("folder_id")
	id, _ := v.(string)
	return id, nil
}

func (r *memgraphItemFolderRepo) ItemsInFolder(ctx context.Context, folderID string, limit, offset int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	params := map[string]interface{}{
		"folder_id": folderID,
		"limit":     limit,
		"offset":    offset,
	}
	res, err := r.driver.ExecuteQuery(ctx, driver.GetItemsInFolderQuery, params)
	if err != nil {
		return nil, fmt.Errorf("list folder items: %w: %v", ErrRepository, err)
	}
	ids := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		if v, ok := rec.Get("item_id"); ok {
			if id, ok := v.(string); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

type memgraphStatsRepo struct {
	driver driver.GraphDriver
}

func (r *memgraphStatsRepo) RecordClassification(ctx context.Context, output *model.Output) error {
	record, err := json.Marshal(output)
	if err != nil {
		return err
	}
	params := map[string]interface{}{
		"item_id":      output.ItemID,
		"final_path":   output.FinalPath,
		"confidence":   output.Confidence,
		"record":       string(record),
		"processed_at": output.ProcessedAt.Format(time.RFC3339),
	}
	if _, err := r.driver.ExecuteQuery(ctx, driver.SaveClassificationQuery, params); err != nil {
		return fmt.Errorf("failed to record classification: %w: %v", ErrRepository, err)
	}
	return nil
}

func (r *memgraphStatsRepo) ClassificationHistory(ctx context.Context, limit int) ([]*model.Output, error) {
	if limit <= 0 {
		limit = 100
	}
	res, err := r.driver.ExecuteQuery(ctx, driver.GetClassificationHistoryQuery, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("load history: %w: %v", ErrRepository, err)
	}
	outputs := make([]*model.Output, 0, len(res.Records))
	for _, rec := range res.Records {
		v, _ := rec.Get("record")
		raw, _ := v.(string)
		var out model.Output
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			continue
		}
		outputs = append(outputs, &out)
	}
	return outputs, nil
}
