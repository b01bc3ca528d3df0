package vectorstore

import (
	"context"
	"sort"
	"strings"

	"github.com/agenthands/stash/internal/core/similarity"
	"github.com/agenthands/stash/internal/driver"
)

// MemgraphIndex serves folder vector search off :Folder node embeddings.
// Filtering happens in Cypher; scoring is done client side, the same
// brute-force cosine as the memory index.
type MemgraphIndex struct {
	driver driver.GraphDriver
}

func NewMemgraphIndex(d driver.GraphDriver) *MemgraphIndex {
	return &MemgraphIndex{driver: d}
}

const vectorIDPrefix = "folder_"

func (m *MemgraphIndex) Add(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
	params := map[string]interface{}{
		"folder_id": strings.TrimPrefix(id, vectorIDPrefix),
		"embedding": vector,
	}
	_, err := m.driver.ExecuteQuery(ctx, driver.SaveFolderEmbeddingQuery, params)
	return err
}

func (m *MemgraphIndex) Search(ctx context.Context, query []float32, topK int, filter map[string]any) ([]Result, error) {
	if topK <= 0 {
		topK = 5
	}

	cypher := driver.GetFolderVectorsQuery
	params := map[string]interface{}{}
	if depth, ok := filter["depth"]; ok {
		params["depth"] = depth
	} else {
		params["depth"] = nil
	}
	if parentID, ok := filter["parent_id"]; ok {
		params["parent_id"] = parentID
	} else {
		params["parent_id"] = nil
	}

	res, err := m.driver.ExecuteQuery(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, rec := range res.Records {
		embRaw, _ := rec.Get("embedding")
		vec := toFloat32(embRaw)
		if vec == nil {
			continue
		}
		score, err := similarity.Cosine(query, vec)
		if err != nil {
			continue
		}

		folderID, _ := valueString(rec.Get("folder_id"))
		path, _ := valueString(rec.Get("path"))
		parentID, _ := valueString(rec.Get("parent_id"))
		var depth int
		if v, ok := rec.Get("depth"); ok {
			if n, ok := v.(int64); ok {
				depth = int(n)
			}
		}

		results = append(results, Result{
			ID:    vectorIDPrefix + folderID,
			Score: score,
			Metadata: map[string]any{
				"type":      "folder",
				"folder_id": folderID,
				"path":      path,
				"depth":     depth,
				"parent_id": parentID,
			},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (m *MemgraphIndex) Delete(ctx context.Context, id string) (bool, error) {
	params := map[string]interface{}{
		"folder_id": strings.TrimPrefix(id, vectorIDPrefix),
	}
	res, err := m.driver.ExecuteQuery(ctx, driver.ClearFolderEmbeddingQuery, params)
	if err != nil {
		return false, err
	}
	return len(res.Records) > 0, nil
}

func (m *MemgraphIndex) Get(ctx context.Context, id string) ([]float32, map[string]any, error) {
	params := map[string]interface{}{
		"folder_id": strings.TrimPrefix(id, vectorIDPrefix),
	}
	res, err := m.driver.ExecuteQuery(ctx, driver.GetFolderByIDQuery, params)
	if err != nil {
		return nil, nil, err
	}
	if len(res.Records) == 0 {
		return nil, nil, nil
	}
	rec := res.Records[0]
	embRaw, _ := rec.Get("embedding")
	folderID, _ := valueString(rec.Get("folder_id"))
	path, _ := valueString(rec.Get("path"))
	var depth int
	if v, ok := rec.Get("depth"); ok {
		if n, ok := v.(int64); ok {
			depth = int(n)
		}
	}
	metadata := map[string]any{
		"type":      "folder",
		"folder_id": folderID,
		"path":      path,
		"depth":     depth,
	}
	return toFloat32(embRaw), metadata, nil
}

func toFloat32(v any) []float32 {
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

func valueString(v any, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
