// Package vectorstore provides vector storage with metadata-filtered
// nearest-neighbor search. Backing implementations are swappable; callers
// never see persistence concerns.
package vectorstore

import "context"

// Result is one search hit, ordered by descending score.
type Result struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

// Index stores (id, vector, metadata) triples. Search applies the metadata
// filter (exact match on every key) before scoring; ties in score preserve
// insertion order.
type Index interface {
	Add(ctx context.Context, id string, vector []float32, metadata map[string]any) error
	Search(ctx context.Context, query []float32, topK int, filter map[string]any) ([]Result, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) ([]float32, map[string]any, error)
}
