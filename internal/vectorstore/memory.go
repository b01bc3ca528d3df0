package vectorstore

import (
	"context"
	"sort"
	"sync"

	"github.com/agenthands/stash/internal/core/similarity"
)

type memoryEntry struct {
	id       string
	vector   []float32
	metadata map[string]any
}

// MemoryIndex is a brute-force in-memory index. Entries keep insertion order
// so equal-score search results are stable.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries []memoryEntry
	byID    map[string]int
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{byID: make(map[string]int)}
}

func (m *MemoryIndex) Add(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{id: id, vector: vector, metadata: metadata}
	if i, ok := m.byID[id]; ok {
		m.entries[i] = entry
		return nil
	}
	m.byID[id] = len(m.entries)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MemoryIndex) Search(ctx context.Context, query []float32, topK int, filter map[string]any) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if topK <= 0 {
		topK = 5
	}

	var results []Result
	for _, e := range m.entries {
		if !matchesFilter(e.metadata, filter) {
			continue
		}
		score, err := similarity.Cosine(query, e.vector)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{ID: e.id, Score: score, Metadata: e.metadata})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (m *MemoryIndex) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.byID, id)
	for j := i; j < len(m.entries); j++ {
		m.byID[m.entries[j].id] = j
	}
	return true, nil
}

func (m *MemoryIndex) Get(ctx context.Context, id string) ([]float32, map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return nil, nil, nil
	}
	return m.entries[i].vector, m.entries[i].metadata, nil
}

func matchesFilter(metadata, filter map[string]any) bool {
	for k, v := range filter {
		if metadata[k] != v {
			return false
		}
	}
	return true
}
