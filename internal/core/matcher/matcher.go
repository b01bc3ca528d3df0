// Package matcher assigns taxonomy candidates to folders by embedding
// similarity, reusing existing folders when a close enough match exists
// and creating new ones otherwise.
package matcher

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/agenthands/stash/internal/config"
	"github.com/agenthands/stash/internal/core/model"
	"github.com/agenthands/stash/internal/core/similarity"
	"github.com/agenthands/stash/internal/llm"
	"github.com/agenthands/stash/internal/vectorstore"
)

const searchTopK = 5

// FolderMatcher holds the in-memory folder cache and the vector index and
// implements the per-level match decisions. All exported methods are safe
// for concurrent use.
type FolderMatcher struct {
	embedder       llm.EmbedderClient
	index          vectorstore.Index
	thresholds     config.ThresholdConfig
	confusionPairs []config.ConfusionPair
	seeds          []config.SeedDomain

	mu      sync.Mutex
	byID    map[string]*model.Folder
	byPath  map[string]*model.Folder
	byDepth map[int][]*model.Folder
}

// NewFolderMatcher creates a matcher with an empty cache.
func NewFolderMatcher(embedder llm.EmbedderClient, index vectorstore.Index, cfg *config.Config) *FolderMatcher {
	return &FolderMatcher{
		embedder:       embedder,
		index:          index,
		thresholds:     cfg.Thresholds,
		confusionPairs: cfg.Matching.ConfusionPairs,
		seeds:          config.SeedDomains,
		byID:           make(map[string]*model.Folder),
		byPath:         make(map[string]*model.Folder),
		byDepth:        make(map[int][]*model.Folder),
	}
}

// LoadFolders primes the cache and the vector index from persisted
// folders, typically at startup. Folders without a stored embedding are
// cached but not indexed.
func (m *FolderMatcher) LoadFolders(ctx context.Context, folders []*model.Folder) {
	for _, folder := range folders {
		m.cachePut(folder)
		if len(folder.Embedding) == 0 {
			continue
		}
		if err := m.index.Add(ctx, folder.VectorID(), folder.Embedding, folderMetadata(folder)); err != nil {
			log.Printf("warning: failed to index folder %q: %v", folder.Path, err)
		}
	}
}

// DomainCount reports how many depth-1 folders are cached.
func (m *FolderMatcher) DomainCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byDepth[int(model.LevelDomain)])
}

// InitializeSeedFolders creates the configured seed domains and their
// subdomains. It is idempotent: if any domain folder already exists the
// call is a no-op. The returned slice holds the folders actually created.
func (m *FolderMatcher) InitializeSeedFolders(ctx context.Context) ([]*model.Folder, error) {
	if m.DomainCount() > 0 {
		return nil, nil
	}

	var created []*model.Folder
	for _, seed := range m.seeds {
		domain, domainCreated := m.createFolder(ctx, seed.Label, nil, seed.Aliases, true)
		if domainCreated {
			created = append(created, domain)
		}
		for _, sub := range seed.Subdomains {
			subFolder, subCreated := m.createFolder(ctx, sub.Label, domain, sub.Aliases, true)
			if subCreated {
				created = append(created, subFolder)
			}
		}
	}
	log.Printf("initialized %d seed folders", len(created))
	return created, nil
}

// Match runs the full domain -> subdomain -> leaf cascade for a candidate.
func (m *FolderMatcher) Match(ctx context.Context, candidate *model.TaxonomyCandidate) (*model.HierarchicalMatch, error) {
	domainResult, err := m.MatchDomain(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("match domain: %w", err)
	}

	subdomainResult, err := m.MatchSubdomain(ctx, candidate, domainResult)
	if err != nil {
		return nil, fmt.Errorf("match subdomain: %w", err)
	}

	leafResult, err := m.MatchLeaf(ctx, candidate, subdomainResult)
	if err != nil {
		return nil, fmt.Errorf("match leaf: %w", err)
	}

	return &model.HierarchicalMatch{
		DomainResult:    domainResult,
		SubdomainResult: subdomainResult,
		LeafResult:      leafResult,
	}, nil
}

// MatchDomain matches the candidate's domain label against depth-1
// folders, creating a new domain when nothing clears the threshold.
func (m *FolderMatcher) MatchDomain(ctx context.Context, candidate *model.TaxonomyCandidate) (*model.MatchResult, error) {
	label := candidate.Domain.Label

	matched, score, err := m.findBestMatch(ctx, label, int(model.LevelDomain), "", m.thresholds.Domain)
	if err != nil {
		return nil, err
	}
	if matched != nil {
		return &model.MatchResult{
			Level:           model.LevelDomain,
			Action:          model.ReuseExisting,
			MatchedFolder:   matched,
			SimilarityScore: score,
			LabelUsed:       label,
			Notes:           fmt.Sprintf("Reused existing domain '%s' (similarity: %.2f)", matched.Label, score),
		}, nil
	}

	folder, _ := m.createFolder(ctx, label, nil, candidate.Domain.Aliases, false)
	return &model.MatchResult{
		Level:     model.LevelDomain,
		Action:    model.CreateNew,
		NewFolder: folder,
		LabelUsed: label,
		Notes:     fmt.Sprintf("Created new domain '%s'", folder.Label),
	}, nil
}

// MatchSubdomain matches the candidate's subdomain within the matched
// domain. The search text is contextualized with the domain label so that
// "Running" under Health & Fitness does not collide with "Running" under
// Computer Science.
func (m *FolderMatcher) MatchSubdomain(ctx context.Context, candidate *model.TaxonomyCandidate, domainResult *model.MatchResult) (*model.MatchResult, error) {
	domain := domainResult.Folder()
	if domain == nil {
		return nil, fmt.Errorf("subdomain match requires a resolved domain folder")
	}
	label := candidate.Subdomain.Label
	searchText := domain.Label + " > " + label

	matched, score, err := m.findBestMatch(ctx, searchText, int(model.LevelSubdomain), domain.ID, m.thresholds.Subdomain)
	if err != nil {
		return nil, err
	}
	if matched != nil {
		return &model.MatchResult{
			Level:           model.LevelSubdomain,
			Action:          model.ReuseExisting,
			MatchedFolder:   matched,
			SimilarityScore: score,
			LabelUsed:       label,
			Notes:           fmt.Sprintf("Reused existing subdomain '%s' (similarity: %.2f)", matched.Label, score),
		}, nil
	}

	// Diagnostic only: a strong match under a different parent suggests
	// the domain decision sent this item to the wrong branch.
	if stray, strayScore, probeErr := m.findBestMatch(ctx, label, int(model.LevelSubdomain), "", m.thresholds.Subdomain); probeErr == nil && stray != nil && stray.ParentID != domain.ID {
		log.Printf("subdomain %q matches %q (%.2f) under a different domain; attaching under %q",
			label, stray.Path, strayScore, domain.Label)
	}

	folder, _ := m.createFolder(ctx, label, domain, candidate.Subdomain.Aliases, false)
	return &model.MatchResult{
		Level:     model.LevelSubdomain,
		Action:    model.AttachAsChild,
		NewFolder: folder,
		LabelUsed: label,
		Notes:     fmt.Sprintf("Created new subdomain '%s' under '%s'", folder.Label, domain.Label),
	}, nil
}

// MatchLeaf resolves the optional third level. Low-confidence or optional
// leaves are skipped rather than created, and an embedding outage degrades
// to a skip instead of failing the whole classification.
func (m *FolderMatcher) MatchLeaf(ctx context.Context, candidate *model.TaxonomyCandidate, subdomainResult *model.MatchResult) (*model.MatchResult, error) {
	if candidate.LeafTopic == nil {
		return nil, nil
	}
	subdomain := subdomainResult.Folder()
	if subdomain == nil {
		return nil, fmt.Errorf("leaf match requires a resolved subdomain folder")
	}
	label := candidate.LeafTopic.Label

	if candidate.LeafTopic.Optional && candidate.Confidence < m.thresholds.LeafConfidence {
		return &model.MatchResult{
			Level:     model.LevelLeaf,
			Action:    model.Skip,
			LabelUsed: label,
			Notes: fmt.Sprintf("Skipped optional leaf '%s' (confidence %.2f below %.2f)",
				label, candidate.Confidence, m.thresholds.LeafConfidence),
		}, nil
	}

	searchText := strings.ReplaceAll(subdomain.Path, "/", " > ") + " > " + label
	matched, score, err := m.findBestMatch(ctx, searchText, int(model.LevelLeaf), subdomain.ID, m.thresholds.Leaf)
	if err != nil {
		log.Printf("warning: leaf match for %q degraded to skip: %v", label, err)
		return &model.MatchResult{
			Level:     model.LevelLeaf,
			Action:    model.Skip,
			LabelUsed: label,
			Notes:     fmt.Sprintf("Skipped leaf '%s' (embedding unavailable)", label),
		}, nil
	}
	if matched != nil {
		return &model.MatchResult{
			Level:           model.LevelLeaf,
			Action:          model.ReuseExisting,
			MatchedFolder:   matched,
			SimilarityScore: score,
			LabelUsed:       label,
			Notes:           fmt.Sprintf("Reused existing leaf '%s' (similarity: %.2f)", matched.Label, score),
		}, nil
	}

	if subdomain.Depth >= m.thresholds.MaxDepth {
		return &model.MatchResult{
			Level:     model.LevelLeaf,
			Action:    model.Skip,
			LabelUsed: label,
			Notes:     fmt.Sprintf("Skipped leaf '%s' (max depth %d reached)", label, m.thresholds.MaxDepth),
		}, nil
	}
	if candidate.LeafTopic.Optional {
		return &model.MatchResult{
			Level:     model.LevelLeaf,
			Action:    model.Skip,
			LabelUsed: label,
			Notes:     fmt.Sprintf("Skipped optional leaf '%s' (no close match)", label),
		}, nil
	}

	folder, _ := m.createFolder(ctx, label, subdomain, candidate.LeafTopic.Aliases, false)
	return &model.MatchResult{
		Level:     model.LevelLeaf,
		Action:    model.AttachAsChild,
		NewFolder: folder,
		LabelUsed: label,
		Notes:     fmt.Sprintf("Created new leaf '%s' under '%s'", folder.Label, subdomain.Path),
	}, nil
}

// FolderTree returns the cached hierarchy as nested nodes, in creation
// order at each level.
func (m *FolderMatcher) FolderTree() []*model.TreeNode {
	m.mu.Lock()
	defer m.mu.Unlock()

	nodes := make(map[string]*model.TreeNode)
	var roots []*model.TreeNode
	for depth := 1; depth <= m.thresholds.MaxDepth; depth++ {
		for _, folder := range m.byDepth[depth] {
			node := &model.TreeNode{
				ID:        folder.ID,
				Label:     folder.Label,
				Path:      folder.Path,
				ItemCount: folder.ItemCount,
			}
			nodes[folder.ID] = node
			if folder.ParentID == "" {
				roots = append(roots, node)
			} else if parent, ok := nodes[folder.ParentID]; ok {
				parent.Children = append(parent.Children, node)
			}
		}
	}
	return roots
}

// findBestMatch embeds the search text, queries the index at the given
// depth (optionally scoped to a parent), and returns the highest-scoring
// folder that clears the threshold and passes the sanity check. A nil
// folder with nil error means no acceptable match.
func (m *FolderMatcher) findBestMatch(ctx context.Context, searchText string, depth int, parentID string, threshold float64) (*model.Folder, float64, error) {
	vec, err := m.embedder.Embed(ctx, searchText)
	if err != nil {
		return nil, 0, fmt.Errorf("embed %q: %w", searchText, err)
	}

	filter := map[string]interface{}{"type": "folder", "depth": depth}
	if parentID != "" {
		filter["parent_id"] = parentID
	}
	results, err := m.index.Search(ctx, vec, searchTopK, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("vector search at depth %d: %w", depth, err)
	}

	// Sparse index results get augmented from the cache so a freshly
	// created folder is matchable before the index catches up.
	if len(results) < 3 {
		results = m.augmentFromCache(vec, depth, parentID, results)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	for _, result := range results {
		if result.Score < threshold {
			continue
		}
		folder := m.resolveResult(result)
		if folder == nil {
			continue
		}
		if !m.sanityCheck(searchText, folder.Path, result.Score) {
			log.Printf("rejected match %q -> %q (similarity %.2f failed sanity check)",
				searchText, folder.Path, result.Score)
			continue
		}
		return folder, result.Score, nil
	}
	return nil, 0, nil
}

// augmentFromCache scores cached folders the index did not return against
// the query vector, deduplicating on vector ID.
func (m *FolderMatcher) augmentFromCache(vec []float32, depth int, parentID string, results []vectorstore.Result) []vectorstore.Result {
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.ID] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, folder := range m.byDepth[depth] {
		if parentID != "" && folder.ParentID != parentID {
			continue
		}
		if len(folder.Embedding) == 0 || seen[folder.VectorID()] {
			continue
		}
		score, err := similarity.Cosine(vec, folder.Embedding)
		if err != nil {
			continue
		}
		results = append(results, vectorstore.Result{
			ID:       folder.VectorID(),
			Score:    score,
			Metadata: folderMetadata(folder),
		})
	}
	return results
}

// sanityCheck guards against semantically unrelated labels that score
// high on cosine similarity alone. Near-identical scores always pass;
// otherwise high scores with near-zero keyword overlap are rejected, as
// are known confusable label pairs.
func (m *FolderMatcher) sanityCheck(candidate, matched string, sim float64) bool {
	if sim > 0.95 {
		return true
	}
	if sim > 0.85 && keywordOverlap(candidate, matched) < m.thresholds.MinKeywordOverlap {
		return false
	}

	candidateLower := strings.ToLower(candidate)
	matchedLower := strings.ToLower(matched)
	for _, pair := range m.confusionPairs {
		if (strings.Contains(candidateLower, pair.A) && strings.Contains(matchedLower, pair.B)) ||
			(strings.Contains(candidateLower, pair.B) && strings.Contains(matchedLower, pair.A)) {
			return false
		}
	}
	return true
}

// createFolder makes a folder under parent, embeds its path text, and
// registers it in the cache and the index. If another goroutine created
// the same path first, the existing folder is returned with created=false.
// An embedding failure does not block creation; the folder simply stays
// unindexed until re-embedded.
func (m *FolderMatcher) createFolder(ctx context.Context, label string, parent *model.Folder, aliases []string, isSeed bool) (*model.Folder, bool) {
	folder := model.NewFolder(label, parent, aliases, isSeed)

	vec, embedErr := m.embedder.Embed(ctx, folder.EmbedText())
	if embedErr == nil {
		folder.Embedding = vec
	}

	m.mu.Lock()
	if existing, ok := m.byPath[folder.Path]; ok {
		m.mu.Unlock()
		return existing, false
	}
	m.cachePutLocked(folder)
	m.mu.Unlock()

	if embedErr != nil {
		log.Printf("warning: failed to embed new folder %q: %v", folder.Path, embedErr)
		return folder, true
	}
	if err := m.index.Add(ctx, folder.VectorID(), folder.Embedding, folderMetadata(folder)); err != nil {
		log.Printf("warning: failed to index new folder %q: %v", folder.Path, err)
	}
	return folder, true
}

func (m *FolderMatcher) cachePut(folder *model.Folder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cachePutLocked(folder)
}

func (m *FolderMatcher) cachePutLocked(folder *model.Folder) {
	if _, ok := m.byID[folder.ID]; !ok {
		m.byDepth[folder.Depth] = append(m.byDepth[folder.Depth], folder)
	}
	m.byID[folder.ID] = folder
	m.byPath[folder.Path] = folder
}

// resolveResult maps a search hit back to a cached folder, falling back
// to the result's metadata when the cache misses.
func (m *FolderMatcher) resolveResult(result vectorstore.Result) *model.Folder {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := result.Metadata["folder_id"].(string); ok {
		if folder, ok := m.byID[id]; ok {
			return folder
		}
	}
	path, ok := result.Metadata["path"].(string)
	if !ok {
		return nil
	}
	if folder, ok := m.byPath[path]; ok {
		return folder
	}
	depth, _ := result.Metadata["depth"].(int)
	parentID, _ := result.Metadata["parent_id"].(string)
	id, _ := result.Metadata["folder_id"].(string)
	parts := strings.Split(path, "/")
	return &model.Folder{
		ID:       id,
		Path:     path,
		Label:    parts[len(parts)-1],
		Depth:    depth,
		ParentID: parentID,
	}
}

func folderMetadata(folder *model.Folder) map[string]interface{} {
	return map[string]interface{}{
		"type":      "folder",
		"folder_id": folder.ID,
		"path":      folder.Path,
		"depth":     folder.Depth,
		"parent_id": folder.ParentID,
		"is_seed":   folder.IsSeed,
	}
}
