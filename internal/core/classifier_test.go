package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/stash/internal/config"
	"github.com/agenthands/stash/internal/core/matcher"
	"github.com/agenthands/stash/internal/core/model"
	"github.com/agenthands/stash/internal/core/taxonomy"
	"github.com/agenthands/stash/internal/llm"
	"github.com/agenthands/stash/internal/store"
	"github.com/agenthands/stash/internal/vectorstore"
)

// newTestClassifier wires a classifier against in-memory backends. The
// embedder gives distinct vectors to the Health & Fitness branch so alias
// classifications resolve deterministically; every other folder shares a
// vector far from both.
func newTestClassifier(llmClient *MockLLM, embedder *MockEmbedder) (*Classifier, *store.Store) {
	cfg := config.Default()
	st := store.NewMemoryStore()
	index := vectorstore.NewMemoryIndex()
	generator := taxonomy.NewGenerator(llmClient, cfg)
	m := matcher.NewFolderMatcher(embedder, index, cfg)
	return NewClassifier(generator, m, st), st
}

func healthEmbedder() *MockEmbedder {
	return &MockEmbedder{
		Vectors: map[string][]float32{
			"Health & Fitness":               {1, 0},
			"Health & Fitness > Weight Loss": {0, 1},
		},
		Default: []float32{0.5, 0.5},
	}
}

func TestEnsureSeededPersistsSeedFolders(t *testing.T) {
	ctx := context.Background()
	classifier, st := newTestClassifier(&MockLLM{}, healthEmbedder())

	assert.NoError(t, classifier.EnsureSeeded(ctx))

	folders, err := st.Folders.ListAll(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, folders)

	domains, err := st.Folders.GetByDepth(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, domains, len(config.SeedDomains))

	// Seeding again must not duplicate anything.
	assert.NoError(t, classifier.EnsureSeeded(ctx))
	again, err := st.Folders.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, again, len(folders))
}

func TestEnsureSeededRestartLoadsExistingFolders(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	st := store.NewMemoryStore()

	first := NewClassifier(
		taxonomy.NewGenerator(&MockLLM{}, cfg),
		matcher.NewFolderMatcher(healthEmbedder(), vectorstore.NewMemoryIndex(), cfg),
		st,
	)
	assert.NoError(t, first.EnsureSeeded(ctx))
	folders, err := st.Folders.ListAll(ctx)
	assert.NoError(t, err)

	// A restart shares the store but starts with a cold cache and index.
	// It must rebuild from persisted folders instead of re-seeding.
	second := NewClassifier(
		taxonomy.NewGenerator(&MockLLM{}, cfg),
		matcher.NewFolderMatcher(healthEmbedder(), vectorstore.NewMemoryIndex(), cfg),
		st,
	)
	assert.NoError(t, second.EnsureSeeded(ctx))

	after, err := st.Folders.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, after, len(folders))
	assert.Len(t, second.FolderTree(), len(config.SeedDomains))
}

func TestClassifyViaAliasTopic(t *testing.T) {
	ctx := context.Background()
	classifier, st := newTestClassifier(&MockLLM{}, healthEmbedder())
	assert.NoError(t, classifier.EnsureSeeded(ctx))

	output := classifier.Classify(ctx, model.Item{
		ID:       "item-1",
		RawTopic: "calorie deficit",
		Summary:  "maintaining a 500 calorie deficit",
	})

	assert.Equal(t, "Health & Fitness/Weight Loss", output.FinalPath)
	assert.Equal(t, 0.95, output.Confidence)
	assert.Empty(t, output.CreatedFolders)
	assert.Len(t, output.ReusedFolders, 2)

	// Persisted side effects: association, item count, history.
	folderID, err := st.ItemFolders.FolderForItem(ctx, "item-1")
	assert.NoError(t, err)
	folder, err := st.Folders.GetByID(ctx, folderID)
	assert.NoError(t, err)
	assert.Equal(t, "Health & Fitness/Weight Loss", folder.Path)
	assert.Equal(t, 1, folder.ItemCount)

	history, err := classifier.History(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "item-1", history[0].ItemID)
}

func TestClassifyEmbeddingOutageYieldsErrorOutput(t *testing.T) {
	ctx := context.Background()
	embedder := healthEmbedder()
	classifier, _ := newTestClassifier(&MockLLM{}, embedder)
	assert.NoError(t, classifier.EnsureSeeded(ctx))

	// Domain-level embedding failures abort the classification.
	embedder.ErrFor = map[string]error{"Health & Fitness": llm.ErrEmbeddingUnavailable}

	output := classifier.Classify(ctx, model.Item{
		ID:       "item-2",
		RawTopic: "calorie deficit",
		Summary:  "cutting notes",
	})

	assert.Equal(t, "Uncategorized/Error", output.FinalPath)
	assert.Equal(t, 0.0, output.Confidence)
	assert.Contains(t, output.Notes, "Classification failed")
}

func TestClassifyAssignsItemID(t *testing.T) {
	ctx := context.Background()
	classifier, _ := newTestClassifier(&MockLLM{}, healthEmbedder())
	assert.NoError(t, classifier.EnsureSeeded(ctx))

	output := classifier.Classify(ctx, model.Item{
		RawTopic: "calorie deficit",
		Summary:  "notes",
	})

	assert.NotEmpty(t, output.ItemID)
}

func TestClassifyBatchCounters(t *testing.T) {
	ctx := context.Background()
	embedder := healthEmbedder()
	classifier, _ := newTestClassifier(&MockLLM{}, embedder)
	assert.NoError(t, classifier.EnsureSeeded(ctx))

	// The second item falls back to Personal/Ideas and then hits an
	// embedding outage at the domain level.
	embedder.ErrFor = map[string]error{"Personal": llm.ErrEmbeddingUnavailable}

	batch := classifier.ClassifyBatch(ctx, []model.Item{
		{ID: "a", RawTopic: "calorie deficit", Summary: "cutting"},
		{ID: "b", RawTopic: "zzq", Summary: "xvqk"},
	})

	assert.Equal(t, 2, batch.TotalItems)
	assert.Equal(t, 1, batch.Successful)
	assert.Equal(t, 1, batch.Failed)
	assert.Len(t, batch.Results, 2)
}
