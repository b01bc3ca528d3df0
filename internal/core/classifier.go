// Package core orchestrates classification: taxonomy generation, folder
// matching, and persistence of the results.
package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/agenthands/stash/internal/core/matcher"
	"github.com/agenthands/stash/internal/core/model"
	"github.com/agenthands/stash/internal/core/taxonomy"
	"github.com/agenthands/stash/internal/store"
)

// Classifier ties the generator and matcher together and persists folders,
// item associations, and stats. Persistence failures never fail a
// classification; they are logged and surfaced in the output notes.
type Classifier struct {
	generator *taxonomy.Generator
	matcher   *matcher.FolderMatcher
	store     *store.Store
}

func NewClassifier(generator *taxonomy.Generator, m *matcher.FolderMatcher, st *store.Store) *Classifier {
	return &Classifier{
		generator: generator,
		matcher:   m,
		store:     st,
	}
}

// EnsureSeeded loads persisted folders into the matcher and, when the
// hierarchy is empty, creates and persists the seed taxonomy. Call once at
// startup.
func (c *Classifier) EnsureSeeded(ctx context.Context) error {
	folders, err := c.store.Folders.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}
	c.matcher.LoadFolders(ctx, folders)

	if c.matcher.DomainCount() > 0 {
		return nil
	}

	created, err := c.matcher.InitializeSeedFolders(ctx)
	if err != nil {
		return fmt.Errorf("initialize seed folders: %w", err)
	}
	for _, folder := range created {
		if err := c.store.Folders.Create(ctx, folder); err != nil {
			log.Printf("warning: failed to persist seed folder %q: %v", folder.Path, err)
		}
	}
	return nil
}

// Classify runs the full pipeline for one item. Errors in generation or
// matching produce an error output rather than a Go error, so callers
// always get a record to store or display.
func (c *Classifier) Classify(ctx context.Context, item model.Item) *model.Output {
	start := time.Now()
	item = model.NormalizeItem(item)

	candidate, err := c.generator.Generate(ctx, item)
	if err != nil {
		log.Printf("classification of %s failed: %v", item.ID, err)
		return model.ErrorOutput(item.ID, err, time.Since(start))
	}

	match, err := c.matcher.Match(ctx, candidate)
	if err != nil {
		log.Printf("classification of %s failed: %v", item.ID, err)
		return model.ErrorOutput(item.ID, err, time.Since(start))
	}

	output := model.OutputFromMatch(item.ID, match, *candidate, time.Since(start))
	c.persist(ctx, item, match, output)

	log.Printf("classified %s -> %s (%dms)", item.ID, output.FinalPath, output.ProcessingTimeMs)
	return output
}

// ClassifyBatch processes items sequentially and aggregates counters. An
// item-level failure is counted, not propagated.
func (c *Classifier) ClassifyBatch(ctx context.Context, items []model.Item) *model.BatchOutput {
	start := time.Now()
	batch := &model.BatchOutput{TotalItems: len(items)}

	for _, item := range items {
		output := c.Classify(ctx, item)
		batch.Results = append(batch.Results, output)
		if output.FinalPath == "Uncategorized/Error" {
			batch.Failed++
		} else {
			batch.Successful++
		}
		batch.NewFoldersCreated += len(output.CreatedFolders)
		batch.FoldersReused += len(output.ReusedFolders)
	}

	batch.ProcessingTimeMs = time.Since(start).Milliseconds()
	return batch
}

// History returns recent classification outputs, newest first.
func (c *Classifier) History(ctx context.Context, limit int) ([]*model.Output, error) {
	return c.store.Stats.ClassificationHistory(ctx, limit)
}

// FolderTree returns the current folder hierarchy.
func (c *Classifier) FolderTree() []*model.TreeNode {
	return c.matcher.FolderTree()
}

// SeedFolders initializes the seed taxonomy on demand, persisting whatever
// was created.
func (c *Classifier) SeedFolders(ctx context.Context) (int, error) {
	created, err := c.matcher.InitializeSeedFolders(ctx)
	if err != nil {
		return 0, err
	}
	for _, folder := range created {
		if err := c.store.Folders.Create(ctx, folder); err != nil {
			log.Printf("warning: failed to persist seed folder %q: %v", folder.Path, err)
		}
	}
	return len(created), nil
}

// persist writes the side effects of a finished match: new folders, item
// counts, the item-folder association, and the stats record. Each failure
// is logged and noted but never aborts the classification.
func (c *Classifier) persist(ctx context.Context, item model.Item, match *model.HierarchicalMatch, output *model.Output) {
	var warnings []string

	for _, folder := range match.CreatedFolders() {
		if err := c.store.Folders.Create(ctx, folder); err != nil {
			log.Printf("warning: failed to persist folder %q: %v", folder.Path, err)
			warnings = append(warnings, fmt.Sprintf("folder '%s' not persisted", folder.Path))
		}
	}

	var final *model.Folder
	for _, r := range []*model.MatchResult{match.LeafResult, match.SubdomainResult, match.DomainResult} {
		if r != nil && r.Action != model.Skip {
			if f := r.Folder(); f != nil {
				final = f
				break
			}
		}
	}
	if final != nil {
		if err := c.store.Folders.IncrementItemCount(ctx, final.ID); err != nil {
			log.Printf("warning: failed to increment item count for %q: %v", final.Path, err)
		}
		meta := map[string]string{"raw_topic": item.RawTopic}
		if item.SourceApp != "" {
			meta["source_app"] = item.SourceApp
		}
		if err := c.store.ItemFolders.Associate(ctx, item.ID, final.ID, meta); err != nil {
			log.Printf("warning: failed to associate item %s with folder %q: %v", item.ID, final.Path, err)
			warnings = append(warnings, "item-folder association not persisted")
		}
	}

	if len(warnings) > 0 {
		if output.Notes != "" {
			output.Notes += "; "
		}
		output.Notes += strings.Join(warnings, "; ")
	}

	if err := c.store.Stats.RecordClassification(ctx, output); err != nil {
		log.Printf("warning: failed to record classification for %s: %v", item.ID, err)
	}
}
