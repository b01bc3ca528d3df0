// Command stash classifies items from the command line against an
// in-process folder hierarchy. Useful for trying out taxonomy and matching
// behavior without running the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/stash/internal/config"
	"github.com/agenthands/stash/internal/core"
	"github.com/agenthands/stash/internal/core/matcher"
	"github.com/agenthands/stash/internal/core/model"
	"github.com/agenthands/stash/internal/core/taxonomy"
	"github.com/agenthands/stash/internal/llm"
	"github.com/agenthands/stash/internal/store"
	"github.com/agenthands/stash/internal/vectorstore"
)

func main() {
	topic := flag.String("topic", "", "raw topic of the item to classify")
	summary := flag.String("summary", "", "summary text of the item")
	batchFile := flag.String("batch", "", "path to a JSON file with an array of items")
	initSeed := flag.Bool("init-seed", false, "initialize the seed folder hierarchy and exit")
	showTree := flag.Bool("tree", false, "print the folder tree after processing")
	outFile := flag.String("output", "", "write JSON results to a file instead of stdout")
	configPath := flag.String("config", "config/config.toml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", *configPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	ctx := context.Background()

	llmClient, embedderClient, err := llm.NewClient(ctx, cfg.LLM, cfg.Embedding, float32(cfg.Taxonomy.Temperature))
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	if embedderClient == nil {
		log.Fatalf("Provider %q has no embedding support; folder matching requires embeddings", cfg.LLM.Provider)
	}

	st := store.NewMemoryStore()
	index := vectorstore.NewMemoryIndex()
	generator := taxonomy.NewGenerator(llmClient, cfg)
	m := matcher.NewFolderMatcher(embedderClient, index, cfg)
	classifier := core.NewClassifier(generator, m, st)

	if err := classifier.EnsureSeeded(ctx); err != nil {
		log.Fatalf("Failed to seed folder hierarchy: %v", err)
	}

	if *initSeed {
		fmt.Println("Seed folders initialized")
		printTree(classifier.FolderTree(), 0)
		return
	}

	switch {
	case *batchFile != "":
		data, err := os.ReadFile(*batchFile)
		if err != nil {
			log.Fatalf("Failed to read batch file: %v", err)
		}
		var items []model.Item
		if err := json.Unmarshal(data, &items); err != nil {
			log.Fatalf("Failed to parse batch file: %v", err)
		}
		batch := classifier.ClassifyBatch(ctx, items)
		writeJSON(batch, *outFile)

	case *topic != "" || *summary != "":
		output := classifier.Classify(ctx, model.Item{RawTopic: *topic, Summary: *summary})
		writeJSON(output, *outFile)

	case !*showTree:
		flag.Usage()
		os.Exit(2)
	}

	if *showTree {
		printTree(classifier.FolderTree(), 0)
	}
}

func writeJSON(v interface{}, path string) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
}

func printTree(nodes []*model.TreeNode, depth int) {
	for _, node := range nodes {
		for i := 0; i < depth; i++ {
			fmt.Print("  ")
		}
		fmt.Printf("%s (%d items)\n", node.Label, node.ItemCount)
		printTree(node.Children, depth+1)
	}
}
