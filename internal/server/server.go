package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/stash/internal/config"
	"github.com/agenthands/stash/internal/core"
	"github.com/agenthands/stash/internal/core/matcher"
	"github.com/agenthands/stash/internal/core/model"
	"github.com/agenthands/stash/internal/core/taxonomy"
	"github.com/agenthands/stash/internal/driver"
	"github.com/agenthands/stash/internal/llm"
	"github.com/agenthands/stash/internal/store"
	"github.com/agenthands/stash/internal/vectorstore"
)

type Server struct {
	Classifier *core.Classifier
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	var st *store.Store
	var index vectorstore.Index
	switch cfg.Database.Backend {
	case "memgraph":
		d, err := driver.NewMemgraphDriver(cfg.Database.Memgraph.URI, cfg.Database.Memgraph.User, cfg.Database.Memgraph.Password)
		if err != nil {
			log.Fatalf("Failed to connect to Memgraph: %v", err)
		}
		if err := d.BuildIndices(context.Background()); err != nil {
			log.Printf("Warning: failed to build indices: %v", err)
		}
		st = store.NewMemgraphStore(d)
		index = vectorstore.NewMemgraphIndex(d)
	default:
		st = store.NewMemoryStore()
		index = vectorstore.NewMemoryIndex()
	}

	llmClient, embedderClient, err := llm.NewClient(context.Background(), cfg.LLM, cfg.Embedding, float32(cfg.Taxonomy.Temperature))
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	if embedderClient == nil {
		log.Fatalf("Provider %q has no embedding support; folder matching requires embeddings", cfg.LLM.Provider)
	}

	generator := taxonomy.NewGenerator(llmClient, cfg)
	m := matcher.NewFolderMatcher(embedderClient, index, cfg)
	classifier := core.NewClassifier(generator, m, st)

	if err := classifier.EnsureSeeded(context.Background()); err != nil {
		log.Fatalf("Failed to seed folder hierarchy: %v", err)
	}

	return &Server{Classifier: classifier}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/classify", s.Classify)
	r.POST("/classify/batch", s.ClassifyBatch)
	r.GET("/folders/tree", s.FolderTree)
	r.POST("/folders/seed", s.SeedFolders)
	r.GET("/classifications", s.History)

	return r
}

func (s *Server) Classify(c *gin.Context) {
	var item model.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	output := s.Classifier.Classify(c.Request.Context(), item)
	c.JSON(http.StatusOK, output)
}

type batchRequest struct {
	Items []model.Item `json:"items"`
}

func (s *Server) ClassifyBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No items provided"})
		return
	}

	batch := s.Classifier.ClassifyBatch(c.Request.Context(), req.Items)
	c.JSON(http.StatusOK, batch)
}

func (s *Server) FolderTree(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tree": s.Classifier.FolderTree()})
}

func (s *Server) SeedFolders(c *gin.Context) {
	created, err := s.Classifier.SeedFolders(c.Request.Context())
	if err != nil {
		log.Printf("Failed to seed folders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed folders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (s *Server) History(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	history, err := s.Classifier.History(c.Request.Context(), limit)
	if err != nil {
		log.Printf("Failed to load history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classifications": history})
}
