package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Folder is one node in the hierarchy. Path is the "/"-joined chain of
// ancestor labels down to Label; Depth equals the number of path segments.
// A depth-1 folder has no parent.
type Folder struct {
	ID        string    `json:"folder_id"`
	Path      string    `json:"path"`
	Label     string    `json:"label"`
	Depth     int       `json:"depth"`
	ParentID  string    `json:"parent_id,omitempty"`
	Aliases   []string  `json:"aliases,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
	ItemCount int       `json:"item_count"`
	IsSeed    bool      `json:"is_seed"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFolder builds a folder under the given parent. Path and depth are
// derived, never stored independently.
func NewFolder(label string, parent *Folder, aliases []string, isSeed bool) *Folder {
	now := time.Now().UTC()
	f := &Folder{
		ID:        uuid.New().String(),
		Label:     label,
		Path:      label,
		Depth:     1,
		Aliases:   aliases,
		IsSeed:    isSeed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parent != nil {
		f.Path = parent.Path + "/" + label
		f.Depth = parent.Depth + 1
		f.ParentID = parent.ID
	}
	return f
}

// EmbedText is the string embedded for this folder: the path with "/"
// replaced by " > " so the hierarchy is part of the semantic context.
func (f *Folder) EmbedText() string {
	return strings.ReplaceAll(f.Path, "/", " > ")
}

// VectorID is the folder's id in the vector index.
func (f *Folder) VectorID() string {
	return "folder_" + f.ID
}

// TreeNode is one node of the nested folder tree returned to clients.
type TreeNode struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Path      string      `json:"path"`
	ItemCount int         `json:"item_count"`
	Children  []*TreeNode `json:"children,omitempty"`
}

// ItemFolder associates an item with its folder. An item has at most one
// active folder; re-association overwrites.
type ItemFolder struct {
	ItemID       string            `json:"item_id"`
	FolderID     string            `json:"folder_id"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	AssociatedAt time.Time         `json:"associated_at"`
	MovedAt      *time.Time        `json:"moved_at,omitempty"`
}
