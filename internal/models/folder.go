package models

import (
	"time"
)

// Folder is a row in the folders table
type Folder struct {
	ID        int64
	ParentID  *int64 // NULL = root level
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FolderNode is a folder annotated with the derived hasChildren flag.
// The flag is recomputed on every listing, never stored: it goes stale
// the moment a sibling folder is added or removed.
type FolderNode struct {
	Folder
	HasChildren bool
}

// FolderDTO is the wire shape of a folder. Identifiers are decimal strings
// to avoid precision loss for large surrogate keys.
type FolderDTO struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parentId"`
	Name     string  `json:"name"`
}

// FolderNodeDTO is FolderDTO plus the expandability flag for lazy tree views.
type FolderNodeDTO struct {
	ID          string  `json:"id"`
	ParentID    *string `json:"parentId"`
	Name        string  `json:"name"`
	HasChildren bool    `json:"hasChildren"`
}

// FolderPathDTO is the root-to-target breadcrumb chain.
type FolderPathDTO struct {
	Folders []FolderNodeDTO `json:"folders"`
}

// FolderItemsDTO is the direct contents of one folder.
type FolderItemsDTO struct {
	Folders []FolderDTO `json:"folders"`
	Files   []FileDTO   `json:"files"`
}
