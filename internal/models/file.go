package models

import (
	"time"
)

// File is a row in the files table. Every file belongs to exactly one
// folder; deleting the folder cascades to its files at the store level.
type File struct {
	ID        int64
	FolderID  int64
	Name      string
	Size      *int64
	MimeType  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FileDTO is the wire shape of a file.
type FileDTO struct {
	ID       string  `json:"id"`
	FolderID string  `json:"folderId"`
	Name     string  `json:"name"`
	Size     *int64  `json:"size"`
	MimeType *string `json:"mimeType"`
}
