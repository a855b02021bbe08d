package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Search constants
const (
	DefaultSearchLimit = 30
	MaxSearchLimit     = 100
	MaxSearchOffset    = 1_000_000
	MinQueryLength     = 2
)

// Kind discriminates the two searchable entity kinds. A folder and a file
// may share a raw numeric id, so identity for dedup is always (kind, id).
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// SearchRow is one row of the union search query, before DTO mapping.
type SearchRow struct {
	Kind     Kind
	ID       int64
	Name     string
	ParentID *int64 // folders only
	FolderID *int64 // files only
	Size     *int64
	MimeType *string
}

// SearchResult is the closed union of folder and file hits.
// Exactly FolderResult and FileResult implement it.
type SearchResult interface {
	ResultKind() Kind
}

// FolderResult is a folder search hit.
type FolderResult struct {
	Kind     Kind    `json:"kind"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// FileResult is a file search hit.
type FileResult struct {
	Kind     Kind    `json:"kind"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	FolderID string  `json:"folderId"`
	Size     *int64  `json:"size"`
	MimeType *string `json:"mimeType"`
}

func (r FolderResult) ResultKind() Kind { return KindFolder }
func (r FileResult) ResultKind() Kind   { return KindFile }

// SearchResponseDTO echoes the effective query parameters so the client can
// correlate pages across successive "load more" fetches.
type SearchResponseDTO struct {
	Q       string         `json:"q"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	Results []SearchResult `json:"results"`
}

// SearchOptions are the resolved parameters of one search call.
type SearchOptions struct {
	Query          string
	Limit          int
	Offset         int
	IncludeFolders bool
	IncludeFiles   bool
}

// ApplyDefaults clamps pagination into range and resolves the kind flags.
// An empty kind selection means both kinds.
func (o *SearchOptions) ApplyDefaults() {
	if o.Limit <= 0 {
		o.Limit = DefaultSearchLimit
	}
	if o.Limit > MaxSearchLimit {
		o.Limit = MaxSearchLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Offset > MaxSearchOffset {
		o.Offset = MaxSearchOffset
	}
	if !o.IncludeFolders && !o.IncludeFiles {
		o.IncludeFolders = true
		o.IncludeFiles = true
	}
}

// Validate checks the trimmed query length. Callers must trim before calling.
func (o SearchOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Query,
			validation.Required.Error("query is required"),
			validation.RuneLength(MinQueryLength, 0).Error("query must be at least 2 characters"),
		),
	)
}
