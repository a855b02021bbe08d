package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"explorer/internal/domain"
	"explorer/internal/models"
)

// SearchRepository is the query surface the search service needs.
type SearchRepository interface {
	SearchUnion(ctx context.Context, opts models.SearchOptions) ([]models.SearchRow, error)
}

// SearchRequest carries the raw, unclamped parameters of one search call.
type SearchRequest struct {
	Query  string
	Limit  int
	Offset int
	Types  []string // subset of {"folders", "files"}; empty means both
}

// SearchService validates search input and maps union rows to the tagged
// result union.
type SearchService struct {
	repo   SearchRepository
	logger *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(repo SearchRepository, logger *slog.Logger) *SearchService {
	return &SearchService{
		repo:   repo,
		logger: logger,
	}
}

// Search runs a paginated substring search. The trimmed query must be at
// least two characters; shorter queries are rejected before any store
// access. Unknown type tokens are ignored; an empty selection means both.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*models.SearchResponseDTO, error) {
	opts := models.SearchOptions{
		Query:  strings.TrimSpace(req.Query),
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	for _, t := range req.Types {
		switch strings.TrimSpace(t) {
		case "folders":
			opts.IncludeFolders = true
		case "files":
			opts.IncludeFiles = true
		}
	}
	opts.ApplyDefaults()

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	rows, err := s.repo.SearchUnion(ctx, opts)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, toSearchResult(row))
	}

	return &models.SearchResponseDTO{
		Q:       opts.Query,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		Results: results,
	}, nil
}

func toSearchResult(row models.SearchRow) models.SearchResult {
	if row.Kind == models.KindFolder {
		return models.FolderResult{
			Kind:     models.KindFolder,
			ID:       formatID(row.ID),
			Name:     row.Name,
			ParentID: formatIDPtr(row.ParentID),
		}
	}

	var folderID string
	if row.FolderID != nil {
		folderID = formatID(*row.FolderID)
	}
	return models.FileResult{
		Kind:     models.KindFile,
		ID:       formatID(row.ID),
		Name:     row.Name,
		FolderID: folderID,
		Size:     row.Size,
		MimeType: row.MimeType,
	}
}
