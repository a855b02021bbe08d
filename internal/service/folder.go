package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"explorer/internal/domain"
	"explorer/internal/models"
)

// FolderRepository is the hierarchy query surface the folder service needs.
type FolderRepository interface {
	ListRoots(ctx context.Context) ([]models.FolderNode, error)
	ListChildren(ctx context.Context, parentID int64) ([]models.FolderNode, error)
	GetAncestorPath(ctx context.Context, folderID int64) ([]models.FolderNode, error)
	ListSubfolders(ctx context.Context, folderID int64) ([]models.Folder, error)
	ListFiles(ctx context.Context, folderID int64) ([]models.File, error)
	ListAllFolders(ctx context.Context) ([]models.Folder, error)
}

// FolderService orchestrates hierarchy queries and maps rows to DTOs.
type FolderService struct {
	repo   FolderRepository
	logger *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(repo FolderRepository, logger *slog.Logger) *FolderService {
	return &FolderService{
		repo:   repo,
		logger: logger,
	}
}

// GetTree returns every folder as a flat list. Tree reconstruction is left
// to the consumer: grouping a parent-pointer list is cheap client-side work,
// and keeping it here would force recomputation on every request.
func (s *FolderService) GetTree(ctx context.Context) ([]models.FolderDTO, error) {
	rows, err := s.repo.ListAllFolders(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.FolderDTO, 0, len(rows))
	for _, f := range rows {
		dtos = append(dtos, toFolderDTO(f))
	}
	return dtos, nil
}

// GetRoots returns the root folders with expandability flags.
func (s *FolderService) GetRoots(ctx context.Context) ([]models.FolderNodeDTO, error) {
	rows, err := s.repo.ListRoots(ctx)
	if err != nil {
		return nil, err
	}
	return toFolderNodeDTOs(rows), nil
}

// GetChildren returns the direct children of id. An empty list is a valid
// answer (leaf folder), not an error.
func (s *FolderService) GetChildren(ctx context.Context, id int64) ([]models.FolderNodeDTO, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFolderNodeDTOs(rows), nil
}

// GetFolderPath resolves the root→target breadcrumb chain for id.
// The accessor yields target→root order; this reverses it. An empty walk
// means the folder does not exist.
func (s *FolderService) GetFolderPath(ctx context.Context, id int64) (*models.FolderPathDTO, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	rows, err := s.repo.GetAncestorPath(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}

	nodes := make([]models.FolderNodeDTO, len(rows))
	for i, row := range rows {
		nodes[len(rows)-1-i] = toFolderNodeDTO(row)
	}

	return &models.FolderPathDTO{Folders: nodes}, nil
}

// GetFolderItems returns the direct subfolders and files of id. The two
// fetches have no ordering dependency and run concurrently. Empty slices
// are valid; the folder not existing also yields two empty slices.
func (s *FolderService) GetFolderItems(ctx context.Context, id int64) (*models.FolderItemsDTO, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var (
		subfolders []models.Folder
		files      []models.File
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subfolders, err = s.repo.ListSubfolders(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		files, err = s.repo.ListFiles(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := &models.FolderItemsDTO{
		Folders: make([]models.FolderDTO, 0, len(subfolders)),
		Files:   make([]models.FileDTO, 0, len(files)),
	}
	for _, f := range subfolders {
		items.Folders = append(items.Folders, toFolderDTO(f))
	}
	for _, f := range files {
		items.Files = append(items.Files, models.FileDTO{
			ID:       formatID(f.ID),
			FolderID: formatID(f.FolderID),
			Name:     f.Name,
			Size:     f.Size,
			MimeType: f.MimeType,
		})
	}

	return items, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("folder id must be a positive integer: %w", domain.ErrValidation)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatIDPtr(id *int64) *string {
	if id == nil {
		return nil
	}
	s := strconv.FormatInt(*id, 10)
	return &s
}

func toFolderDTO(f models.Folder) models.FolderDTO {
	return models.FolderDTO{
		ID:       formatID(f.ID),
		ParentID: formatIDPtr(f.ParentID),
		Name:     f.Name,
	}
}

func toFolderNodeDTO(n models.FolderNode) models.FolderNodeDTO {
	return models.FolderNodeDTO{
		ID:          formatID(n.ID),
		ParentID:    formatIDPtr(n.ParentID),
		Name:        n.Name,
		HasChildren: n.HasChildren,
	}
}

func toFolderNodeDTOs(rows []models.FolderNode) []models.FolderNodeDTO {
	dtos := make([]models.FolderNodeDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toFolderNodeDTO(row))
	}
	return dtos
}
