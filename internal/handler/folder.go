package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"explorer/internal/domain"
	"explorer/internal/httputil"
	"explorer/internal/models"
)

// FolderService is the service surface the folder handler needs.
type FolderService interface {
	GetTree(ctx context.Context) ([]models.FolderDTO, error)
	GetRoots(ctx context.Context) ([]models.FolderNodeDTO, error)
	GetChildren(ctx context.Context, id int64) ([]models.FolderNodeDTO, error)
	GetFolderPath(ctx context.Context, id int64) (*models.FolderPathDTO, error)
	GetFolderItems(ctx context.Context, id int64) (*models.FolderItemsDTO, error)
}

// FolderHandler handles HTTP requests for folder browsing
type FolderHandler struct {
	service FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(service FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		service: service,
		logger:  logger,
	}
}

// GetTree returns every folder as a flat list
func (h *FolderHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.GetTree(r.Context())
	if err != nil {
		h.logger.Error("get tree failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// GetRoots returns the root folders
func (h *FolderHandler) GetRoots(w http.ResponseWriter, r *http.Request) {
	roots, err := h.service.GetRoots(r.Context())
	if err != nil {
		h.logger.Error("get roots failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, roots)
}

// GetChildren returns the direct children of the folder in the path
func (h *FolderHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
	id, err := parseFolderID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	children, err := h.service.GetChildren(r.Context(), id)
	if err != nil {
		h.logger.Error("get children failed", "folder_id", id, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, children)
}

// GetPath returns the root-to-target breadcrumb chain
func (h *FolderHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	id, err := parseFolderID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	path, err := h.service.GetFolderPath(r.Context(), id)
	if err != nil {
		if !errorsIsClient(err) {
			h.logger.Error("get path failed", "folder_id", id, "error", err)
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, path)
}

// GetItems returns the direct subfolders and files of the folder in the path
func (h *FolderHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	id, err := parseFolderID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	items, err := h.service.GetFolderItems(r.Context(), id)
	if err != nil {
		h.logger.Error("get items failed", "folder_id", id, "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// parseFolderID extracts and validates the {id} path value. Identifiers
// travel as decimal strings and must be positive integers.
func parseFolderID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid folder id %q: %w", raw, domain.ErrValidation)
	}
	return id, nil
}
