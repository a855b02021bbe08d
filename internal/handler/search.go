package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"explorer/internal/httputil"
	"explorer/internal/models"
	"explorer/internal/service"
)

// SearchProvider is the service surface the search handler needs.
type SearchProvider interface {
	Search(ctx context.Context, req service.SearchRequest) (*models.SearchResponseDTO, error)
}

// SearchHandler handles HTTP requests for the unified search
type SearchHandler struct {
	service SearchProvider
	logger  *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service SearchProvider, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		logger:  logger,
	}
}

// Search runs the paginated substring search.
// Query params: q (min 2 chars trimmed), limit, offset, types (csv).
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := service.SearchRequest{
		Query:  query.Get("q"),
		Limit:  parseIntParam(query.Get("limit"), models.DefaultSearchLimit, 1, models.MaxSearchLimit),
		Offset: parseIntParam(query.Get("offset"), 0, 0, models.MaxSearchOffset),
	}

	if raw := query.Get("types"); raw != "" {
		req.Types = strings.Split(raw, ",")
	}

	resp, err := h.service.Search(r.Context(), req)
	if err != nil {
		if !errorsIsClient(err) {
			h.logger.Error("search failed", "q", req.Query, "error", err)
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// parseIntParam parses an optional integer query parameter, falling back to
// def when absent or malformed and clamping into [min, max].
func parseIntParam(raw string, def, min, max int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
