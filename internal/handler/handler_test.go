package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"explorer/internal/domain"
	"explorer/internal/models"
	"explorer/internal/service"
)

type stubFolderService struct {
	tree     []models.FolderDTO
	roots    []models.FolderNodeDTO
	children []models.FolderNodeDTO
	path     *models.FolderPathDTO
	items    *models.FolderItemsDTO
	err      error
}

func (s *stubFolderService) GetTree(ctx context.Context) ([]models.FolderDTO, error) {
	return s.tree, s.err
}

func (s *stubFolderService) GetRoots(ctx context.Context) ([]models.FolderNodeDTO, error) {
	return s.roots, s.err
}

func (s *stubFolderService) GetChildren(ctx context.Context, id int64) ([]models.FolderNodeDTO, error) {
	return s.children, s.err
}

func (s *stubFolderService) GetFolderPath(ctx context.Context, id int64) (*models.FolderPathDTO, error) {
	return s.path, s.err
}

func (s *stubFolderService) GetFolderItems(ctx context.Context, id int64) (*models.FolderItemsDTO, error) {
	return s.items, s.err
}

type stubSearchService struct {
	resp *models.SearchResponseDTO
	err  error
	last service.SearchRequest
}

func (s *stubSearchService) Search(ctx context.Context, req service.SearchRequest) (*models.SearchResponseDTO, error) {
	s.last = req
	return s.resp, s.err
}

func newTestMux(fs FolderService, ss SearchProvider) *http.ServeMux {
	logger := slog.New(slog.DiscardHandler)
	folderHandler := NewFolderHandler(fs, logger)
	searchHandler := NewSearchHandler(ss, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HealthCheck)
	mux.HandleFunc("GET /api/v1/folders/tree", folderHandler.GetTree)
	mux.HandleFunc("GET /api/v1/folders/root", folderHandler.GetRoots)
	mux.HandleFunc("GET /api/v1/folders/{id}/children", folderHandler.GetChildren)
	mux.HandleFunc("GET /api/v1/folders/{id}/path", folderHandler.GetPath)
	mux.HandleFunc("GET /api/v1/folders/{id}/items", folderHandler.GetItems)
	mux.HandleFunc("GET /api/v1/search", searchHandler.Search)
	mux.HandleFunc("/", NotFound)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v (body %q)", err, rec.Body.String())
	}
	return envelope.Error.Code
}

func TestFolderHandler_InvalidID(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "children non-numeric", target: "/api/v1/folders/abc/children"},
		{name: "children zero", target: "/api/v1/folders/0/children"},
		{name: "children negative", target: "/api/v1/folders/-3/children"},
		{name: "path non-numeric", target: "/api/v1/folders/abc/path"},
		{name: "items non-numeric", target: "/api/v1/folders/1.5/items"},
	}

	mux := newTestMux(&stubFolderService{}, &stubSearchService{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, mux, tt.target)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if code := decodeErrorCode(t, rec); code != "BAD_REQUEST" {
				t.Errorf("error code = %q, want BAD_REQUEST", code)
			}
		})
	}
}

func TestFolderHandler_PathNotFound(t *testing.T) {
	fs := &stubFolderService{err: fmt.Errorf("folder 999: %w", domain.ErrNotFound)}
	mux := newTestMux(fs, &stubSearchService{})

	rec := doRequest(t, mux, "/api/v1/folders/999/path")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", code)
	}
}

func TestFolderHandler_StoreFailureIs500(t *testing.T) {
	fs := &stubFolderService{err: fmt.Errorf("list roots: %w", domain.ErrUnavailable)}
	mux := newTestMux(fs, &stubSearchService{})

	rec := doRequest(t, mux, "/api/v1/folders/root")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "INTERNAL_SERVER_ERROR" {
		t.Errorf("error code = %q, want INTERNAL_SERVER_ERROR", code)
	}
}

func TestFolderHandler_ItemsOK(t *testing.T) {
	fs := &stubFolderService{
		items: &models.FolderItemsDTO{
			Folders: []models.FolderDTO{},
			Files:   []models.FileDTO{},
		},
	}
	mux := newTestMux(fs, &stubSearchService{})

	rec := doRequest(t, mux, "/api/v1/folders/7/items")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var items struct {
		Folders []json.RawMessage `json:"folders"`
		Files   []json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if items.Folders == nil || items.Files == nil {
		t.Errorf("empty collections must serialize as [], got %s", rec.Body.String())
	}
}

func TestSearchHandler_ShortQuery(t *testing.T) {
	ss := &stubSearchService{err: fmt.Errorf("%w: query must be at least 2 characters", domain.ErrValidation)}
	mux := newTestMux(&stubFolderService{}, ss)

	rec := doRequest(t, mux, "/api/v1/search?q=a")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "BAD_REQUEST" {
		t.Errorf("error code = %q, want BAD_REQUEST", code)
	}
}

func TestSearchHandler_ParamParsing(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantOffset int
		wantTypes  []string
	}{
		{
			name:      "defaults",
			target:    "/api/v1/search?q=report",
			wantLimit: 30,
		},
		{
			name:       "explicit values",
			target:     "/api/v1/search?q=report&limit=50&offset=30&types=files",
			wantLimit:  50,
			wantOffset: 30,
			wantTypes:  []string{"files"},
		},
		{
			name:      "malformed limit falls back",
			target:    "/api/v1/search?q=report&limit=abc",
			wantLimit: 30,
		},
		{
			name:      "limit clamped into range",
			target:    "/api/v1/search?q=report&limit=999",
			wantLimit: 100,
		},
		{
			name:      "zero limit clamped up",
			target:    "/api/v1/search?q=report&limit=0",
			wantLimit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss := &stubSearchService{resp: &models.SearchResponseDTO{Results: []models.SearchResult{}}}
			mux := newTestMux(&stubFolderService{}, ss)

			rec := doRequest(t, mux, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			if ss.last.Limit != tt.wantLimit || ss.last.Offset != tt.wantOffset {
				t.Errorf("service got limit/offset %d/%d, want %d/%d",
					ss.last.Limit, ss.last.Offset, tt.wantLimit, tt.wantOffset)
			}
			if len(ss.last.Types) != len(tt.wantTypes) {
				t.Errorf("service got types %v, want %v", ss.last.Types, tt.wantTypes)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	mux := newTestMux(&stubFolderService{}, &stubSearchService{})

	rec := doRequest(t, mux, "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body["ok"] {
		t.Errorf("body = %v, want {ok: true}", body)
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	mux := newTestMux(&stubFolderService{}, &stubSearchService{})

	rec := doRequest(t, mux, "/api/v1/nope")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", code)
	}
}
