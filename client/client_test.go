package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// searchFixture serves stable, globally ordered pages the way the API does:
// slice after the global sort, so pages never overlap while data is static.
func searchFixture(total int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "NOT_FOUND", "message": "route not found"},
			})
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 30
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		results := []SearchResult{}
		for i := offset; i < offset+limit && i < total; i++ {
			results = append(results, SearchResult{
				Kind: "file",
				ID:   strconv.Itoa(i + 1),
				Name: fmt.Sprintf("report-%04d.pdf", i+1),
			})
		}

		json.NewEncoder(w).Encode(SearchResponse{
			Q:       r.URL.Query().Get("q"),
			Limit:   limit,
			Offset:  offset,
			Results: results,
		})
	}
}

func TestLoadMore_GrowsWithoutDuplicates(t *testing.T) {
	server := httptest.NewServer(searchFixture(65))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	var results []SearchResult
	var err error

	results, _, err = c.LoadMore(ctx, results, SearchParams{Q: "report", Limit: 30})
	if err != nil {
		t.Fatalf("LoadMore() error = %v", err)
	}
	if len(results) != 30 {
		t.Fatalf("after page 1: len = %d, want 30", len(results))
	}

	results, _, err = c.LoadMore(ctx, results, SearchParams{Q: "report", Limit: 30})
	if err != nil {
		t.Fatalf("LoadMore() error = %v", err)
	}
	if len(results) != 60 {
		t.Fatalf("after page 2: len = %d, want 60", len(results))
	}

	results, _, err = c.LoadMore(ctx, results, SearchParams{Q: "report", Limit: 30})
	if err != nil {
		t.Fatalf("LoadMore() error = %v", err)
	}
	if len(results) != 65 {
		t.Fatalf("after page 3: len = %d, want 65", len(results))
	}

	seen := map[string]bool{}
	for _, r := range results {
		if seen[r.Key()] {
			t.Fatalf("duplicate key %q in merged results", r.Key())
		}
		seen[r.Key()] = true
	}
}

func TestSearch_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "BAD_REQUEST", "message": "Query must be at least 2 characters"},
		})
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.Search(context.Background(), SearchParams{Q: "a"})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err is %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Code != "BAD_REQUEST" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestGetFolderPath_DecodesChain(t *testing.T) {
	parent := "1"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/folders/3/path" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(FolderPath{
			Folders: []FolderNode{
				{ID: "1", ParentID: nil, Name: "This PC", HasChildren: true},
				{ID: "3", ParentID: &parent, Name: "Users", HasChildren: false},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL)

	path, err := c.GetFolderPath(context.Background(), "3")
	if err != nil {
		t.Fatalf("GetFolderPath() error = %v", err)
	}
	if len(path.Folders) != 2 {
		t.Fatalf("len = %d, want 2", len(path.Folders))
	}
	if path.Folders[0].ParentID != nil {
		t.Errorf("root ParentID = %v, want nil", *path.Folders[0].ParentID)
	}
	if *path.Folders[1].ParentID != path.Folders[0].ID {
		t.Errorf("chain broken: %+v", path.Folders)
	}
}
