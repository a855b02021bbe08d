package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Folder is a flat tree entry.
type Folder struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parentId"`
	Name     string  `json:"name"`
}

// FolderNode is a folder with the expandability flag for lazy trees.
type FolderNode struct {
	ID          string  `json:"id"`
	ParentID    *string `json:"parentId"`
	Name        string  `json:"name"`
	HasChildren bool    `json:"hasChildren"`
}

// FolderPath is the root-to-target breadcrumb chain.
type FolderPath struct {
	Folders []FolderNode `json:"folders"`
}

// File is one file row.
type File struct {
	ID       string  `json:"id"`
	FolderID string  `json:"folderId"`
	Name     string  `json:"name"`
	Size     *int64  `json:"size"`
	MimeType *string `json:"mimeType"`
}

// FolderItems is the direct contents of one folder.
type FolderItems struct {
	Folders []Folder `json:"folders"`
	Files   []File   `json:"files"`
}

// SearchResult is one search hit. Kind is "folder" or "file"; the kind
// decides which of the optional fields are set.
type SearchResult struct {
	Kind     string  `json:"kind"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"`
	FolderID string  `json:"folderId,omitempty"`
	Size     *int64  `json:"size,omitempty"`
	MimeType *string `json:"mimeType,omitempty"`
}

// Key is the dedup identity of a hit. A folder and a file may share a raw
// numeric id, so the key is always the (kind, id) pair.
func (r SearchResult) Key() string {
	return r.Kind + ":" + r.ID
}

// SearchResponse is one page of search results with the effective
// parameters echoed back.
type SearchResponse struct {
	Q       string         `json:"q"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	Results []SearchResult `json:"results"`
}

// SearchParams are the query parameters of one search call.
type SearchParams struct {
	Q      string
	Limit  int
	Offset int
	Types  string // csv subset of "folders,files"; empty means both
}

// APIError is the server's error envelope plus the HTTP status.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("explorer api: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Client talks to the explorer API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWithHTTPClient creates a client using the given http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}
}

// GetTree fetches the full folder list, flat. Rebuild the tree by grouping
// on ParentID, starting from nil-parent roots.
func (c *Client) GetTree(ctx context.Context) ([]Folder, error) {
	var tree []Folder
	if err := c.get(ctx, "/api/v1/folders/tree", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// GetRoots fetches the root folders.
func (c *Client) GetRoots(ctx context.Context) ([]FolderNode, error) {
	var roots []FolderNode
	if err := c.get(ctx, "/api/v1/folders/root", nil, &roots); err != nil {
		return nil, err
	}
	return roots, nil
}

// GetChildren fetches the direct children of a folder.
func (c *Client) GetChildren(ctx context.Context, id string) ([]FolderNode, error) {
	var children []FolderNode
	if err := c.get(ctx, "/api/v1/folders/"+url.PathEscape(id)+"/children", nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

// GetFolderPath fetches the root-to-target breadcrumb chain of a folder.
func (c *Client) GetFolderPath(ctx context.Context, id string) (*FolderPath, error) {
	var path FolderPath
	if err := c.get(ctx, "/api/v1/folders/"+url.PathEscape(id)+"/path", nil, &path); err != nil {
		return nil, err
	}
	return &path, nil
}

// GetFolderItems fetches the direct subfolders and files of a folder.
func (c *Client) GetFolderItems(ctx context.Context, id string) (*FolderItems, error) {
	var items FolderItems
	if err := c.get(ctx, "/api/v1/folders/"+url.PathEscape(id)+"/items", nil, &items); err != nil {
		return nil, err
	}
	return &items, nil
}

// Search fetches one page of search results.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	query := url.Values{}
	query.Set("q", params.Q)
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Types != "" {
		query.Set("types", params.Types)
	}

	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/search", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoadMore fetches the page after the existing results and merges it in,
// deduplicating on (kind, id). It returns the grown list and the offset to
// use for the next call.
func (c *Client) LoadMore(ctx context.Context, existing []SearchResult, params SearchParams) ([]SearchResult, int, error) {
	params.Offset = len(existing)

	page, err := c.Search(ctx, params)
	if err != nil {
		return existing, params.Offset, err
	}

	merged := MergeAppend(existing, page.Results, SearchResult.Key)
	return merged, len(merged), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Error APIError `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Code == "" {
			return &APIError{Status: resp.StatusCode, Code: "UNKNOWN", Message: resp.Status}
		}
		envelope.Error.Status = resp.StatusCode
		return &envelope.Error
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
