package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"explorer/internal/domain"
	"explorer/internal/models"
)

// maxAncestorDepth bounds the recursive ancestor walk. The forest invariant
// makes real paths far shallower; hitting the bound means the parent chain
// has a cycle, which is a store defect and must fail loudly.
const maxAncestorDepth = 10000

// FolderRepository issues the hierarchy queries against the folders/files tables.
type FolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) *FolderRepository {
	return &FolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ListRoots lists all root folders (parent_id IS NULL), name-ascending,
// each annotated with the derived hasChildren flag.
func (r *FolderRepository) ListRoots(ctx context.Context) ([]models.FolderNode, error) {
	query := fmt.Sprintf(`
		SELECT
			f.id, f.parent_id, f.name,
			EXISTS (SELECT 1 FROM %s c WHERE c.parent_id = f.id) AS has_children
		FROM %s f
		WHERE f.parent_id IS NULL
		ORDER BY f.name ASC
	`, r.tables.Folders, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreError("list roots", err)
	}
	defer rows.Close()

	return scanFolderNodes(rows)
}

// ListChildren lists the immediate child folders of parentID with the same
// ordering and annotation contract as ListRoots. An empty result is valid
// (leaf folder), not an error.
func (r *FolderRepository) ListChildren(ctx context.Context, parentID int64) ([]models.FolderNode, error) {
	query := fmt.Sprintf(`
		SELECT
			f.id, f.parent_id, f.name,
			EXISTS (SELECT 1 FROM %s c WHERE c.parent_id = f.id) AS has_children
		FROM %s f
		WHERE f.parent_id = $1
		ORDER BY f.name ASC
	`, r.tables.Folders, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, wrapStoreError("list children", err)
	}
	defer rows.Close()

	return scanFolderNodes(rows)
}

// GetAncestorPath walks from folderID up the parent chain to a root using a
// recursive CTE, returning rows in target→root order (callers reverse).
// An unknown folderID yields an empty slice. The walk is depth-bounded;
// exceeding the bound returns domain.ErrDataIntegrity.
func (r *FolderRepository) GetAncestorPath(ctx context.Context, folderID int64) ([]models.FolderNode, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE p AS (
			SELECT f.id, f.parent_id, f.name,
				EXISTS (SELECT 1 FROM %s c WHERE c.parent_id = f.id) AS has_children,
				1 AS depth
			FROM %s f
			WHERE f.id = $1

			UNION ALL

			SELECT parent.id, parent.parent_id, parent.name,
				EXISTS (SELECT 1 FROM %s c WHERE c.parent_id = parent.id) AS has_children,
				p.depth + 1
			FROM %s parent
			JOIN p ON p.parent_id = parent.id
			WHERE p.depth < $2
		)
		SELECT id, parent_id, name, has_children FROM p ORDER BY depth ASC
	`, r.tables.Folders, r.tables.Folders, r.tables.Folders, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query, folderID, maxAncestorDepth)
	if err != nil {
		return nil, wrapStoreError("get ancestor path", err)
	}
	defer rows.Close()

	path, err := scanFolderNodes(rows)
	if err != nil {
		return nil, err
	}

	if err := validateAncestorDepth(folderID, path); err != nil {
		return nil, err
	}

	return path, nil
}

// validateAncestorDepth rejects a walk that hit the recursion bound. A path
// that long means the parent chain cycles, and a loud failure beats silently
// serving the truncated prefix.
func validateAncestorDepth(folderID int64, path []models.FolderNode) error {
	if len(path) >= maxAncestorDepth {
		return fmt.Errorf("ancestor walk for folder %d exceeded depth %d: %w",
			folderID, maxAncestorDepth, domain.ErrDataIntegrity)
	}
	return nil
}

// ListSubfolders lists the direct child folders of folderID, name-ascending.
// No hasChildren annotation here; the items listing does not need it.
func (r *FolderRepository) ListSubfolders(ctx context.Context, folderID int64) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, parent_id, name
		FROM %s
		WHERE parent_id = $1
		ORDER BY name ASC
	`, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query, folderID)
	if err != nil {
		return nil, wrapStoreError("list subfolders", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.ParentID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// ListFiles lists the files directly contained in folderID, name-ascending.
func (r *FolderRepository) ListFiles(ctx context.Context, folderID int64) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, name, size, mime_type
		FROM %s
		WHERE folder_id = $1
		ORDER BY name ASC
	`, r.tables.Files)

	rows, err := r.pool.Query(ctx, query, folderID)
	if err != nil {
		return nil, wrapStoreError("list files", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.FolderID, &f.Name, &f.Size, &f.MimeType); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// ListAllFolders returns every folder id-ascending, for the non-lazy full
// tree mode. Consumers rebuild the tree by grouping on parent_id in memory.
func (r *FolderRepository) ListAllFolders(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, parent_id, name
		FROM %s
		ORDER BY id ASC
	`, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreError("list all folders", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.ParentID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

type folderNodeRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanFolderNodes(rows folderNodeRows) ([]models.FolderNode, error) {
	var nodes []models.FolderNode
	for rows.Next() {
		var n models.FolderNode
		if err := rows.Scan(&n.ID, &n.ParentID, &n.Name, &n.HasChildren); err != nil {
			return nil, fmt.Errorf("scan folder node: %w", err)
		}
		nodes = append(nodes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder nodes: %w", err)
	}

	return nodes, nil
}
