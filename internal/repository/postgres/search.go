package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"explorer/internal/models"
)

// SearchRepository issues the paginated substring queries.
type SearchRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSearchRepository creates a new search repository
func NewSearchRepository(config *RepositoryConfig) *SearchRepository {
	return &SearchRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// escapeLikePattern escapes LIKE metacharacters so the query text is matched
// literally. Paired with ESCAPE '\' in the queries below.
func escapeLikePattern(q string) string {
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, `%`, `\%`)
	q = strings.ReplaceAll(q, `_`, `\_`)
	return q
}

// SearchFolders matches folders whose name contains q (case-insensitive),
// name-ascending, paginated at the store.
func (r *SearchRepository) SearchFolders(ctx context.Context, q string, limit, offset int) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, parent_id, name
		FROM %s
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query, "%"+escapeLikePattern(q)+"%", limit, offset)
	if err != nil {
		return nil, wrapStoreError("search folders", err)
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

// SearchFiles matches files whose name contains q (case-insensitive),
// name-ascending, paginated at the store.
func (r *SearchRepository) SearchFiles(ctx context.Context, q string, limit, offset int) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, folder_id, name, size, mime_type
		FROM %s
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`, r.tables.Files)

	rows, err := r.pool.Query(ctx, query, "%"+escapeLikePattern(q)+"%", limit, offset)
	if err != nil {
		return nil, wrapStoreError("search files", err)
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

// buildSearchUnionQuery assembles the union search SQL for the selected
// kinds. With both kinds the arms are concatenated with UNION ALL and
// globally ordered by (kind rank, name) with folders before files, and the
// LIMIT/OFFSET sits outside the union so pagination slices the combined,
// globally-ordered set. Single-kind selections keep the same column list
// and order by name alone.
func buildSearchUnionQuery(tables *TableNames, includeFolders, includeFiles bool) string {
	folderArm := fmt.Sprintf(`
		SELECT
			'folder' AS kind,
			f.id AS id,
			f.name AS name,
			f.parent_id AS parent_id,
			NULL::bigint AS folder_id,
			NULL::bigint AS size,
			NULL::varchar AS mime_type
		FROM %s f
		WHERE f.name ILIKE $1 ESCAPE '\'
	`, tables.Folders)

	fileArm := fmt.Sprintf(`
		SELECT
			'file' AS kind,
			x.id AS id,
			x.name AS name,
			NULL::bigint AS parent_id,
			x.folder_id AS folder_id,
			x.size::bigint AS size,
			x.mime_type AS mime_type
		FROM %s x
		WHERE x.name ILIKE $1 ESCAPE '\'
	`, tables.Files)

	switch {
	case includeFolders && !includeFiles:
		return folderArm + ` ORDER BY name ASC LIMIT $2 OFFSET $3`
	case !includeFolders && includeFiles:
		return fileArm + ` ORDER BY name ASC LIMIT $2 OFFSET $3`
	default:
		return `SELECT * FROM (` + folderArm + ` UNION ALL ` + fileArm + `) t
			ORDER BY CASE WHEN t.kind = 'folder' THEN 0 ELSE 1 END, t.name ASC
			LIMIT $2 OFFSET $3`
	}
}

// SearchUnion runs the combined substring search. With a single kind selected
// it behaves as the corresponding kind query. With both kinds the row sets
// are concatenated and globally ordered by (kind rank, name) with folders
// before files, and only then paginated: slicing after the global sort is
// what keeps page boundaries stable and non-overlapping for a fixed q.
func (r *SearchRepository) SearchUnion(ctx context.Context, opts models.SearchOptions) ([]models.SearchRow, error) {
	pattern := "%" + escapeLikePattern(opts.Query) + "%"
	query := buildSearchUnionQuery(r.tables, opts.IncludeFolders, opts.IncludeFiles)

	rows, err := r.pool.Query(ctx, query, pattern, opts.Limit, opts.Offset)
	if err != nil {
		return nil, wrapStoreError("search union", err)
	}
	defer rows.Close()

	return scanSearchRows(rows)
}

func scanSearchRows(rows pgx.Rows) ([]models.SearchRow, error) {
	var results []models.SearchRow
	for rows.Next() {
		var row models.SearchRow
		var kind string
		if err := rows.Scan(&kind, &row.ID, &row.Name, &row.ParentID, &row.FolderID, &row.Size, &row.MimeType); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		row.Kind = models.Kind(kind)
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}

	return results, nil
}
