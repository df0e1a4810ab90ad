package postgres

import (
	"context"
	"database/sql"

	"campusdocs/internal/model"
	"campusdocs/internal/repository"
)

// ContentPostgres is a PostgreSQL implementation of repository.ContentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ContentPostgres struct {
	db *sql.DB
}

// NewContentPostgres creates a new ContentPostgres repository.
func NewContentPostgres(db *sql.DB) *ContentPostgres {
	return &ContentPostgres{db: db}
}

var _ repository.ContentRepository = (*ContentPostgres)(nil)

const contentColumns = `id, owner_id, subject_id, title, filename, approval_status, storage_key, mime_type, byte_size, page_count, created_at, updated_at`

func scanContent(row interface{ Scan(...any) error }) (*model.ContentAsset, error) {
	var a model.ContentAsset
	var pageCount sql.NullInt64
	if err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.SubjectID,
		&a.Title,
		&a.Filename,
		&a.ApprovalStatus,
		&a.StorageKey,
		&a.MimeType,
		&a.ByteSize,
		&pageCount,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if pageCount.Valid {
		n := int(pageCount.Int64)
		a.PageCount = &n
	}
	return &a, nil
}

// Create inserts a new content row and returns the stored record.
func (r *ContentPostgres) Create(ctx context.Context, asset *model.ContentAsset) (*model.ContentAsset, error) {
	const q = `
		INSERT INTO contents (id, owner_id, subject_id, title, filename, approval_status, storage_key, mime_type, byte_size, page_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + contentColumns
	var pageCount sql.NullInt64
	if asset.PageCount != nil {
		pageCount = sql.NullInt64{Int64: int64(*asset.PageCount), Valid: true}
	}
	row := r.db.QueryRowContext(ctx, q,
		asset.ID,
		asset.OwnerID,
		asset.SubjectID,
		asset.Title,
		asset.Filename,
		asset.ApprovalStatus,
		asset.StorageKey,
		asset.MimeType,
		asset.ByteSize,
		pageCount,
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	return scanContent(row)
}

// FindByID fetches a single content asset by its ID.
func (r *ContentPostgres) FindByID(ctx context.Context, id string) (*model.ContentAsset, error) {
	const q = `SELECT ` + contentColumns + ` FROM contents WHERE id = $1`
	return scanContent(r.db.QueryRowContext(ctx, q, id))
}

// List returns content assets using LIMIT/OFFSET pagination and a total count,
// optionally scoped to one subject.
func (r *ContentPostgres) List(ctx context.Context, subjectID string, pq repository.PageQuery) (*repository.PageResult[model.ContentAsset], error) {
	var (
		total int
		rows  *sql.Rows
		err   error
	)
	if subjectID != "" {
		const qCount = `SELECT COUNT(*) FROM contents WHERE subject_id = $1`
		if err = r.db.QueryRowContext(ctx, qCount, subjectID).Scan(&total); err != nil {
			return nil, err
		}
		const qList = `
			SELECT ` + contentColumns + `
			FROM contents
			WHERE subject_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2 OFFSET $3
		`
		rows, err = r.db.QueryContext(ctx, qList, subjectID, pq.Limit, pq.Offset)
	} else {
		const qCount = `SELECT COUNT(*) FROM contents`
		if err = r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
			return nil, err
		}
		const qList = `
			SELECT ` + contentColumns + `
			FROM contents
			ORDER BY created_at DESC, id DESC
			LIMIT $1 OFFSET $2
		`
		rows, err = r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContentAsset, 0)
	for rows.Next() {
		a, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ContentAsset]{Items: items, Total: total}, nil
}

// UpdatePageCount writes the lazily computed page count back onto the row.
func (r *ContentPostgres) UpdatePageCount(ctx context.Context, id string, pageCount int) error {
	const q = `UPDATE contents SET page_count = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, pageCount)
	return err
}

// UpdateApproval sets the approval status of an asset.
func (r *ContentPostgres) UpdateApproval(ctx context.Context, id string, status string) error {
	const q = `UPDATE contents SET approval_status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a content asset by ID. It does not return an error if the row does not exist.
func (r *ContentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM contents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
