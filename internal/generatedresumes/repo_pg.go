package generatedresumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new generated resume record.
func (r *PGRepo) Create(ctx context.Context, rec GeneratedResume) error {
	const query = `
INSERT INTO generated_resumes (
    id,
    file_name,
    storage_key,
    strategy,
    mime_type,
    size_bytes,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.FileName,
		rec.StorageKey,
		rec.Strategy,
		rec.MimeType,
		rec.SizeBytes,
		rec.CreatedAt,
	)
	return err
}

// GetByFileName fetches a record by its public file name.
func (r *PGRepo) GetByFileName(ctx context.Context, fileName string) (GeneratedResume, error) {
	const query = `
SELECT id, file_name, storage_key, strategy, mime_type, size_bytes, created_at
FROM generated_resumes
WHERE file_name = $1
LIMIT 1`

	var rec GeneratedResume
	err := r.DB.QueryRowContext(ctx, query, fileName).Scan(
		&rec.ID,
		&rec.FileName,
		&rec.StorageKey,
		&rec.Strategy,
		&rec.MimeType,
		&rec.SizeBytes,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedResume{}, ErrNotFound
		}
		return GeneratedResume{}, err
	}
	return rec, nil
}

// List returns records ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]GeneratedResume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, file_name, storage_key, strategy, mime_type, size_bytes, created_at
FROM generated_resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GeneratedResume
	for rows.Next() {
		var rec GeneratedResume
		if err := rows.Scan(
			&rec.ID,
			&rec.FileName,
			&rec.StorageKey,
			&rec.Strategy,
			&rec.MimeType,
			&rec.SizeBytes,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
