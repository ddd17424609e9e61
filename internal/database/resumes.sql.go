package database

import (
	"context"

	"github.com/google/uuid"
)

const getResumeByUser = `-- name: GetResumeByUser :one
SELECT user_id, object_key, extension, original_filename, created_at FROM resumes WHERE user_id=$1
`

func (q *Queries) GetResumeByUser(ctx context.Context, userID uuid.UUID) (Resume, error) {
	row := q.db.QueryRowContext(ctx, getResumeByUser, userID)
	var i Resume
	err := row.Scan(
		&i.UserID,
		&i.ObjectKey,
		&i.Extension,
		&i.OriginalFilename,
		&i.CreatedAt,
	)
	return i, err
}

const upsertResume = `-- name: UpsertResume :exec
INSERT INTO resumes (
user_id, object_key, extension, original_filename)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id)
DO UPDATE SET
    object_key = EXCLUDED.object_key,
    extension = EXCLUDED.extension,
    original_filename = EXCLUDED.original_filename,
    created_at = CURRENT_TIMESTAMP
`

type UpsertResumeParams struct {
	UserID           uuid.UUID
	ObjectKey        string
	Extension        string
	OriginalFilename string
}

func (q *Queries) UpsertResume(ctx context.Context, arg UpsertResumeParams) error {
	_, err := q.db.ExecContext(ctx, upsertResume,
		arg.UserID,
		arg.ObjectKey,
		arg.Extension,
		arg.OriginalFilename,
	)
	return err
}
