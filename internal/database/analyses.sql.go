package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createAnalysis = `-- name: CreateAnalysis :exec
INSERT INTO application_analyses (
id, user_id, job_id, analysis, score)
VALUES ($1, $2, $3, NULL, NULL)
`

type CreateAnalysisParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	JobID  uuid.UUID
}

func (q *Queries) CreateAnalysis(ctx context.Context, arg CreateAnalysisParams) error {
	_, err := q.db.ExecContext(ctx, createAnalysis, arg.ID, arg.UserID, arg.JobID)
	return err
}

const getAnalysis = `-- name: GetAnalysis :one
SELECT id, user_id, job_id, analysis, score, created_at FROM application_analyses WHERE id=$1
`

func (q *Queries) GetAnalysis(ctx context.Context, id uuid.UUID) (Analysis, error) {
	row := q.db.QueryRowContext(ctx, getAnalysis, id)
	var i Analysis
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.JobID,
		&i.Analysis,
		&i.Score,
		&i.CreatedAt,
	)
	return i, err
}

const getLatestAnalysisByUserAndJob = `-- name: GetLatestAnalysisByUserAndJob :one
SELECT id, user_id, job_id, analysis, score, created_at FROM application_analyses
WHERE user_id=$1 AND job_id=$2
ORDER BY created_at DESC
LIMIT 1
`

type GetLatestAnalysisByUserAndJobParams struct {
	UserID uuid.UUID
	JobID  uuid.UUID
}

func (q *Queries) GetLatestAnalysisByUserAndJob(ctx context.Context, arg GetLatestAnalysisByUserAndJobParams) (Analysis, error) {
	row := q.db.QueryRowContext(ctx, getLatestAnalysisByUserAndJob, arg.UserID, arg.JobID)
	var i Analysis
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.JobID,
		&i.Analysis,
		&i.Score,
		&i.CreatedAt,
	)
	return i, err
}

const updateAnalysisResult = `-- name: UpdateAnalysisResult :exec
UPDATE application_analyses
SET analysis=$1, score=$2
WHERE id=$3
`

type UpdateAnalysisResultParams struct {
	Analysis sql.NullString
	Score    sql.NullFloat64
	ID       uuid.UUID
}

func (q *Queries) UpdateAnalysisResult(ctx context.Context, arg UpdateAnalysisResultParams) error {
	_, err := q.db.ExecContext(ctx, updateAnalysisResult, arg.Analysis, arg.Score, arg.ID)
	return err
}
