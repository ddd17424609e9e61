package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	Analysis  sql.NullString
	Score     sql.NullFloat64
	CreatedAt time.Time
}

type Job struct {
	ID          uuid.UUID
	Title       string
	Description string
	JobType     string
	CreatedAt   time.Time
}

type Resume struct {
	UserID           uuid.UUID
	ObjectKey        string
	Extension        string
	OriginalFilename string
	CreatedAt        time.Time
}
