package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

type Job struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	SalaryFrom  decimal.Decimal `json:"salary_from"`
	SalaryTo    decimal.Decimal `json:"salary_to"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`

	// Populated only when loaded with relations
	Responses []Response `json:"responses,omitempty"`
}

// JobPatch carries a partial update. A non-nil field is always applied,
// so an explicit false for IsActive deactivates the job.
type JobPatch struct {
	Title       *string
	Description *string
	SalaryFrom  *decimal.Decimal
	SalaryTo    *decimal.Decimal
	IsActive    *bool
}

func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.SalaryFrom != nil {
		j.SalaryFrom = *p.SalaryFrom
	}
	if p.SalaryTo != nil {
		j.SalaryTo = *p.SalaryTo
	}
	if p.IsActive != nil {
		j.IsActive = *p.IsActive
	}
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	// GetByID returns (nil, nil) when no job matches.
	GetByID(ctx context.Context, id int64) (*Job, error)
	GetByIDWithResponses(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, limit, skip int) ([]Job, error)
	FetchByUserID(ctx context.Context, userID int64, limit, skip int) ([]Job, error)
	Update(ctx context.Context, id int64, patch JobPatch) (*Job, error)
	Delete(ctx context.Context, id int64) (*Job, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actorID int64, job *Job) error
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, limit, skip int) ([]Job, error)
	ListJobsByUser(ctx context.Context, userID int64, limit, skip int) ([]Job, error)
	UpdateJob(ctx context.Context, actorID, id int64, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, actorID, id int64) (*Job, error)
}
