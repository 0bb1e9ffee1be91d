package domain

import (
	"context"
	"time"
)

// Response is a user's application to a job.
type Response struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`

	// Populated only when loaded with relations
	Job  *Job  `json:"job,omitempty"`
	User *User `json:"user,omitempty"`
}

// ResponsePatch carries a partial update; only the message is mutable.
type ResponsePatch struct {
	Message *string
}

func (p ResponsePatch) Apply(r *Response) {
	if p.Message != nil {
		r.Message = *p.Message
	}
}

type ResponseRepository interface {
	Create(ctx context.Context, resp *Response) error
	// GetByID returns (nil, nil) when no response matches.
	GetByID(ctx context.Context, id int64) (*Response, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*Response, error)
	// FetchVisible returns responses authored by actorID or targeting a job
	// owned by actorID, ordered by insertion.
	FetchVisible(ctx context.Context, actorID int64, limit, skip int) ([]Response, error)
	FetchByJobID(ctx context.Context, jobID int64, limit, skip int) ([]Response, error)
	FetchByUserID(ctx context.Context, userID int64, limit, skip int) ([]Response, error)
	Update(ctx context.Context, id int64, patch ResponsePatch) (*Response, error)
	Delete(ctx context.Context, id int64) (*Response, error)
}

type ResponseUsecase interface {
	CreateResponse(ctx context.Context, actorID, jobID int64, message string) (*Response, error)
	GetResponse(ctx context.Context, actorID, id int64) (*Response, error)
	ListVisible(ctx context.Context, actorID int64, limit, skip int) ([]Response, error)
	ListByUserID(ctx context.Context, actorID, userID int64, limit, skip int) ([]Response, error)
	ListByJobID(ctx context.Context, actorID, jobID int64, limit, skip int) ([]Response, error)
	UpdateResponse(ctx context.Context, actorID, id int64, patch ResponsePatch) (*Response, error)
	DeleteResponse(ctx context.Context, actorID, id int64) (*Response, error)
}
