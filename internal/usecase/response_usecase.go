package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type responseUsecase struct {
	responseRepo domain.ResponseRepository
	jobRepo      domain.JobRepository
}

func NewResponseUsecase(responseRepo domain.ResponseRepository, jobRepo domain.JobRepository) domain.ResponseUsecase {
	return &responseUsecase{responseRepo: responseRepo, jobRepo: jobRepo}
}

// CreateResponse lets any authenticated user respond, but only to a job
// that exists.
func (u *responseUsecase) CreateResponse(ctx context.Context, actorID, jobID int64, message string) (*domain.Response, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.Forbidden("Nonexistent job")
	}

	resp := &domain.Response{
		JobID:   jobID,
		UserID:  actorID,
		Message: message,
	}
	if err := u.responseRepo.Create(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetResponse returns a single response to its author, with the target
// job and authoring user loaded for the detail view.
func (u *responseUsecase) GetResponse(ctx context.Context, actorID, id int64) (*domain.Response, error) {
	resp, err := u.responseRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, apperror.Forbidden("Nonexistent response")
	}
	if resp.UserID != actorID {
		return nil, apperror.Unauthorized("Not enough rights")
	}
	return resp, nil
}

// ListVisible returns responses authored by the actor plus responses to
// jobs the actor owns.
func (u *responseUsecase) ListVisible(ctx context.Context, actorID int64, limit, skip int) ([]domain.Response, error) {
	limit, skip = normalizePage(limit, skip)
	return u.responseRepo.FetchVisible(ctx, actorID, limit, skip)
}

func (u *responseUsecase) ListByUserID(ctx context.Context, actorID, userID int64, limit, skip int) ([]domain.Response, error) {
	if userID != actorID {
		return nil, apperror.Unauthorized("Not enough rights")
	}
	limit, skip = normalizePage(limit, skip)
	return u.responseRepo.FetchByUserID(ctx, userID, limit, skip)
}

func (u *responseUsecase) ListByJobID(ctx context.Context, actorID, jobID int64, limit, skip int) ([]domain.Response, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.Forbidden("Nonexistent job")
	}
	if job.UserID != actorID {
		return nil, apperror.Unauthorized("Not enough rights")
	}

	limit, skip = normalizePage(limit, skip)
	return u.responseRepo.FetchByJobID(ctx, jobID, limit, skip)
}

func (u *responseUsecase) UpdateResponse(ctx context.Context, actorID, id int64, patch domain.ResponsePatch) (*domain.Response, error) {
	resp, err := u.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, apperror.Forbidden("Nonexistent response")
	}
	if resp.UserID != actorID {
		return nil, apperror.Unauthorized("Not enough rights")
	}

	updated, err := u.responseRepo.Update(ctx, id, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Forbidden("Nonexistent response")
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *responseUsecase) DeleteResponse(ctx context.Context, actorID, id int64) (*domain.Response, error) {
	resp, err := u.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, apperror.Forbidden("Nonexistent response")
	}
	if resp.UserID != actorID {
		return nil, apperror.Unauthorized("Not enough rights")
	}

	deleted, err := u.responseRepo.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Forbidden("Nonexistent response")
	}
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
