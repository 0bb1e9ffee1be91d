package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/shopspring/decimal"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) CreateJob(ctx context.Context, actorID int64, job *domain.Job) error {
	// Ownership is always the creator, never taken from the payload
	job.UserID = actorID

	if err := validateSalaryRange(job.SalaryFrom, job.SalaryTo); err != nil {
		return err
	}
	if job.Title == "" {
		return apperror.Unprocessable("Title is required")
	}

	return u.jobRepo.Create(ctx, job)
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, limit, skip int) ([]domain.Job, error) {
	limit, skip = normalizePage(limit, skip)
	return u.jobRepo.Fetch(ctx, limit, skip)
}

func (u *jobUsecase) ListJobsByUser(ctx context.Context, userID int64, limit, skip int) ([]domain.Job, error) {
	limit, skip = normalizePage(limit, skip)
	return u.jobRepo.FetchByUserID(ctx, userID, limit, skip)
}

// UpdateJob lets only the owner change a job. A missing job is rejected as
// forbidden, an ownership mismatch as unauthorized; the two cases carry
// distinct status codes on purpose.
func (u *jobUsecase) UpdateJob(ctx context.Context, actorID, id int64, patch domain.JobPatch) (*domain.Job, error) {
	if err := validateSalaryPatch(patch); err != nil {
		return nil, err
	}

	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.Forbidden("Nonexistent job")
	}
	if job.UserID != actorID {
		return nil, apperror.Unauthorized("Not enough rights")
	}

	updated, err := u.jobRepo.Update(ctx, id, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Forbidden("Nonexistent job")
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteJob removes an owned job and returns its final state, responses
// included, since the cascade wipes them along with the job.
func (u *jobUsecase) DeleteJob(ctx context.Context, actorID, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByIDWithResponses(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.Forbidden("Nonexistent job")
	}
	if job.UserID != actorID {
		return nil, apperror.Unauthorized("Not enough rights")
	}

	if _, err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Forbidden("Nonexistent job")
		}
		return nil, err
	}
	return job, nil
}

func validateSalaryRange(from, to decimal.Decimal) error {
	if from.IsNegative() || to.IsNegative() {
		return apperror.Unprocessable("Salary must not be negative")
	}
	if from.GreaterThan(to) {
		return apperror.Unprocessable("salary_from must not exceed salary_to")
	}
	return nil
}

// validateSalaryPatch checks supplied salary fields; the cross-field check
// applies only when both bounds are present in the patch.
func validateSalaryPatch(patch domain.JobPatch) error {
	if patch.SalaryFrom != nil && patch.SalaryFrom.IsNegative() {
		return apperror.Unprocessable("Salary must not be negative")
	}
	if patch.SalaryTo != nil && patch.SalaryTo.IsNegative() {
		return apperror.Unprocessable("Salary must not be negative")
	}
	if patch.SalaryFrom != nil && patch.SalaryTo != nil && patch.SalaryFrom.GreaterThan(*patch.SalaryTo) {
		return apperror.Unprocessable("salary_from must not exceed salary_to")
	}
	return nil
}
