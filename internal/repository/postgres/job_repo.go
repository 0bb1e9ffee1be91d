package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (user_id, title, description, salary_from, salary_to, is_active, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	job.CreatedAt = time.Now()
	err := r.db.QueryRow(ctx, query,
		job.UserID, job.Title, job.Description, job.SalaryFrom, job.SalaryTo, job.IsActive, job.CreatedAt,
	).Scan(&job.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperror.Forbidden("Referenced user does not exist")
		}
		return err
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, user_id, title, description, salary_from, salary_to, is_active, created_at
              FROM jobs WHERE id = $1`
	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.UserID, &job.Title, &job.Description,
		&job.SalaryFrom, &job.SalaryTo, &job.IsActive, &job.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByIDWithResponses eagerly loads the job's responses.
func (r *jobRepo) GetByIDWithResponses(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := r.GetByID(ctx, id)
	if err != nil || job == nil {
		return job, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, user_id, message, created_at
         FROM responses WHERE job_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var resp domain.Response
		if err := rows.Scan(&resp.ID, &resp.JobID, &resp.UserID, &resp.Message, &resp.CreatedAt); err != nil {
			return nil, err
		}
		job.Responses = append(job.Responses, resp)
	}
	return job, rows.Err()
}

func (r *jobRepo) Fetch(ctx context.Context, limit, skip int) ([]domain.Job, error) {
	return r.fetch(ctx,
		`SELECT id, user_id, title, description, salary_from, salary_to, is_active, created_at
         FROM jobs ORDER BY id LIMIT $1 OFFSET $2`, limit, skip)
}

// FetchByUserID returns the jobs owned by a user, in insertion order.
func (r *jobRepo) FetchByUserID(ctx context.Context, userID int64, limit, skip int) ([]domain.Job, error) {
	return r.fetch(ctx,
		`SELECT id, user_id, title, description, salary_from, salary_to, is_active, created_at
         FROM jobs WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`, userID, limit, skip)
}

func (r *jobRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(&job.ID, &job.UserID, &job.Title, &job.Description,
			&job.SalaryFrom, &job.SalaryTo, &job.IsActive, &job.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Update merges the patch into the stored row field by field inside a
// transaction. Fields absent from the patch keep their prior value.
func (r *jobRepo) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var job domain.Job
	err = tx.QueryRow(ctx,
		`SELECT id, user_id, title, description, salary_from, salary_to, is_active, created_at
         FROM jobs WHERE id = $1 FOR UPDATE`, id).Scan(
		&job.ID, &job.UserID, &job.Title, &job.Description,
		&job.SalaryFrom, &job.SalaryTo, &job.IsActive, &job.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(&job)

	_, err = tx.Exec(ctx,
		`UPDATE jobs SET title = $2, description = $3, salary_from = $4, salary_to = $5, is_active = $6
         WHERE id = $1`,
		job.ID, job.Title, job.Description, job.SalaryFrom, job.SalaryTo, job.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &job, nil
}

// Delete removes the row and returns the job as it existed before deletion.
func (r *jobRepo) Delete(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	err := r.db.QueryRow(ctx,
		`DELETE FROM jobs WHERE id = $1
         RETURNING id, user_id, title, description, salary_from, salary_to, is_active, created_at`, id).Scan(
		&job.ID, &job.UserID, &job.Title, &job.Description,
		&job.SalaryFrom, &job.SalaryTo, &job.IsActive, &job.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
