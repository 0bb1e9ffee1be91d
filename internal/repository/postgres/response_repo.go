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

type responseRepo struct {
	db *pgxpool.Pool
}

func NewResponseRepository(db *pgxpool.Pool) domain.ResponseRepository {
	return &responseRepo{db: db}
}

func (r *responseRepo) Create(ctx context.Context, resp *domain.Response) error {
	query := `INSERT INTO responses (job_id, user_id, message, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	resp.CreatedAt = time.Now()
	err := r.db.QueryRow(ctx, query, resp.JobID, resp.UserID, resp.Message, resp.CreatedAt).Scan(&resp.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperror.Forbidden("Referenced job or user does not exist")
		}
		return err
	}
	return nil
}

func (r *responseRepo) GetByID(ctx context.Context, id int64) (*domain.Response, error) {
	query := `SELECT id, job_id, user_id, message, created_at FROM responses WHERE id = $1`
	var resp domain.Response
	err := r.db.QueryRow(ctx, query, id).Scan(
		&resp.ID, &resp.JobID, &resp.UserID, &resp.Message, &resp.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetByIDWithRelations eagerly loads the response's job and user.
func (r *responseRepo) GetByIDWithRelations(ctx context.Context, id int64) (*domain.Response, error) {
	resp, err := r.GetByID(ctx, id)
	if err != nil || resp == nil {
		return resp, err
	}

	var job domain.Job
	err = r.db.QueryRow(ctx,
		`SELECT id, user_id, title, description, salary_from, salary_to, is_active, created_at
         FROM jobs WHERE id = $1`, resp.JobID).Scan(
		&job.ID, &job.UserID, &job.Title, &job.Description,
		&job.SalaryFrom, &job.SalaryTo, &job.IsActive, &job.CreatedAt,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		resp.Job = &job
	}

	var user domain.User
	err = r.db.QueryRow(ctx,
		`SELECT id, name, email, hashed_password, is_company, created_at
         FROM users WHERE id = $1`, resp.UserID).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.IsCompany, &user.CreatedAt,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		resp.User = &user
	}

	return resp, nil
}

// FetchVisible returns responses the actor may see: their own, plus those
// targeting jobs they own. Enforced in SQL so no client-side bypass is
// possible.
func (r *responseRepo) FetchVisible(ctx context.Context, actorID int64, limit, skip int) ([]domain.Response, error) {
	return r.fetch(ctx,
		`SELECT r.id, r.job_id, r.user_id, r.message, r.created_at
         FROM responses r
         JOIN jobs j ON r.job_id = j.id
         WHERE r.user_id = $1 OR j.user_id = $1
         ORDER BY r.id LIMIT $2 OFFSET $3`, actorID, limit, skip)
}

func (r *responseRepo) FetchByJobID(ctx context.Context, jobID int64, limit, skip int) ([]domain.Response, error) {
	return r.fetch(ctx,
		`SELECT id, job_id, user_id, message, created_at
         FROM responses WHERE job_id = $1 ORDER BY id LIMIT $2 OFFSET $3`, jobID, limit, skip)
}

func (r *responseRepo) FetchByUserID(ctx context.Context, userID int64, limit, skip int) ([]domain.Response, error) {
	return r.fetch(ctx,
		`SELECT id, job_id, user_id, message, created_at
         FROM responses WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`, userID, limit, skip)
}

func (r *responseRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Response, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.Response
	for rows.Next() {
		var resp domain.Response
		if err := rows.Scan(&resp.ID, &resp.JobID, &resp.UserID, &resp.Message, &resp.CreatedAt); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

// Update merges the patch into the stored row inside a transaction.
func (r *responseRepo) Update(ctx context.Context, id int64, patch domain.ResponsePatch) (*domain.Response, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var resp domain.Response
	err = tx.QueryRow(ctx,
		`SELECT id, job_id, user_id, message, created_at
         FROM responses WHERE id = $1 FOR UPDATE`, id).Scan(
		&resp.ID, &resp.JobID, &resp.UserID, &resp.Message, &resp.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(&resp)

	_, err = tx.Exec(ctx, `UPDATE responses SET message = $2 WHERE id = $1`, resp.ID, resp.Message)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes the row and returns the response as it existed before
// deletion.
func (r *responseRepo) Delete(ctx context.Context, id int64) (*domain.Response, error) {
	var resp domain.Response
	err := r.db.QueryRow(ctx,
		`DELETE FROM responses WHERE id = $1
         RETURNING id, job_id, user_id, message, created_at`, id).Scan(
		&resp.ID, &resp.JobID, &resp.UserID, &resp.Message, &resp.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
