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

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, hashed_password, is_company, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	user.CreatedAt = time.Now()
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.HashedPassword, user.IsCompany, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User with this email already exists")
		}
		return err
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *userRepo) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT id, name, email, hashed_password, is_company, created_at FROM users ` + where
	var user domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.IsCompany, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDWithRelations eagerly loads the user's jobs and responses.
func (r *userRepo) GetByIDWithRelations(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	jobRows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, description, salary_from, salary_to, is_active, created_at
         FROM jobs WHERE user_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer jobRows.Close()
	for jobRows.Next() {
		var job domain.Job
		if err := jobRows.Scan(&job.ID, &job.UserID, &job.Title, &job.Description,
			&job.SalaryFrom, &job.SalaryTo, &job.IsActive, &job.CreatedAt); err != nil {
			return nil, err
		}
		user.Jobs = append(user.Jobs, job)
	}
	if err := jobRows.Err(); err != nil {
		return nil, err
	}

	respRows, err := r.db.Query(ctx,
		`SELECT id, job_id, user_id, message, created_at
         FROM responses WHERE user_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer respRows.Close()
	for respRows.Next() {
		var resp domain.Response
		if err := respRows.Scan(&resp.ID, &resp.JobID, &resp.UserID, &resp.Message, &resp.CreatedAt); err != nil {
			return nil, err
		}
		user.Responses = append(user.Responses, resp)
	}
	return user, respRows.Err()
}

func (r *userRepo) Fetch(ctx context.Context, limit, skip int) ([]domain.User, error) {
	query := `SELECT id, name, email, hashed_password, is_company, created_at
              FROM users ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword,
			&user.IsCompany, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update merges the patch into the stored row field by field inside a
// transaction. Fields absent from the patch keep their prior value.
func (r *userRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var user domain.User
	err = tx.QueryRow(ctx,
		`SELECT id, name, email, hashed_password, is_company, created_at
         FROM users WHERE id = $1 FOR UPDATE`, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.IsCompany, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(&user)

	_, err = tx.Exec(ctx,
		`UPDATE users SET name = $2, email = $3, hashed_password = $4, is_company = $5 WHERE id = $1`,
		user.ID, user.Name, user.Email, user.HashedPassword, user.IsCompany,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.Conflict("User with this email already exists")
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the row and returns the user as it existed before deletion.
func (r *userRepo) Delete(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx,
		`DELETE FROM users WHERE id = $1
         RETURNING id, name, email, hashed_password, is_company, created_at`, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.IsCompany, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
