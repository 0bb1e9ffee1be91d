package domain_test

import (
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJobPatchApply(t *testing.T) {
	base := domain.Job{
		ID:          1,
		UserID:      7,
		Title:       "Python jr.",
		Description: "Hiring a dev",
		SalaryFrom:  decimal.NewFromInt(120000),
		SalaryTo:    decimal.NewFromInt(150000),
		IsActive:    true,
	}

	t.Run("Only supplied fields change", func(t *testing.T) {
		job := base
		title := "Go jr."
		domain.JobPatch{Title: &title}.Apply(&job)

		assert.Equal(t, "Go jr.", job.Title)
		assert.Equal(t, base.Description, job.Description)
		assert.True(t, job.SalaryFrom.Equal(base.SalaryFrom))
		assert.True(t, job.SalaryTo.Equal(base.SalaryTo))
		assert.Equal(t, base.IsActive, job.IsActive)
	})

	t.Run("Explicit false is applied", func(t *testing.T) {
		job := base
		inactive := false
		domain.JobPatch{IsActive: &inactive}.Apply(&job)

		assert.False(t, job.IsActive)
		assert.Equal(t, base.Title, job.Title)
	})

	t.Run("Empty patch is a no-op", func(t *testing.T) {
		job := base
		domain.JobPatch{}.Apply(&job)

		assert.Equal(t, base, job)
	})

	t.Run("Salary bounds update independently", func(t *testing.T) {
		job := base
		from := decimal.NewFromInt(100000)
		domain.JobPatch{SalaryFrom: &from}.Apply(&job)

		assert.True(t, job.SalaryFrom.Equal(from))
		assert.True(t, job.SalaryTo.Equal(base.SalaryTo))
	})
}

func TestUserPatchApply(t *testing.T) {
	base := domain.User{
		ID:             3,
		Name:           "Job Giving Man",
		Email:          "job12@example.com",
		HashedPassword: "hash",
		IsCompany:      true,
	}

	t.Run("Email change keeps other fields", func(t *testing.T) {
		user := base
		email := "new@example.com"
		domain.UserPatch{Email: &email}.Apply(&user)

		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, base.Name, user.Name)
		assert.Equal(t, base.HashedPassword, user.HashedPassword)
		assert.True(t, user.IsCompany)
	})

	t.Run("Explicit false for is_company is applied", func(t *testing.T) {
		user := base
		individual := false
		domain.UserPatch{IsCompany: &individual}.Apply(&user)

		assert.False(t, user.IsCompany)
	})
}

func TestResponsePatchApply(t *testing.T) {
	base := domain.Response{ID: 5, JobID: 1, UserID: 2, Message: "Hire me"}

	t.Run("Message overwrites", func(t *testing.T) {
		resp := base
		msg := "Please hire me"
		domain.ResponsePatch{Message: &msg}.Apply(&resp)

		assert.Equal(t, "Please hire me", resp.Message)
		assert.Equal(t, base.JobID, resp.JobID)
		assert.Equal(t, base.UserID, resp.UserID)
	})

	t.Run("Nil message keeps prior value", func(t *testing.T) {
		resp := base
		domain.ResponsePatch{}.Apply(&resp)

		assert.Equal(t, base.Message, resp.Message)
	})
}
