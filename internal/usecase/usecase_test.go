package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/security"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByIDWithRelations(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Fetch(ctx context.Context, limit, skip int) ([]domain.User, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) GetByIDWithResponses(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, limit, skip int) ([]domain.Job, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchByUserID(ctx context.Context, userID int64, limit, skip int) ([]domain.Job, error) {
	args := m.Called(ctx, userID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

type MockResponseRepo struct {
	mock.Mock
}

func (m *MockResponseRepo) Create(ctx context.Context, resp *domain.Response) error {
	return m.Called(ctx, resp).Error(0)
}
func (m *MockResponseRepo) GetByID(ctx context.Context, id int64) (*domain.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}
func (m *MockResponseRepo) GetByIDWithRelations(ctx context.Context, id int64) (*domain.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}
func (m *MockResponseRepo) FetchVisible(ctx context.Context, actorID int64, limit, skip int) ([]domain.Response, error) {
	args := m.Called(ctx, actorID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Response), args.Error(1)
}
func (m *MockResponseRepo) FetchByJobID(ctx context.Context, jobID int64, limit, skip int) ([]domain.Response, error) {
	args := m.Called(ctx, jobID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Response), args.Error(1)
}
func (m *MockResponseRepo) FetchByUserID(ctx context.Context, userID int64, limit, skip int) ([]domain.Response, error) {
	args := m.Called(ctx, userID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Response), args.Error(1)
}
func (m *MockResponseRepo) Update(ctx context.Context, id int64, patch domain.ResponsePatch) (*domain.Response, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}
func (m *MockResponseRepo) Delete(ctx context.Context, id int64) (*domain.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}

func errCode(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	if !ok {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestJobOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Update of a missing job is forbidden", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, int64(42)).Return(nil, nil)

		_, err := uc.UpdateJob(ctx, 1, 42, domain.JobPatch{})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, errCode(t, err))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Update by a non-owner is unauthorized and leaves the job untouched", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)
		mockRepo.On("GetByID", ctx, int64(42)).Return(&domain.Job{ID: 42, UserID: 1}, nil)

		_, err := uc.UpdateJob(ctx, 2, 42, domain.JobPatch{})
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete of a missing job is forbidden", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)
		mockRepo.On("GetByIDWithResponses", ctx, int64(42)).Return(nil, nil)

		_, err := uc.DeleteJob(ctx, 1, 42)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, errCode(t, err))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Delete by a non-owner is unauthorized", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)
		mockRepo.On("GetByIDWithResponses", ctx, int64(42)).Return(&domain.Job{ID: 42, UserID: 1}, nil)

		_, err := uc.DeleteJob(ctx, 2, 42)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Owner update passes through", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)
		title := "New title"
		patch := domain.JobPatch{Title: &title}
		mockRepo.On("GetByID", ctx, int64(42)).Return(&domain.Job{ID: 42, UserID: 1}, nil)
		mockRepo.On("Update", ctx, int64(42), patch).Return(&domain.Job{ID: 42, UserID: 1, Title: title}, nil)

		updated, err := uc.UpdateJob(ctx, 1, 42, patch)
		assert.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
	})
}

func TestSalaryValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("Create with inverted range is rejected before persistence", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)

		job := &domain.Job{
			Title:       "Python jr.",
			Description: "desc",
			SalaryFrom:  decimal.NewFromInt(100),
			SalaryTo:    decimal.NewFromInt(50),
		}
		err := uc.CreateJob(ctx, 1, job)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, errCode(t, err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Create with negative salary is rejected", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)

		job := &domain.Job{
			Title:       "Python jr.",
			Description: "desc",
			SalaryFrom:  decimal.NewFromInt(-1),
		}
		err := uc.CreateJob(ctx, 1, job)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, errCode(t, err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Update patch with inverted range is rejected before any lookup", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)

		patch := domain.JobPatch{SalaryFrom: decPtr(100), SalaryTo: decPtr(50)}
		_, err := uc.UpdateJob(ctx, 1, 42, patch)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, errCode(t, err))
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Single supplied bound skips the cross-field check", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)
		patch := domain.JobPatch{SalaryFrom: decPtr(100)}
		mockRepo.On("GetByID", ctx, int64(42)).Return(&domain.Job{ID: 42, UserID: 1}, nil)
		mockRepo.On("Update", ctx, int64(42), patch).Return(&domain.Job{ID: 42, UserID: 1}, nil)

		_, err := uc.UpdateJob(ctx, 1, 42, patch)
		assert.NoError(t, err)
	})

	t.Run("Ownership is always taken from the actor", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil).Run(func(args mock.Arguments) {
			j := args.Get(1).(*domain.Job)
			assert.Equal(t, int64(7), j.UserID)
		})

		job := &domain.Job{Title: "Go dev", Description: "d", UserID: 999}
		err := uc.CreateJob(ctx, 7, job)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestResponsePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("Create against a missing job is forbidden", func(t *testing.T) {
		mockRespRepo := new(MockResponseRepo)
		mockJobRepo := new(MockJobRepo)
		uc := usecase.NewResponseUsecase(mockRespRepo, mockJobRepo)
		mockJobRepo.On("GetByID", ctx, int64(9)).Return(nil, nil)

		_, err := uc.CreateResponse(ctx, 1, 9, "hire me")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, errCode(t, err))
		mockRespRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Get by a non-author is unauthorized", func(t *testing.T) {
		mockRespRepo := new(MockResponseRepo)
		uc := usecase.NewResponseUsecase(mockRespRepo, new(MockJobRepo))
		mockRespRepo.On("GetByIDWithRelations", ctx, int64(5)).Return(&domain.Response{ID: 5, UserID: 1}, nil)

		_, err := uc.GetResponse(ctx, 2, 5)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
	})

	t.Run("Visible listing delegates the ownership union to the store", func(t *testing.T) {
		mockRespRepo := new(MockResponseRepo)
		uc := usecase.NewResponseUsecase(mockRespRepo, new(MockJobRepo))
		want := []domain.Response{{ID: 1, UserID: 3}}
		mockRespRepo.On("FetchVisible", ctx, int64(3), 100, 0).Return(want, nil)

		got, err := uc.ListVisible(ctx, 3, 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Listing another user's responses is unauthorized", func(t *testing.T) {
		mockRespRepo := new(MockResponseRepo)
		uc := usecase.NewResponseUsecase(mockRespRepo, new(MockJobRepo))

		_, err := uc.ListByUserID(ctx, 1, 2, 100, 0)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
		mockRespRepo.AssertNotCalled(t, "FetchByUserID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Listing responses of a job requires job ownership", func(t *testing.T) {
		mockRespRepo := new(MockResponseRepo)
		mockJobRepo := new(MockJobRepo)
		uc := usecase.NewResponseUsecase(mockRespRepo, mockJobRepo)
		mockJobRepo.On("GetByID", ctx, int64(9)).Return(&domain.Job{ID: 9, UserID: 1}, nil)

		_, err := uc.ListByJobID(ctx, 2, 9, 100, 0)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
	})

	t.Run("Update of a missing response is forbidden", func(t *testing.T) {
		mockRespRepo := new(MockResponseRepo)
		uc := usecase.NewResponseUsecase(mockRespRepo, new(MockJobRepo))
		mockRespRepo.On("GetByID", ctx, int64(5)).Return(nil, nil)

		msg := "updated"
		_, err := uc.UpdateResponse(ctx, 1, 5, domain.ResponsePatch{Message: &msg})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, errCode(t, err))
		mockRespRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete by a non-author is unauthorized", func(t *testing.T) {
		mockRespRepo := new(MockResponseRepo)
		uc := usecase.NewResponseUsecase(mockRespRepo, new(MockJobRepo))
		mockRespRepo.On("GetByID", ctx, int64(5)).Return(&domain.Response{ID: 5, UserID: 1}, nil)

		_, err := uc.DeleteResponse(ctx, 2, 5)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
		mockRespRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestUserVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("List shows self and companies only", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo)
		mockRepo.On("Fetch", ctx, 100, 0).Return([]domain.User{
			{ID: 1, Name: "me"},
			{ID: 2, Name: "other individual"},
			{ID: 3, Name: "a company", IsCompany: true},
		}, nil)

		visible, err := uc.ListVisible(ctx, 1, 0, 0)
		assert.NoError(t, err)
		assert.Len(t, visible, 2)
		assert.Equal(t, int64(1), visible[0].ID)
		assert.Equal(t, int64(3), visible[1].ID)
	})

	t.Run("Profile of another user is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo)

		_, err := uc.GetProfile(ctx, 1, 2)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Update with someone else's email is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo)
		email := "taken@example.com"
		mockRepo.On("GetByEmail", ctx, email).Return(&domain.User{ID: 2, Email: email}, nil)

		_, err := uc.UpdateProfile(ctx, 1, domain.UserPatch{Email: &email})
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Deleting another user's profile is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo)

		_, err := uc.DeleteProfile(ctx, 1, 2)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Update of a vanished user maps to not found", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockRepo)
		name := "new name"
		mockRepo.On("Update", ctx, int64(1), domain.UserPatch{Name: &name}).Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateProfile(ctx, 1, domain.UserPatch{Name: &name})
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, errCode(t, err))
	})
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	hashed, err := security.HashPassword("12345678")
	assert.NoError(t, err)
	user := &domain.User{ID: 7, Email: "job12@example.com", HashedPassword: hashed}

	t.Run("Valid credentials yield a parsable token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)
		mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		token, err := uc.Login(ctx, user.Email, "12345678")
		assert.NoError(t, err)

		userID, err := tokens.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), userID)
	})

	t.Run("Wrong password is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)
		mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		_, err := uc.Login(ctx, user.Email, "wrong")
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
	})

	t.Run("Unknown email is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)
		mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

		_, err := uc.Login(ctx, "nobody@example.com", "12345678")
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, errCode(t, err))
	})

	t.Run("Register hashes the password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NotEqual(t, "12345678", u.HashedPassword)
			assert.True(t, security.VerifyPassword(u.HashedPassword, "12345678"))
		})

		created, err := uc.Register(ctx, "Job Giving Man", "job12@example.com", "12345678", true)
		assert.NoError(t, err)
		assert.True(t, created.IsCompany)
		mockRepo.AssertExpectations(t)
	})
}
