package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/security"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, name, email, password string, isCompany bool) (*domain.User, error) {
	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Name:           name,
		Email:          email,
		HashedPassword: hashed,
		IsCompany:      isCompany,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	// Same error for unknown email and wrong password
	if user == nil || !security.VerifyPassword(user.HashedPassword, password) {
		return "", apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("User not found")
	}
	return user, nil
}
