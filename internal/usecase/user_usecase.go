package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

const defaultLimit = 100

type userUsecase struct {
	userRepo domain.UserRepository
}

func NewUserUsecase(userRepo domain.UserRepository) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func normalizePage(limit, skip int) (int, int) {
	if limit < 1 {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

// ListVisible returns the actor's own profile plus company profiles.
// Individual non-company users are hidden from each other.
func (u *userUsecase) ListVisible(ctx context.Context, actorID int64, limit, skip int) ([]domain.User, error) {
	limit, skip = normalizePage(limit, skip)

	users, err := u.userRepo.Fetch(ctx, limit, skip)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.User, 0, len(users))
	for _, user := range users {
		if user.ID != actorID && !user.IsCompany {
			continue
		}
		visible = append(visible, user)
	}
	return visible, nil
}

// GetProfile returns the actor's own profile with their jobs and
// responses loaded.
func (u *userUsecase) GetProfile(ctx context.Context, actorID, userID int64) (*domain.User, error) {
	if actorID != userID {
		return nil, apperror.Unauthorized("You may only view your own profile")
	}

	user, err := u.userRepo.GetByIDWithRelations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, actorID int64, patch domain.UserPatch) (*domain.User, error) {
	// A user may not take over an email owned by someone else
	if patch.Email != nil {
		existing, err := u.userRepo.GetByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != actorID {
			return nil, apperror.Unauthorized("Email belongs to another user")
		}
	}

	updated, err := u.userRepo.Update(ctx, actorID, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProfile removes the actor's own account. Owned jobs and authored
// responses go with it via the FK cascade.
func (u *userUsecase) DeleteProfile(ctx context.Context, actorID, userID int64) (*domain.User, error) {
	if actorID != userID {
		return nil, apperror.Unauthorized("You may only delete your own profile")
	}

	deleted, err := u.userRepo.Delete(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
