package domain

import (
	"context"
	"time"
)

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	IsCompany      bool      `json:"is_company"`
	CreatedAt      time.Time `json:"created_at"`

	// Populated only when loaded with relations
	Jobs      []Job      `json:"jobs,omitempty"`
	Responses []Response `json:"responses,omitempty"`
}

// UserPatch carries a partial update. A non-nil field is always applied,
// so an explicit false for IsCompany overwrites the stored value.
type UserPatch struct {
	Name           *string
	Email          *string
	HashedPassword *string
	IsCompany      *bool
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.HashedPassword != nil {
		u.HashedPassword = *p.HashedPassword
	}
	if p.IsCompany != nil {
		u.IsCompany = *p.IsCompany
	}
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// GetByID returns (nil, nil) when no user matches.
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Fetch(ctx context.Context, limit, skip int) ([]User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

type UserUsecase interface {
	ListVisible(ctx context.Context, actorID int64, limit, skip int) ([]User, error)
	GetProfile(ctx context.Context, actorID, userID int64) (*User, error)
	UpdateProfile(ctx context.Context, actorID int64, patch UserPatch) (*User, error)
	DeleteProfile(ctx context.Context, actorID, userID int64) (*User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string, isCompany bool) (*User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
}
