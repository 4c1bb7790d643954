package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
)

// SignupInput carries the fields accepted on registration.
type SignupInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// UpdateUserInput carries a partial profile update. Nil fields are left
// untouched.
type UpdateUserInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// AuthService defines authentication and user profile use cases.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the token identified by tokenID until expiresAt.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetUser(ctx context.Context, actor Actor, id uuid.UUID) (*domain.User, error)
	UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error
}

// UserRepository defines persistence for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenDenylist stores revoked token IDs until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
