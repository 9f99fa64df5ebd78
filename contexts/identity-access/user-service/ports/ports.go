package ports

import (
	"context"
	"time"

	"cardhub/contexts/identity-access/user-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new users.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PasswordHasher is a one-way salted hash; Compare is the only allowed comparison.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash string, plain string) bool
}

// SessionClaims is the identity embedded in issued session tokens.
type SessionClaims struct {
	UserID     string
	IsAdmin    bool
	IsBusiness bool
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	IssueToken(ctx context.Context, claims SessionClaims) (string, error)
}

// CardPurger removes every card owned by a user and the user's likes on other
// cards. It is called before the user record itself is deleted.
type CardPurger interface {
	PurgeOwner(ctx context.Context, userID string) error
}

// Repository is the write/read boundary for user state.
// Implementations return domain errors ErrUserNotFound and ErrEmailTaken.
type Repository interface {
	CreateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	UpdateProfile(ctx context.Context, userID string, update entities.ProfileUpdate, now time.Time) (entities.User, error)
	// ToggleBusiness flips is_business in a single atomic store operation.
	ToggleBusiness(ctx context.Context, userID string, now time.Time) (entities.User, error)
	DeleteUser(ctx context.Context, userID string) error
}
