package ports

import (
	"context"
	"time"

	"cardhub/contexts/card-directory/card-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// UserDirectory resolves card owners against the user store.
// Missing users yield domain ErrOwnerNotFound.
type UserDirectory interface {
	LookupUser(ctx context.Context, userID string) (entities.Owner, error)
}

// Repository is the write/read boundary for cards and their likes.
// Implementations return domain ErrCardNotFound for unknown ids.
type Repository interface {
	CreateCard(ctx context.Context, card entities.Card) error
	GetCard(ctx context.Context, cardID string) (entities.Card, error)
	ListCards(ctx context.Context) ([]entities.Card, error)
	ListCardsByOwner(ctx context.Context, ownerID string) ([]entities.Card, error)
	UpdateCard(ctx context.Context, cardID string, content entities.Content, now time.Time) (entities.Card, error)
	// ToggleLike adds userID to the card likes when absent and removes it
	// when present, as one atomic store operation.
	ToggleLike(ctx context.Context, cardID string, userID string, now time.Time) (entities.Card, error)
	DeleteCard(ctx context.Context, cardID string) error
	DeleteCardsByOwner(ctx context.Context, ownerID string) (int64, error)
	RemoveLikesByUser(ctx context.Context, userID string) (int64, error)
}
