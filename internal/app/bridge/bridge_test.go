package bridge

import (
	"context"
	"testing"
	"time"

	cardmemory "cardhub/contexts/card-directory/card-service/adapters/memory"
	cardcommands "cardhub/contexts/card-directory/card-service/application/commands"
	cardentities "cardhub/contexts/card-directory/card-service/domain/entities"
	carderrors "cardhub/contexts/card-directory/card-service/domain/errors"
	usermemory "cardhub/contexts/identity-access/user-service/adapters/memory"
	userentities "cardhub/contexts/identity-access/user-service/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirectoryLookup(t *testing.T) {
	ctx := context.Background()
	users := usermemory.NewStore()
	require.NoError(t, users.CreateUser(ctx, userentities.User{
		UserID:     "user-1",
		Email:      "biz@example.com",
		IsBusiness: true,
		CreatedAt:  time.Now().UTC(),
	}))

	owner, err := UserDirectory{Users: users}.LookupUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, cardentities.Owner{UserID: "user-1", IsBusiness: true}, owner)

	_, err = UserDirectory{Users: users}.LookupUser(ctx, "missing")
	assert.ErrorIs(t, err, carderrors.ErrOwnerNotFound)
}

func TestCardPurgerRemovesCardsAndLikes(t *testing.T) {
	ctx := context.Background()
	cards := cardmemory.NewStore()
	now := time.Now().UTC()
	require.NoError(t, cards.CreateCard(ctx, cardentities.Card{CardID: "card-1", OwnerID: "user-1", Likes: []string{}, CreatedAt: now}))
	require.NoError(t, cards.CreateCard(ctx, cardentities.Card{CardID: "card-2", OwnerID: "user-2", Likes: []string{"user-1", "user-3"}, CreatedAt: now}))

	purger := CardPurger{Purge: cardcommands.PurgeOwnerUseCase{Repository: cards}}
	require.NoError(t, purger.PurgeOwner(ctx, "user-1"))

	_, err := cards.GetCard(ctx, "card-1")
	assert.ErrorIs(t, err, carderrors.ErrCardNotFound)
	remaining, err := cards.GetCard(ctx, "card-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-3"}, remaining.Likes)
}
