// Package bridge holds the adapters that let one bounded context call another
// through its own ports. Contexts never import each other directly; the
// composition root plugs these in.
package bridge

import (
	"context"
	"errors"

	cardcommands "cardhub/contexts/card-directory/card-service/application/commands"
	cardentities "cardhub/contexts/card-directory/card-service/domain/entities"
	carderrors "cardhub/contexts/card-directory/card-service/domain/errors"
	usererrors "cardhub/contexts/identity-access/user-service/domain/errors"
	userports "cardhub/contexts/identity-access/user-service/ports"
)

// UserDirectory serves card owner lookups from the user repository.
type UserDirectory struct {
	Users userports.Repository
}

func (d UserDirectory) LookupUser(ctx context.Context, userID string) (cardentities.Owner, error) {
	user, err := d.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return cardentities.Owner{}, carderrors.ErrOwnerNotFound
		}
		return cardentities.Owner{}, err
	}
	return cardentities.Owner{
		UserID:     user.UserID,
		IsAdmin:    user.IsAdmin,
		IsBusiness: user.IsBusiness,
	}, nil
}

// CardPurger runs the card-service owner purge on behalf of user deletion.
type CardPurger struct {
	Purge cardcommands.PurgeOwnerUseCase
}

func (p CardPurger) PurgeOwner(ctx context.Context, userID string) error {
	return p.Purge.Execute(ctx, userID)
}
