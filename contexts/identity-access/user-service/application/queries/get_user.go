package queries

import (
	"context"
	"strings"

	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
	"cardhub/contexts/identity-access/user-service/domain/services"
	"cardhub/contexts/identity-access/user-service/ports"
)

type GetUserQuery struct {
	Actor  entities.Actor
	UserID string
}

type GetUserUseCase struct {
	Repository ports.Repository
}

func (u GetUserUseCase) Execute(ctx context.Context, query GetUserQuery) (entities.User, error) {
	if strings.TrimSpace(query.UserID) == "" {
		return entities.User{}, domainerrors.ErrInvalidUserID
	}
	if err := services.Authorize(query.Actor, services.OperationReadUser, query.UserID); err != nil {
		return entities.User{}, err
	}
	return u.Repository.GetUser(ctx, query.UserID)
}

// GetProfileUseCase returns the reduced profile of the calling user.
type GetProfileUseCase struct {
	Repository ports.Repository
}

func (u GetProfileUseCase) Execute(ctx context.Context, actor entities.Actor) (entities.Profile, error) {
	if err := services.Authorize(actor, services.OperationReadProfile, actor.UserID); err != nil {
		return entities.Profile{}, err
	}
	user, err := u.Repository.GetUser(ctx, actor.UserID)
	if err != nil {
		return entities.Profile{}, err
	}
	return user.Profile(), nil
}
