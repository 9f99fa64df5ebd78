package queries

import (
	"context"
	"log/slog"
	"strings"

	application "cardhub/contexts/card-directory/card-service/application"
	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
	"cardhub/contexts/card-directory/card-service/domain/services"
	"cardhub/contexts/card-directory/card-service/ports"
)

// ListCardsUseCase returns every card, oldest first. It is public.
type ListCardsUseCase struct {
	Repository ports.Repository
}

func (u ListCardsUseCase) Execute(ctx context.Context) ([]entities.Card, error) {
	return u.Repository.ListCards(ctx)
}

type ListCardsByOwnerQuery struct {
	Actor   entities.Actor
	OwnerID string
}

// ListCardsByOwnerUseCase lists one user's cards for any authenticated caller.
// An owner without cards yields an empty list.
type ListCardsByOwnerUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListCardsByOwnerUseCase) Execute(ctx context.Context, query ListCardsByOwnerQuery) ([]entities.Card, error) {
	if err := services.Authorize(query.Actor, services.OperationListByOwner, query.OwnerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query.OwnerID) == "" {
		return nil, domainerrors.ErrInvalidUserID
	}

	cards, err := u.Repository.ListCardsByOwner(ctx, query.OwnerID)
	if err != nil {
		application.ResolveLogger(u.Logger).Error("list owner cards failed",
			"event", "card_list_by_owner_failed",
			"module", "card-directory/card-service",
			"layer", "application",
			"owner_id", query.OwnerID,
			"error", err.Error(),
		)
		return nil, err
	}
	return cards, nil
}
