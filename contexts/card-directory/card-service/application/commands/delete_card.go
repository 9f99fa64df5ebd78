package commands

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

type DeleteCardCommand struct {
	Actor  entities.Actor
	CardID string
}

type DeleteCardUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// Execute returns the card as it was before removal.
func (u DeleteCardUseCase) Execute(ctx context.Context, cmd DeleteCardCommand) (entities.Card, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.CardID) == "" {
		return entities.Card{}, domainerrors.ErrInvalidCardID
	}
	if !cmd.Actor.Authenticated() {
		return entities.Card{}, domainerrors.ErrUnauthenticated
	}

	card, err := u.Repository.GetCard(ctx, cmd.CardID)
	if err != nil {
		return entities.Card{}, err
	}
	if err := services.Authorize(cmd.Actor, services.OperationDeleteCard, card.OwnerID); err != nil {
		logger.Info("delete card denied",
			"event", "card_delete_denied",
			"module", "card-directory/card-service",
			"layer", "application",
			"actor_id", cmd.Actor.UserID,
			"card_id", cmd.CardID,
		)
		return entities.Card{}, err
	}
	if err := u.Repository.DeleteCard(ctx, card.CardID); err != nil {
		return entities.Card{}, err
	}

	logger.Info("card deleted",
		"event", "card_deleted",
		"module", "card-directory/card-service",
		"layer", "application",
		"actor_id", cmd.Actor.UserID,
		"card_id", card.CardID,
	)
	return card, nil
}
