package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "cardhub/contexts/card-directory/card-service/application"
	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
	"cardhub/contexts/card-directory/card-service/domain/services"
	"cardhub/contexts/card-directory/card-service/ports"
)

type UpdateCardCommand struct {
	Actor   entities.Actor
	CardID  string
	Content entities.Content
}

// UpdateCardUseCase replaces the content of a card. Owner, likes and creation
// time are kept.
type UpdateCardUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u UpdateCardUseCase) Execute(ctx context.Context, cmd UpdateCardCommand) (entities.Card, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.CardID) == "" {
		return entities.Card{}, domainerrors.ErrInvalidCardID
	}
	if !cmd.Actor.Authenticated() {
		return entities.Card{}, domainerrors.ErrUnauthenticated
	}

	current, err := u.Repository.GetCard(ctx, cmd.CardID)
	if err != nil {
		return entities.Card{}, err
	}
	if err := services.Authorize(cmd.Actor, services.OperationUpdateCard, current.OwnerID); err != nil {
		logger.Info("update card denied",
			"event", "card_update_denied",
			"module", "card-directory/card-service",
			"layer", "application",
			"actor_id", cmd.Actor.UserID,
			"card_id", cmd.CardID,
		)
		return entities.Card{}, err
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	card, err := u.Repository.UpdateCard(ctx, cmd.CardID, cmd.Content.WithDefaults(), now)
	if err != nil {
		return entities.Card{}, err
	}

	logger.Info("card updated",
		"event", "card_updated",
		"module", "card-directory/card-service",
		"layer", "application",
		"card_id", card.CardID,
	)
	return card, nil
}
