package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "cardhub/contexts/card-directory/card-service/application"
	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
	"cardhub/contexts/card-directory/card-service/domain/services"
	"cardhub/contexts/card-directory/card-service/ports"
)

type CreateCardCommand struct {
	Actor   entities.Actor
	Content entities.Content
}

// CreateCardUseCase publishes a card owned by the caller. The business flag
// is read from the stored user, not from the token, so a revoked flag takes
// effect before the token expires.
type CreateCardUseCase struct {
	Repository  ports.Repository
	Users       ports.UserDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreateCardUseCase) Execute(ctx context.Context, cmd CreateCardCommand) (entities.Card, error) {
	logger := application.ResolveLogger(u.Logger)
	if !cmd.Actor.Authenticated() {
		return entities.Card{}, domainerrors.ErrUnauthenticated
	}

	actor := cmd.Actor
	owner, err := u.Users.LookupUser(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrOwnerNotFound) {
			return entities.Card{}, domainerrors.ErrUnauthenticated
		}
		return entities.Card{}, err
	}
	actor.IsAdmin = owner.IsAdmin
	actor.IsBusiness = owner.IsBusiness

	if err := services.Authorize(actor, services.OperationCreateCard, actor.UserID); err != nil {
		logger.Info("create card denied",
			"event", "card_create_denied",
			"module", "card-directory/card-service",
			"layer", "application",
			"actor_id", actor.UserID,
		)
		return entities.Card{}, err
	}

	cardID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Card{}, err
	}
	now := u.now()
	card := entities.Card{
		CardID:    cardID,
		Content:   cmd.Content.WithDefaults(),
		Likes:     []string{},
		OwnerID:   actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Repository.CreateCard(ctx, card); err != nil {
		logger.Error("create card write failed",
			"event", "card_create_write_failed",
			"module", "card-directory/card-service",
			"layer", "application",
			"actor_id", actor.UserID,
			"error", err.Error(),
		)
		return entities.Card{}, err
	}

	logger.Info("card created",
		"event", "card_created",
		"module", "card-directory/card-service",
		"layer", "application",
		"card_id", card.CardID,
		"owner_id", card.OwnerID,
	)
	return card, nil
}

func (u CreateCardUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
