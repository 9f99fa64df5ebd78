package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "cardhub/contexts/card-directory/card-service/application"
	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
	"cardhub/contexts/card-directory/card-service/domain/services"
	"cardhub/contexts/card-directory/card-service/ports"
)

type ToggleLikeCommand struct {
	Actor  entities.Actor
	CardID string
}

// ToggleLikeUseCase flips the caller's membership in a card's likes. The
// caller must still exist, so a token outliving its user cannot re-add a like
// removed by the owner purge.
type ToggleLikeUseCase struct {
	Repository ports.Repository
	Users      ports.UserDirectory
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u ToggleLikeUseCase) Execute(ctx context.Context, cmd ToggleLikeCommand) (entities.Card, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.CardID) == "" {
		return entities.Card{}, domainerrors.ErrInvalidCardID
	}
	if err := services.Authorize(cmd.Actor, services.OperationToggleLike, ""); err != nil {
		return entities.Card{}, err
	}
	if _, err := u.Users.LookupUser(ctx, cmd.Actor.UserID); err != nil {
		if errors.Is(err, domainerrors.ErrOwnerNotFound) {
			logger.Info("like from unknown user rejected",
				"event", "card_like_unknown_user",
				"module", "card-directory/card-service",
				"layer", "application",
				"user_id", cmd.Actor.UserID,
			)
			return entities.Card{}, domainerrors.ErrUnauthenticated
		}
		return entities.Card{}, err
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	card, err := u.Repository.ToggleLike(ctx, cmd.CardID, cmd.Actor.UserID, now)
	if err != nil {
		return entities.Card{}, err
	}

	logger.Info("card like toggled",
		"event", "card_like_toggled",
		"module", "card-directory/card-service",
		"layer", "application",
		"card_id", card.CardID,
		"user_id", cmd.Actor.UserID,
		"liked", card.LikedBy(cmd.Actor.UserID),
		"like_count", len(card.Likes),
	)
	return card, nil
}
