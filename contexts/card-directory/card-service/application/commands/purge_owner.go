package commands

import (
	"context"
	"log/slog"
	"strings"

	application "cardhub/contexts/card-directory/card-service/application"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
	"cardhub/contexts/card-directory/card-service/ports"
)

// PurgeOwnerUseCase removes every card owned by a user and the user's likes
// on the remaining cards. It runs as part of user deletion, after that
// operation has been authorized.
type PurgeOwnerUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u PurgeOwnerUseCase) Execute(ctx context.Context, userID string) error {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(userID) == "" {
		return domainerrors.ErrInvalidUserID
	}

	cards, err := u.Repository.DeleteCardsByOwner(ctx, userID)
	if err != nil {
		return err
	}
	likes, err := u.Repository.RemoveLikesByUser(ctx, userID)
	if err != nil {
		return err
	}

	logger.Info("owner cards purged",
		"event", "card_owner_purged",
		"module", "card-directory/card-service",
		"layer", "application",
		"user_id", userID,
		"cards_deleted", cards,
		"likes_removed", likes,
	)
	return nil
}
