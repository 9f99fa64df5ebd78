package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "cardhub/contexts/identity-access/user-service/application"
	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
	"cardhub/contexts/identity-access/user-service/domain/services"
	"cardhub/contexts/identity-access/user-service/ports"
)

type DeleteUserCommand struct {
	Actor  entities.Actor
	UserID string
}

// DeleteUserUseCase removes a user after purging the cards they own and the
// likes they left on other cards.
type DeleteUserUseCase struct {
	Repository ports.Repository
	Cards      ports.CardPurger
	Logger     *slog.Logger
}

func (u DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.UserID) == "" {
		return entities.User{}, domainerrors.ErrInvalidUserID
	}
	if err := services.Authorize(cmd.Actor, services.OperationDeleteUser, cmd.UserID); err != nil {
		return entities.User{}, err
	}

	user, err := u.Repository.GetUser(ctx, cmd.UserID)
	if err != nil {
		return entities.User{}, err
	}

	if u.Cards != nil {
		if err := u.Cards.PurgeOwner(ctx, user.UserID); err != nil {
			logger.Error("user card cascade failed",
				"event", "user_delete_cascade_failed",
				"module", "identity-access/user-service",
				"layer", "application",
				"user_id", user.UserID,
				"error", err.Error(),
			)
			return entities.User{}, fmt.Errorf("%w: %v", domainerrors.ErrCardCascadeFailed, err)
		}
	}

	// The purge has already committed. Retrying the delete is safe since a
	// second purge finds nothing.
	if err := u.Repository.DeleteUser(ctx, user.UserID); err != nil {
		logger.Error("user delete failed after card purge",
			"event", "user_delete_after_purge_failed",
			"module", "identity-access/user-service",
			"layer", "application",
			"user_id", user.UserID,
			"error", err.Error(),
		)
		return entities.User{}, err
	}

	logger.Info("user deleted",
		"event", "user_deleted",
		"module", "identity-access/user-service",
		"layer", "application",
		"actor_id", cmd.Actor.UserID,
		"user_id", user.UserID,
	)
	return user, nil
}
