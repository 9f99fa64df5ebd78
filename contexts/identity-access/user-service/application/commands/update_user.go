package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "cardhub/contexts/identity-access/user-service/application"
	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
	"cardhub/contexts/identity-access/user-service/domain/services"
	"cardhub/contexts/identity-access/user-service/ports"
)

type UpdateUserCommand struct {
	Actor   entities.Actor
	UserID  string
	Name    string
	Phone   string
	Address *entities.Address
}

// UpdateUserUseCase replaces the profile fields of the caller's own record.
type UpdateUserUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.UserID) == "" {
		return entities.User{}, domainerrors.ErrInvalidUserID
	}
	if err := services.Authorize(cmd.Actor, services.OperationUpdateUser, cmd.UserID); err != nil {
		logger.Info("update user denied",
			"event", "user_update_denied",
			"module", "identity-access/user-service",
			"layer", "application",
			"actor_id", cmd.Actor.UserID,
			"user_id", cmd.UserID,
		)
		return entities.User{}, err
	}

	user, err := u.Repository.UpdateProfile(ctx, cmd.UserID, entities.ProfileUpdate{
		Name:    strings.TrimSpace(cmd.Name),
		Phone:   strings.TrimSpace(cmd.Phone),
		Address: cmd.Address,
	}, u.now())
	if err != nil {
		return entities.User{}, err
	}

	logger.Info("user updated",
		"event", "user_updated",
		"module", "identity-access/user-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return user, nil
}

func (u UpdateUserUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
