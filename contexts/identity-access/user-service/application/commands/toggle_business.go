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

type ToggleBusinessCommand struct {
	Actor  entities.Actor
	UserID string
}

// ToggleBusinessUseCase negates the business flag of a user record.
type ToggleBusinessUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u ToggleBusinessUseCase) Execute(ctx context.Context, cmd ToggleBusinessCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.UserID) == "" {
		return entities.User{}, domainerrors.ErrInvalidUserID
	}
	if err := services.Authorize(cmd.Actor, services.OperationToggleBusiness, cmd.UserID); err != nil {
		return entities.User{}, err
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	user, err := u.Repository.ToggleBusiness(ctx, cmd.UserID, now)
	if err != nil {
		return entities.User{}, err
	}

	logger.Info("user business status toggled",
		"event", "user_business_toggled",
		"module", "identity-access/user-service",
		"layer", "application",
		"actor_id", cmd.Actor.UserID,
		"user_id", user.UserID,
		"is_business", user.IsBusiness,
	)
	return user, nil
}
