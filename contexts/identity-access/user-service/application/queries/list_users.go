package queries

import (
	"context"
	"log/slog"

	application "cardhub/contexts/identity-access/user-service/application"
	"cardhub/contexts/identity-access/user-service/domain/entities"
	"cardhub/contexts/identity-access/user-service/domain/services"
	"cardhub/contexts/identity-access/user-service/ports"
)

type ListUsersUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListUsersUseCase) Execute(ctx context.Context, actor entities.Actor) ([]entities.User, error) {
	if err := services.Authorize(actor, services.OperationListUsers, ""); err != nil {
		application.ResolveLogger(u.Logger).Info("list users denied",
			"event", "user_list_denied",
			"module", "identity-access/user-service",
			"layer", "application",
			"actor_id", actor.UserID,
		)
		return nil, err
	}
	return u.Repository.ListUsers(ctx)
}
