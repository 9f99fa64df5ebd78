package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	application "cardhub/contexts/identity-access/user-service/application"
	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
	"cardhub/contexts/identity-access/user-service/ports"
)

type SeedAdminCommand struct {
	Email    string
	Password string
	Name     string
}

// SeedAdminUseCase provisions the administrator account at startup. Admins
// cannot be created through the public API.
type SeedAdminUseCase struct {
	Repository  ports.Repository
	Hasher      ports.PasswordHasher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute is a no-op when an account with the email already exists.
func (u SeedAdminUseCase) Execute(ctx context.Context, cmd SeedAdminCommand) (entities.User, bool, error) {
	logger := application.ResolveLogger(u.Logger)

	email := application.NormalizeEmail(cmd.Email)
	if email == "" {
		return entities.User{}, false, domainerrors.ErrInvalidEmail
	}
	if len(cmd.Password) < 8 {
		return entities.User{}, false, domainerrors.ErrInvalidPassword
	}

	existing, err := u.Repository.GetUserByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin {
			logger.Warn("seed admin email belongs to a non-admin user",
				"event", "user_seed_admin_conflict",
				"module", "identity-access/user-service",
				"layer", "application",
				"user_id", existing.UserID,
			)
		}
		return existing, false, nil
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return entities.User{}, false, err
	}

	hash, err := u.Hasher.Hash(cmd.Password)
	if err != nil {
		return entities.User{}, false, fmt.Errorf("%w: %v", domainerrors.ErrPasswordHashFailure, err)
	}
	userID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, false, err
	}
	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	name := cmd.Name
	if name == "" {
		name = "Administrator"
	}

	admin := entities.User{
		UserID:       userID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Repository.CreateUser(ctx, admin); err != nil {
		return entities.User{}, false, err
	}

	logger.Info("admin seeded",
		"event", "user_seed_admin_created",
		"module", "identity-access/user-service",
		"layer", "application",
		"user_id", admin.UserID,
	)
	return admin, true, nil
}
