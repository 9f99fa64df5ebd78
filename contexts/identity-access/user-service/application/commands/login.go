package commands

import (
	"context"
	"errors"
	"log/slog"

	application "cardhub/contexts/identity-access/user-service/application"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
	"cardhub/contexts/identity-access/user-service/ports"
)

type LoginCommand struct {
	Email    string
	Password string
}

// LoginUseCase exchanges valid credentials for a session token.
type LoginUseCase struct {
	Repository ports.Repository
	Hasher     ports.PasswordHasher
	Tokens     ports.TokenIssuer
	Logger     *slog.Logger
}

// Execute reports unknown email and wrong password identically.
func (u LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (SessionResult, error) {
	logger := application.ResolveLogger(u.Logger)

	user, err := u.Repository.GetUserByEmail(ctx, application.NormalizeEmail(cmd.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return SessionResult{}, domainerrors.ErrInvalidCredentials
		}
		return SessionResult{}, err
	}
	if !u.Hasher.Compare(user.PasswordHash, cmd.Password) {
		logger.Info("login rejected",
			"event", "user_login_rejected",
			"module", "identity-access/user-service",
			"layer", "application",
			"user_id", user.UserID,
		)
		return SessionResult{}, domainerrors.ErrInvalidCredentials
	}

	result, err := issueSession(ctx, u.Tokens, user)
	if err != nil {
		return SessionResult{}, err
	}
	logger.Info("user logged in",
		"event", "user_logged_in",
		"module", "identity-access/user-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return result, nil
}
