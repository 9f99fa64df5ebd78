package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "cardhub/contexts/identity-access/user-service/application"
	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
	"cardhub/contexts/identity-access/user-service/ports"
)

// RegisterUserCommand contains transport-agnostic, already validated input.
type RegisterUserCommand struct {
	Email      string
	Password   string
	Name       string
	Phone      string
	Address    *entities.Address
	IsBusiness bool
}

// RegisterUserUseCase creates an account and opens a session for it.
type RegisterUserUseCase struct {
	Repository  ports.Repository
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute checks email uniqueness before insert; the store's unique index
// settles concurrent registrations with the same email.
func (u RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (SessionResult, error) {
	logger := application.ResolveLogger(u.Logger)

	email := application.NormalizeEmail(cmd.Email)
	if email == "" {
		return SessionResult{}, domainerrors.ErrInvalidEmail
	}
	if cmd.Password == "" {
		return SessionResult{}, domainerrors.ErrInvalidPassword
	}

	_, err := u.Repository.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		logger.Info("register rejected duplicate email",
			"event", "user_register_duplicate",
			"module", "identity-access/user-service",
			"layer", "application",
		)
		return SessionResult{}, domainerrors.ErrEmailTaken
	case !errors.Is(err, domainerrors.ErrUserNotFound):
		return SessionResult{}, err
	}

	hash, err := u.Hasher.Hash(cmd.Password)
	if err != nil {
		return SessionResult{}, fmt.Errorf("%w: %v", domainerrors.ErrPasswordHashFailure, err)
	}
	userID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return SessionResult{}, err
	}

	now := u.now()
	user := entities.User{
		UserID:       userID,
		Email:        email,
		Name:         strings.TrimSpace(cmd.Name),
		PasswordHash: hash,
		Phone:        strings.TrimSpace(cmd.Phone),
		Address:      cmd.Address,
		IsBusiness:   cmd.IsBusiness,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Repository.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, domainerrors.ErrEmailTaken) {
			logger.Error("register write failed",
				"event", "user_register_write_failed",
				"module", "identity-access/user-service",
				"layer", "application",
				"error", err.Error(),
			)
		}
		return SessionResult{}, err
	}

	result, err := issueSession(ctx, u.Tokens, user)
	if err != nil {
		return SessionResult{}, err
	}

	logger.Info("user registered",
		"event", "user_registered",
		"module", "identity-access/user-service",
		"layer", "application",
		"user_id", user.UserID,
		"is_business", user.IsBusiness,
	)
	return result, nil
}

func (u RegisterUserUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
